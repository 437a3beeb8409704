package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	surrealdb "github.com/surrealdb/surrealdb.go"

	apperrors "agenda/internal/errors"
	"agenda/internal/model"
)

// surrealEvent is the document shape in the events table. Timestamps are
// written through <datetime> casts so range filters compare real datetimes,
// not strings.
type surrealEvent struct {
	EventID     string    `json:"event_id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Type        string    `json:"type"`
	Color       string    `json:"color"`
	Recurrence  string    `json:"recurrence"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (d surrealEvent) toModel() (*model.Event, error) {
	id, err := uuid.Parse(d.EventID)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return nil, err
	}
	ev := &model.Event{
		ID:          id,
		UserID:      userID,
		Title:       d.Title,
		Description: d.Description,
		StartTime:   d.StartTime,
		EndTime:     d.EndTime,
		Type:        d.Type,
		Color:       d.Color,
		Recurrence:  model.Recurrence(d.Recurrence),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	ev.EnsureDefaults()
	return ev, nil
}

type surrealEventRepository struct {
	db *surrealdb.DB
}

// NewSurrealEventRepository builds a SurrealDB-backed repository.
func NewSurrealEventRepository(db *surrealdb.DB) EventRepository {
	return &surrealEventRepository{db: db}
}

func (r *surrealEventRepository) Create(ctx context.Context, event *model.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	raw, err := r.db.Query(
		`CREATE events SET event_id = $event_id, user_id = $user_id,
			title = $title, description = $description,
			start_time = <datetime>$start_time, end_time = <datetime>$end_time,
			type = $type, color = $color, recurrence = $recurrence,
			created_at = <datetime>$now, updated_at = <datetime>$now`,
		map[string]any{
			"event_id":    event.ID.String(),
			"user_id":     event.UserID.String(),
			"title":       event.Title,
			"description": event.Description,
			"start_time":  surrealTime(event.StartTime),
			"end_time":    surrealTime(event.EndTime),
			"type":        event.Type,
			"color":       event.Color,
			"recurrence":  string(event.Recurrence),
			"now":         surrealTime(now),
		})
	if err != nil {
		return storeErr("create event", err)
	}
	return decodeQuery(raw, nil)
}

func (r *surrealEventRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*model.Event, error) {
	docs, err := r.query(
		`SELECT * FROM events WHERE event_id = $event_id AND user_id = $user_id`,
		map[string]any{
			"event_id": id.String(),
			"user_id":  userID.String(),
		})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, apperrors.ErrEventNotFound
	}
	return docs[0].toModel()
}

func (r *surrealEventRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Event, error) {
	docs, err := r.query(
		`SELECT * FROM events WHERE user_id = $user_id ORDER BY start_time ASC`,
		map[string]any{"user_id": userID.String()})
	if err != nil {
		return nil, err
	}
	return toModels(docs)
}

func (r *surrealEventRepository) FindByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]model.Event, error) {
	docs, err := r.query(
		`SELECT * FROM events
			WHERE user_id = $user_id
			AND start_time >= <datetime>$from AND start_time < <datetime>$to
			ORDER BY start_time ASC`,
		map[string]any{
			"user_id": userID.String(),
			"from":    surrealTime(from),
			"to":      surrealTime(to),
		})
	if err != nil {
		return nil, err
	}
	return toModels(docs)
}

func (r *surrealEventRepository) ReplaceOne(ctx context.Context, id, userID uuid.UUID, event *model.Event) (*model.Event, error) {
	// One UPDATE statement; surrealdb applies it atomically per document.
	docs, err := r.query(
		`UPDATE events SET title = $title, description = $description,
			start_time = <datetime>$start_time, end_time = <datetime>$end_time,
			type = $type, color = $color, recurrence = $recurrence,
			updated_at = <datetime>$now
			WHERE event_id = $event_id AND user_id = $user_id
			RETURN AFTER`,
		map[string]any{
			"event_id":    id.String(),
			"user_id":     userID.String(),
			"title":       event.Title,
			"description": event.Description,
			"start_time":  surrealTime(event.StartTime),
			"end_time":    surrealTime(event.EndTime),
			"type":        event.Type,
			"color":       event.Color,
			"recurrence":  string(event.Recurrence),
			"now":         surrealTime(time.Now().UTC()),
		})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, apperrors.ErrEventNotFound
	}
	return docs[0].toModel()
}

func (r *surrealEventRepository) DeleteOne(ctx context.Context, id, userID uuid.UUID) error {
	docs, err := r.query(
		`DELETE FROM events WHERE event_id = $event_id AND user_id = $user_id RETURN BEFORE`,
		map[string]any{
			"event_id": id.String(),
			"user_id":  userID.String(),
		})
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

func (r *surrealEventRepository) query(sql string, vars map[string]any) ([]surrealEvent, error) {
	raw, err := r.db.Query(sql, vars)
	if err != nil {
		return nil, storeErr("query events", err)
	}
	var docs []surrealEvent
	if err := decodeQuery(raw, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func toModels(docs []surrealEvent) ([]model.Event, error) {
	events := make([]model.Event, 0, len(docs))
	for _, d := range docs {
		ev, err := d.toModel()
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	return events, nil
}
