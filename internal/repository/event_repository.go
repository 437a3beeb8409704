package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "agenda/internal/errors"
	"agenda/internal/model"
)

// EventRepository defines event persistence operations. Every read, replace
// and delete filters on both the event id and the owning user id, so one user
// can never observe or mutate another user's event.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	FindByID(ctx context.Context, id, userID uuid.UUID) (*model.Event, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Event, error)
	// FindByUserInRange returns stored events whose start_time falls in
	// [from, to). The range is checked against the stored record only, not
	// against expanded occurrences.
	FindByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]model.Event, error)
	// ReplaceOne atomically replaces the event matching id and userID and
	// returns the stored result, or ErrEventNotFound if nothing matched.
	ReplaceOne(ctx context.Context, id, userID uuid.UUID, event *model.Event) (*model.Event, error)
	// DeleteOne removes the event matching id and userID, or returns
	// ErrEventNotFound if zero rows were deleted.
	DeleteOne(ctx context.Context, id, userID uuid.UUID) error
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository builds a GORM-backed repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&event).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND start_time >= ? AND start_time < ?", userID, from, to).
		Order("start_time ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) ReplaceOne(ctx context.Context, id, userID uuid.UUID, event *model.Event) (*model.Event, error) {
	// Single UPDATE statement keyed by id+user_id; the row either flips to the
	// new value in one step or the filter matched nothing.
	res := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"title":       event.Title,
			"description": event.Description,
			"start_time":  event.StartTime,
			"end_time":    event.EndTime,
			"type":        event.Type,
			"color":       event.Color,
			"recurrence":  event.Recurrence,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	// MySQL reports rows changed, not rows matched, so a replace that submits
	// the stored values again also yields zero. Let the follow-up read decide
	// whether the row exists.
	return r.FindByID(ctx, id, userID)
}

func (r *eventRepository) DeleteOne(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Event{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}
