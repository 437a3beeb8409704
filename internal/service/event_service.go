package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"agenda/internal/cache"
	"agenda/internal/model"
	"agenda/internal/repository"
)

const eventCacheTTL = time.Minute

// EventInput carries the caller-supplied fields of an event. end >= start is
// assumed, not enforced here.
type EventInput struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Type        string
	Color       string
	Recurrence  model.Recurrence
}

// EventService implements event create/read/update/delete scoped to the user
// resolved from an email address. Reads pass every stored event through
// ExpandOccurrences before returning.
type EventService interface {
	Create(ctx context.Context, email string, in EventInput) (*model.Event, error)
	// ListInRange returns expanded occurrences for stored events whose own
	// start_time falls in [from, to). A recurring event that matches on its
	// first occurrence contributes all of its occurrences, even those outside
	// the range.
	ListInRange(ctx context.Context, email string, from, to time.Time) ([]model.Event, error)
	ListAll(ctx context.Context, email string) ([]model.Event, error)
	Update(ctx context.Context, eventID uuid.UUID, email string, in EventInput) (*model.Event, error)
	Delete(ctx context.Context, eventID uuid.UUID, email string) error
}

type eventService struct {
	users  UserService
	events repository.EventRepository
	cache  *cache.Client
}

// NewEventService creates a new event service.
func NewEventService(users UserService, events repository.EventRepository, cache *cache.Client) EventService {
	return &eventService{users: users, events: events, cache: cache}
}

// userCachePrefix keys every cached event view for one user, so a single
// prefix delete invalidates them all.
func userCachePrefix(userID uuid.UUID) string {
	return fmt.Sprintf("events:%s", userID.String())
}

func (s *eventService) Create(ctx context.Context, email string, in EventInput) (*model.Event, error) {
	user, err := s.users.Resolve(ctx, email)
	if err != nil {
		return nil, err
	}

	event := in.toEvent()
	event.UserID = user.ID
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	_ = s.cache.DeleteByPrefix(ctx, userCachePrefix(user.ID))
	return event, nil
}

func (s *eventService) ListInRange(ctx context.Context, email string, from, to time.Time) ([]model.Event, error) {
	user, err := s.users.Resolve(ctx, email)
	if err != nil {
		return nil, err
	}

	stored, err := s.events.FindByUserInRange(ctx, user.ID, from, to)
	if err != nil {
		return nil, err
	}
	return expandAll(stored), nil
}

func (s *eventService) ListAll(ctx context.Context, email string) ([]model.Event, error) {
	user, err := s.users.Resolve(ctx, email)
	if err != nil {
		return nil, err
	}

	key := userCachePrefix(user.ID) + ":all"
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []model.Event
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	stored, err := s.events.FindByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	occurrences := expandAll(stored)

	if payload, err := json.Marshal(occurrences); err == nil {
		_ = s.cache.Set(ctx, key, payload, eventCacheTTL)
	}
	return occurrences, nil
}

func (s *eventService) Update(ctx context.Context, eventID uuid.UUID, email string, in EventInput) (*model.Event, error) {
	user, err := s.users.Resolve(ctx, email)
	if err != nil {
		return nil, err
	}

	updated, err := s.events.ReplaceOne(ctx, eventID, user.ID, in.toEvent())
	if err != nil {
		return nil, err
	}

	_ = s.cache.DeleteByPrefix(ctx, userCachePrefix(user.ID))
	return updated, nil
}

func (s *eventService) Delete(ctx context.Context, eventID uuid.UUID, email string) error {
	user, err := s.users.Resolve(ctx, email)
	if err != nil {
		return err
	}

	if err := s.events.DeleteOne(ctx, eventID, user.ID); err != nil {
		return err
	}

	_ = s.cache.DeleteByPrefix(ctx, userCachePrefix(user.ID))
	return nil
}

func (in EventInput) toEvent() *model.Event {
	return &model.Event{
		Title:       in.Title,
		Description: in.Description,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Type:        in.Type,
		Color:       in.Color,
		Recurrence:  in.Recurrence,
	}
}

func expandAll(stored []model.Event) []model.Event {
	occurrences := make([]model.Event, 0, len(stored))
	for _, ev := range stored {
		occurrences = append(occurrences, ExpandOccurrences(ev)...)
	}
	return occurrences
}
