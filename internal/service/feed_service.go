package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/apognu/gocal"
	ics "github.com/arran4/golang-ical"
	"github.com/go-resty/resty/v2"

	"agenda/internal/cache"
	"agenda/internal/model"
	"agenda/internal/repository"
)

// importWindow bounds how far around now imported occurrences are accepted.
const importWindow = 365 * 24 * time.Hour

// FeedService bridges a user's calendar to iCalendar feeds: exporting the
// stored events as an .ics document and importing events from a remote feed.
type FeedService interface {
	ExportICS(ctx context.Context, email string) (string, error)
	// ImportICS fetches the feed at icsURL and creates one non-recurring
	// event per occurrence inside the import window. Returns the number of
	// events created.
	ImportICS(ctx context.Context, email, icsURL string) (int, error)
}

type feedService struct {
	users  UserService
	events repository.EventRepository
	cache  *cache.Client
	http   *resty.Client
}

// NewFeedService creates a new feed service.
func NewFeedService(users UserService, events repository.EventRepository, cache *cache.Client) FeedService {
	return &feedService{
		users:  users,
		events: events,
		cache:  cache,
		http:   resty.New().SetTimeout(30 * time.Second),
	}
}

func (s *feedService) ExportICS(ctx context.Context, email string) (string, error) {
	user, err := s.users.Resolve(ctx, email)
	if err != nil {
		return "", err
	}

	stored, err := s.events.FindByUser(ctx, user.ID)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	for _, ev := range stored {
		item := cal.AddEvent(ev.ID.String())
		item.SetDtStampTime(ev.UpdatedAt)
		item.SetStartAt(ev.StartTime)
		item.SetEndAt(ev.EndTime)
		item.SetSummary(ev.Title)
		if ev.Description != "" {
			item.SetDescription(ev.Description)
		}
		// The feed carries the rule itself; expansion stays in-process. The
		// counts mirror what a read of this API would return.
		if rule := rruleFor(ev.Recurrence); rule != "" {
			item.AddRrule(rule)
		}
	}
	return cal.Serialize(), nil
}

func (s *feedService) ImportICS(ctx context.Context, email, icsURL string) (int, error) {
	user, err := s.users.Resolve(ctx, email)
	if err != nil {
		return 0, err
	}

	resp, err := s.http.R().SetContext(ctx).Get(icsURL)
	if err != nil {
		return 0, fmt.Errorf("fetch ics feed: %w", err)
	}
	if !resp.IsSuccess() {
		return 0, fmt.Errorf("fetch ics feed: status %d", resp.StatusCode())
	}

	from := time.Now().Add(-importWindow)
	to := time.Now().Add(importWindow)
	parser := gocal.NewParser(strings.NewReader(resp.String()))
	parser.Start, parser.End = &from, &to
	// Skip malformed events instead of rejecting the whole feed.
	parser.Strict = gocal.StrictParams{Mode: gocal.StrictModeFailEvent}
	if err := parser.Parse(); err != nil {
		return 0, fmt.Errorf("parse ics feed: %w", err)
	}

	created := 0
	for _, item := range parser.Events {
		if item.Start == nil || item.End == nil {
			continue
		}
		event := &model.Event{
			UserID:      user.ID,
			Title:       item.Summary,
			Description: item.Description,
			StartTime:   *item.Start,
			EndTime:     *item.End,
			Recurrence:  model.RecurrenceNone,
		}
		if err := s.events.Create(ctx, event); err != nil {
			return created, err
		}
		created++
	}
	if created > 0 {
		_ = s.cache.DeleteByPrefix(ctx, userCachePrefix(user.ID))
	}
	return created, nil
}

func rruleFor(r model.Recurrence) string {
	switch model.Recurrence(strings.ToLower(string(r))) {
	case model.RecurrenceDaily:
		return fmt.Sprintf("FREQ=DAILY;COUNT=%d", dailyOccurrences)
	case model.RecurrenceWeekly:
		return fmt.Sprintf("FREQ=WEEKLY;COUNT=%d", weeklyOccurrences)
	case model.RecurrenceMonthly:
		return fmt.Sprintf("FREQ=MONTHLY;COUNT=%d", monthlyOccurrences)
	default:
		return ""
	}
}
