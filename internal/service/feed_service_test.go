package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"agenda/internal/model"
)

func TestFeedService_ExportICS(t *testing.T) {
	userID := uuid.New()
	stored := standupEvent(model.RecurrenceDaily)
	stored.UserID = userID
	single := standupEvent(model.RecurrenceNone)
	single.UserID = userID
	single.Title = "Dentist"

	mockUsers := new(MockUserRepository)
	mockEvents := new(MockEventRepository)
	expectResolvedUser(mockUsers, "a@x.com", userID)
	mockEvents.On("FindByUser", mock.Anything, userID).Return([]model.Event{stored, single}, nil)

	svc := NewFeedService(NewUserService(mockUsers, nil), mockEvents, nil)
	feed, err := svc.ExportICS(context.Background(), "a@x.com")

	require.NoError(t, err)
	assert.Contains(t, feed, "BEGIN:VCALENDAR")
	assert.Contains(t, feed, "END:VCALENDAR")
	assert.Contains(t, feed, "SUMMARY:Standup")
	assert.Contains(t, feed, "SUMMARY:Dentist")
	assert.Contains(t, feed, "UID:"+stored.ID.String())
	// The recurring event carries its rule with the fixed count; the single
	// event carries none.
	assert.Contains(t, feed, "RRULE:FREQ=DAILY;COUNT=100")
	assert.Equal(t, 1, strings.Count(feed, "RRULE"))
}

func TestFeedService_ImportICS(t *testing.T) {
	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)
	icsTime := func(t time.Time) string { return t.Format("20060102T150405Z") }
	body := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VEVENT",
		"UID:import-1",
		fmt.Sprintf("DTSTAMP:%s", icsTime(start)),
		fmt.Sprintf("DTSTART:%s", icsTime(start)),
		fmt.Sprintf("DTEND:%s", icsTime(start.Add(time.Hour))),
		"SUMMARY:Lunch",
		"DESCRIPTION:Team lunch",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:import-2",
		fmt.Sprintf("DTSTAMP:%s", icsTime(start)),
		fmt.Sprintf("DTSTART:%s", icsTime(start.Add(48*time.Hour))),
		fmt.Sprintf("DTEND:%s", icsTime(start.Add(49*time.Hour))),
		"SUMMARY:Review",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/calendar")
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	userID := uuid.New()
	mockUsers := new(MockUserRepository)
	mockEvents := new(MockEventRepository)
	expectResolvedUser(mockUsers, "a@x.com", userID)

	var titles []string
	mockEvents.On("Create", mock.Anything, mock.AnythingOfType("*model.Event")).
		Run(func(args mock.Arguments) {
			ev := args.Get(1).(*model.Event)
			titles = append(titles, ev.Title)
			assert.Equal(t, userID, ev.UserID)
			assert.Equal(t, model.RecurrenceNone, ev.Recurrence)
		}).
		Return(nil).Times(2)

	svc := NewFeedService(NewUserService(mockUsers, nil), mockEvents, nil)
	count, err := svc.ImportICS(context.Background(), "a@x.com", server.URL)

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.ElementsMatch(t, []string{"Lunch", "Review"}, titles)
	mockEvents.AssertExpectations(t)
}

func TestFeedService_ImportICS_SkipsMalformedEvent(t *testing.T) {
	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)
	icsTime := func(t time.Time) string { return t.Format("20060102T150405Z") }
	body := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		// No DTSTAMP, only this event is rejected.
		"BEGIN:VEVENT",
		"UID:broken-1",
		fmt.Sprintf("DTSTART:%s", icsTime(start)),
		fmt.Sprintf("DTEND:%s", icsTime(start.Add(time.Hour))),
		"SUMMARY:Broken",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:import-1",
		fmt.Sprintf("DTSTAMP:%s", icsTime(start)),
		fmt.Sprintf("DTSTART:%s", icsTime(start.Add(48*time.Hour))),
		fmt.Sprintf("DTEND:%s", icsTime(start.Add(49*time.Hour))),
		"SUMMARY:Review",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/calendar")
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	userID := uuid.New()
	mockUsers := new(MockUserRepository)
	mockEvents := new(MockEventRepository)
	expectResolvedUser(mockUsers, "a@x.com", userID)

	mockEvents.On("Create", mock.Anything, mock.AnythingOfType("*model.Event")).
		Run(func(args mock.Arguments) {
			ev := args.Get(1).(*model.Event)
			assert.Equal(t, "Review", ev.Title)
		}).
		Return(nil).Once()

	svc := NewFeedService(NewUserService(mockUsers, nil), mockEvents, nil)
	count, err := svc.ImportICS(context.Background(), "a@x.com", server.URL)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	mockEvents.AssertExpectations(t)
}

func TestFeedService_ImportICS_FetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	userID := uuid.New()
	mockUsers := new(MockUserRepository)
	mockEvents := new(MockEventRepository)
	expectResolvedUser(mockUsers, "a@x.com", userID)

	svc := NewFeedService(NewUserService(mockUsers, nil), mockEvents, nil)
	count, err := svc.ImportICS(context.Background(), "a@x.com", server.URL)

	assert.Error(t, err)
	assert.Zero(t, count)
}
