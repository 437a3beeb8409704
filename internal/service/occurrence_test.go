package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agenda/internal/model"
)

func standupEvent(recurrence model.Recurrence) model.Event {
	return model.Event{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Title:       "Standup",
		Description: "Daily team sync",
		StartTime:   time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC),
		Type:        "meeting",
		Color:       "#28a745",
		Recurrence:  recurrence,
	}
}

func TestExpandOccurrences_NonRecurring(t *testing.T) {
	tests := []struct {
		name       string
		recurrence model.Recurrence
	}{
		{name: "absent", recurrence: ""},
		{name: "none", recurrence: model.RecurrenceNone},
		{name: "none mixed case", recurrence: "NoNe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := standupEvent(tt.recurrence)
			occurrences := ExpandOccurrences(ev)

			require.Len(t, occurrences, 1)
			assert.Equal(t, ev, occurrences[0])
		})
	}
}

func TestExpandOccurrences_Daily(t *testing.T) {
	ev := standupEvent(model.RecurrenceDaily)
	occurrences := ExpandOccurrences(ev)

	require.Len(t, occurrences, 100)
	for i, occ := range occurrences {
		assert.Equal(t, ev.StartTime.AddDate(0, 0, i), occ.StartTime, "occurrence %d start", i)
		assert.Equal(t, 15*time.Minute, occ.EndTime.Sub(occ.StartTime), "occurrence %d duration", i)
	}

	// The 5th occurrence lands four days after the original.
	assert.Equal(t, time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC), occurrences[4].StartTime)
	assert.Equal(t, time.Date(2024, 1, 5, 9, 15, 0, 0, time.UTC), occurrences[4].EndTime)
}

func TestExpandOccurrences_Weekly(t *testing.T) {
	ev := standupEvent(model.RecurrenceWeekly)
	occurrences := ExpandOccurrences(ev)

	require.Len(t, occurrences, 25)
	for i, occ := range occurrences {
		assert.Equal(t, ev.StartTime.AddDate(0, 0, 7*i), occ.StartTime, "occurrence %d start", i)
		assert.Equal(t, ev.EndTime.AddDate(0, 0, 7*i), occ.EndTime, "occurrence %d end", i)
	}
}

func TestExpandOccurrences_Monthly(t *testing.T) {
	ev := standupEvent(model.RecurrenceMonthly)
	ev.StartTime = time.Date(2023, time.November, 15, 10, 30, 0, 0, time.UTC)
	ev.EndTime = ev.StartTime.Add(time.Hour)

	occurrences := ExpandOccurrences(ev)

	require.Len(t, occurrences, 10)
	// Year rolls over past December: Nov + 3 months is February of the next year.
	assert.Equal(t, time.Date(2024, time.February, 15, 10, 30, 0, 0, time.UTC), occurrences[3].StartTime)
	for i, occ := range occurrences {
		assert.Equal(t, 15, occ.StartTime.Day(), "occurrence %d day of month", i)
		assert.Equal(t, time.Hour, occ.EndTime.Sub(occ.StartTime), "occurrence %d duration", i)
	}
}

func TestExpandOccurrences_MonthlyDayOverflow(t *testing.T) {
	ev := standupEvent(model.RecurrenceMonthly)
	ev.StartTime = time.Date(2024, time.January, 31, 8, 0, 0, 0, time.UTC)
	ev.EndTime = ev.StartTime.Add(time.Hour)

	occurrences := ExpandOccurrences(ev)

	require.Len(t, occurrences, 10)
	// Feb 31 does not exist; the date normalizes forward past leap-year February.
	assert.Equal(t, time.Date(2024, time.March, 2, 8, 0, 0, 0, time.UTC), occurrences[1].StartTime)
}

func TestExpandOccurrences_UnknownKind(t *testing.T) {
	ev := standupEvent("yearly")
	occurrences := ExpandOccurrences(ev)

	assert.NotNil(t, occurrences)
	assert.Empty(t, occurrences)
}

func TestExpandOccurrences_CaseInsensitive(t *testing.T) {
	assert.Len(t, ExpandOccurrences(standupEvent("Daily")), 100)
	assert.Len(t, ExpandOccurrences(standupEvent("WEEKLY")), 25)
	assert.Len(t, ExpandOccurrences(standupEvent("Monthly")), 10)
}

func TestExpandOccurrences_ZeroDuration(t *testing.T) {
	ev := standupEvent(model.RecurrenceDaily)
	ev.EndTime = ev.StartTime

	occurrences := ExpandOccurrences(ev)

	require.Len(t, occurrences, 100)
	for i, occ := range occurrences {
		assert.Equal(t, occ.StartTime, occ.EndTime, "occurrence %d", i)
	}
}

func TestExpandOccurrences_CopiesSourceFields(t *testing.T) {
	ev := standupEvent(model.RecurrenceDaily)
	occurrences := ExpandOccurrences(ev)

	require.Len(t, occurrences, 100)
	for _, occ := range occurrences {
		assert.Equal(t, ev.ID, occ.ID)
		assert.Equal(t, ev.UserID, occ.UserID)
		assert.Equal(t, ev.Title, occ.Title)
		assert.Equal(t, ev.Description, occ.Description)
		assert.Equal(t, ev.Type, occ.Type)
		assert.Equal(t, ev.Color, occ.Color)
		assert.Equal(t, ev.Recurrence, occ.Recurrence)
	}
}
