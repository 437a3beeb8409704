package service

import (
	"strings"
	"time"

	"agenda/internal/model"
)

// Fixed occurrence counts per recurrence kind. The repeat model is a closed
// set with a hard bound, not a general rule engine.
const (
	dailyOccurrences   = 100
	weeklyOccurrences  = 25
	monthlyOccurrences = 10
)

// ExpandOccurrences turns one stored event into the ordered list of
// occurrences a read returns. Pure and total: it never fails, never touches
// I/O, and its output is bounded by the counts above.
//
// Every occurrence copies the source event verbatim apart from the shifted
// start/end pair, so all occurrences of one event share that event's ID.
// An unknown recurrence value yields no occurrences at all.
func ExpandOccurrences(ev model.Event) []model.Event {
	switch model.Recurrence(strings.ToLower(string(ev.Recurrence))) {
	case model.RecurrenceNone, "":
		return []model.Event{ev}
	case model.RecurrenceDaily:
		return shiftByDays(ev, dailyOccurrences, 1)
	case model.RecurrenceWeekly:
		return shiftByDays(ev, weeklyOccurrences, 7)
	case model.RecurrenceMonthly:
		return shiftByMonths(ev, monthlyOccurrences)
	default:
		return []model.Event{}
	}
}

// shiftByDays shifts both timestamps by i*step days per occurrence, which
// preserves the original duration.
func shiftByDays(ev model.Event, count, step int) []model.Event {
	out := make([]model.Event, 0, count)
	for i := 0; i < count; i++ {
		occ := ev
		occ.StartTime = ev.StartTime.AddDate(0, 0, i*step)
		occ.EndTime = ev.EndTime.AddDate(0, 0, i*step)
		out = append(out, occ)
	}
	return out
}

// shiftByMonths advances the start's month by i, rolling into later years
// past December; day-of-month, clock time and zone stay as-is. When the day
// does not exist in the target month (Jan 31 + 1 month), time.Date rolls the
// date forward into the next month. Each occurrence's end is its start plus
// the original duration.
func shiftByMonths(ev model.Event, count int) []model.Event {
	duration := ev.EndTime.Sub(ev.StartTime)
	start := ev.StartTime
	out := make([]model.Event, 0, count)
	for i := 0; i < count; i++ {
		monthIndex := int(start.Month()) + i
		year := start.Year() + (monthIndex-1)/12
		month := time.Month((monthIndex-1)%12 + 1)

		occ := ev
		occ.StartTime = time.Date(year, month, start.Day(),
			start.Hour(), start.Minute(), start.Second(), start.Nanosecond(),
			start.Location())
		occ.EndTime = occ.StartTime.Add(duration)
		out = append(out, occ)
	}
	return out
}
