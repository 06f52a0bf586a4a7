package meeting

import (
	"time"

	"github.com/IMNJL/AI-chef/internal/dateutil"
)

// DayMinutes is the number of minutes in a rendered day column.
const DayMinutes = 24 * 60

// DayEvent is a meeting clipped to one local calendar day.
// It is rebuilt on every render and never sent to the store.
type DayEvent struct {
	Meeting

	Day      time.Time // midnight of the rendered day
	DayIndex int       // column in the rendered week, -1 outside a week
	StartMin int       // minutes after midnight, in [0, DayMinutes]
	EndMin   int       // minutes after midnight, in [0, DayMinutes]
	Lane     int
}

// ClipToDay returns the part of m that falls on day, or false when m does
// not intersect it.
func ClipToDay(m Meeting, day time.Time) (DayEvent, bool) {
	dayStart := dateutil.StartOfDay(day)
	dayEnd := dateutil.AddDays(dayStart, 1)

	s := clamp(m.StartsAt, dayStart, dayEnd)
	e := clamp(m.EndsAt, dayStart, dayEnd)
	if !e.After(dayStart) || !s.Before(dayEnd) {
		return DayEvent{}, false
	}

	return DayEvent{
		Meeting:  m,
		Day:      dayStart,
		DayIndex: -1,
		StartMin: max(0, minutesBetween(dayStart, s)),
		EndMin:   min(DayMinutes, minutesBetween(dayStart, e)),
	}, true
}

// WeekEvents buckets meetings into the seven day columns of the week
// starting at weekStart. A meeting spanning midnight appears in every day it
// touches.
func WeekEvents(ms []Meeting, weekStart time.Time) [7][]DayEvent {
	var days [7][]DayEvent
	start := dateutil.StartOfDay(weekStart)
	for _, m := range ms {
		for d := range 7 {
			ev, ok := ClipToDay(m, dateutil.AddDays(start, d))
			if !ok {
				continue
			}
			ev.DayIndex = d
			days[d] = append(days[d], ev)
		}
	}
	return days
}

// DayEvents returns the meetings clipped to a single day.
func DayEvents(ms []Meeting, day time.Time) []DayEvent {
	var out []DayEvent
	for _, m := range ms {
		if ev, ok := ClipToDay(m, day); ok {
			out = append(out, ev)
		}
	}
	return out
}

func clamp(t, lo, hi time.Time) time.Time {
	if t.Before(lo) {
		return lo
	}
	if t.After(hi) {
		return hi
	}
	return t
}

func minutesBetween(from, to time.Time) int {
	return int(to.Sub(from).Round(time.Minute) / time.Minute)
}
