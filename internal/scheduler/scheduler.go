// Package scheduler finds free time for new meetings inside working hours.
package scheduler

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/IMNJL/AI-chef/internal/dateutil"
	"github.com/IMNJL/AI-chef/internal/meeting"
)

// Step is the granularity of suggested start times, in minutes.
const Step = 15

// Scheduler knows the working week.
type Scheduler struct {
	workdays map[time.Weekday]bool
	dayStart int // minutes after midnight
	dayEnd   int
}

// Slot is a free interval.
type Slot struct {
	Start time.Time
	End   time.Time
}

// Minutes returns the length of the slot.
func (s Slot) Minutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}

// New creates a Scheduler for the named workdays and HH:MM day bounds.
func New(workdays []string, dayStart, dayEnd string) (*Scheduler, error) {
	wd := make(map[time.Weekday]bool, len(workdays))
	for _, d := range workdays {
		day, ok := parseWeekday(d)
		if !ok {
			return nil, fmt.Errorf("unknown workday %q", d)
		}
		wd[day] = true
	}
	if len(wd) == 0 {
		return nil, fmt.Errorf("no workdays configured")
	}

	start, err := parseClock(dayStart)
	if err != nil {
		return nil, err
	}
	end, err := parseClock(dayEnd)
	if err != nil {
		return nil, err
	}
	if start >= end {
		return nil, fmt.Errorf("day start %s must be before day end %s", dayStart, dayEnd)
	}

	return &Scheduler{workdays: wd, dayStart: start, dayEnd: end}, nil
}

// IsWorkday reports whether t falls on a configured workday.
func (s *Scheduler) IsWorkday(t time.Time) bool {
	return s.workdays[t.Weekday()]
}

// IsWithinWorkHours reports whether t is inside working hours of a workday.
func (s *Scheduler) IsWithinWorkHours(t time.Time) bool {
	if !s.IsWorkday(t) {
		return false
	}
	m := dateutil.MinuteOfDay(t)
	return m >= s.dayStart && m < s.dayEnd
}

// NextAvailableStart returns the remaining working hours of the first
// workday at or after now. During work hours the slot starts at now rounded
// up to the next Step.
func (s *Scheduler) NextAvailableStart(now time.Time) Slot {
	day := dateutil.StartOfDay(now)
	for range 8 {
		if s.IsWorkday(day) {
			open, shut := s.bounds(day)
			start := open
			if now.After(open) {
				start = dateutil.RoundUpToStep(now, Step)
			}
			if start.Before(shut) {
				return Slot{Start: start, End: shut}
			}
		}
		day = dateutil.AddDays(day, 1)
	}
	open, shut := s.bounds(dateutil.AddDays(dateutil.StartOfDay(now), 1))
	return Slot{Start: open, End: shut}
}

// FindFree returns the earliest slot of the given length that starts at or
// after from, lies inside working hours and overlaps none of busy. It looks
// at most horizon days ahead.
func (s *Scheduler) FindFree(from time.Time, busy []meeting.Meeting, minutes, horizon int) (Slot, bool) {
	if minutes <= 0 || minutes > s.dayEnd-s.dayStart {
		return Slot{}, false
	}
	ms := append([]meeting.Meeting(nil), busy...)
	sort.Slice(ms, func(i, j int) bool { return ms[i].StartsAt.Before(ms[j].StartsAt) })

	day := dateutil.StartOfDay(from)
	for range horizon {
		if s.IsWorkday(day) {
			if slot, ok := s.freeOn(day, from, ms, minutes); ok {
				return slot, true
			}
		}
		day = dateutil.AddDays(day, 1)
	}
	return Slot{}, false
}

// freeOn scans one day. ms is sorted by start.
func (s *Scheduler) freeOn(day, from time.Time, ms []meeting.Meeting, minutes int) (Slot, bool) {
	open, shut := s.bounds(day)
	cand := open
	if from.After(cand) {
		cand = dateutil.RoundUpToStep(from, Step)
	}
	for {
		end := dateutil.AddMinutes(cand, minutes)
		if end.After(shut) {
			return Slot{}, false
		}
		blocker, ok := firstOverlap(ms, cand, end)
		if !ok {
			return Slot{Start: cand, End: end}, true
		}
		cand = dateutil.RoundUpToStep(blocker.EndsAt.In(day.Location()), Step)
	}
}

func firstOverlap(ms []meeting.Meeting, start, end time.Time) (meeting.Meeting, bool) {
	for _, m := range ms {
		if m.StartsAt.Before(end) && m.EndsAt.After(start) {
			return m, true
		}
	}
	return meeting.Meeting{}, false
}

// bounds returns the start and end of working hours on day.
func (s *Scheduler) bounds(day time.Time) (time.Time, time.Time) {
	at := func(m int) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), m/60, m%60, 0, 0, day.Location())
	}
	return at(s.dayStart), at(s.dayEnd)
}

func parseWeekday(s string) (time.Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, true
		}
	}
	return 0, false
}

// parseClock converts "HH:MM" to minutes after midnight. "24:00" is the end
// of the day.
func parseClock(s string) (int, error) {
	if s == "24:00" {
		return 24 * 60, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}
