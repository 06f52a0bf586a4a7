// Package dateutil derives calendar windows (days, Monday-first weeks,
// months and the 6x7 month grid) from an anchor date, and parses the date
// strings accepted on the command line.
//
// All functions work in the location of their argument. Day arithmetic goes
// through time.Date so that adding days keeps the wall clock across DST
// changes instead of adding multiples of 24 hours.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the wire and CLI layout for calendar dates.
const DateLayout = "2006-01-02"

// MonthGridDays is the number of cells in a month grid (6 rows of 7 days).
const MonthGridDays = 42

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
	ErrDateInPast         = errors.New("cannot schedule in the past")
)

var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of days covered by the range, both ends included.
func (r DateRange) Days() int {
	return DaysBetween(r.Start, r.End) + 1
}

// Contains reports whether t falls on one of the range's days.
func (r DateRange) Contains(t time.Time) bool {
	day := StartOfDay(t)
	return !day.Before(StartOfDay(r.Start)) && !day.After(StartOfDay(r.End))
}

// NewDateRange parses a range from two YYYY-MM-DD strings.
// An empty start means today, an empty end means the start day.
func NewDateRange(startDate, endDate string) (*DateRange, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}

	end := start
	if endDate != "" {
		end, err = ParseDate(endDate)
		if err != nil {
			return nil, err
		}
	}

	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}
	return &DateRange{Start: start, End: end}, nil
}

// ParseDate parses a YYYY-MM-DD string in UTC. Empty input returns today.
func ParseDate(s string) (time.Time, error) {
	return ParseDateIn(s, time.UTC)
}

// ParseDateIn parses a YYYY-MM-DD string as midnight in loc.
// Empty input returns today in loc.
func ParseDateIn(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return StartOfDay(time.Now().In(loc)), nil
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// StartOfDay returns midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// TruncateToDay is an alias of StartOfDay kept for CLI callers.
func TruncateToDay(t time.Time) time.Time {
	return StartOfDay(t)
}

// StartOfWeek returns midnight of the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return AddDays(StartOfDay(t), -offset)
}

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// AddDays shifts t by n calendar days keeping its wall-clock time.
func AddDays(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+n,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// AddMinutes shifts t by n minutes of elapsed time.
func AddMinutes(t time.Time, n int) time.Time {
	return t.Add(time.Duration(n) * time.Minute)
}

// AddMonths returns the first day of the month n months after t's month.
// The day is normalised to the 1st so that Jan 31 + 1 month is Feb 1.
func AddMonths(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, t.Location())
}

// WeekRange returns the Monday and Sunday of the week containing t.
func WeekRange(t time.Time) (monday, sunday time.Time) {
	monday = StartOfWeek(t)
	return monday, AddDays(monday, 6)
}

// MonthGridRange returns the first and last day shown by a month grid
// anchored on t: the Monday on or before the 1st, and 41 days after it.
func MonthGridRange(t time.Time) (first, last time.Time) {
	first = StartOfWeek(StartOfMonth(t))
	return first, AddDays(first, MonthGridDays-1)
}

// DaysBetween returns the number of calendar days from a's day to b's day.
// The result is negative when b is before a.
func DaysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// DayIndex returns the column of t in the week starting at weekStart,
// or -1 when t is outside that week.
func DayIndex(weekStart, t time.Time) int {
	idx := DaysBetween(weekStart, t.In(weekStart.Location()))
	if idx < 0 || idx > 6 {
		return -1
	}
	return idx
}

// MinuteOfDay returns the minutes elapsed on the wall clock since midnight.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// RoundUpToStep drops seconds and rounds t up to the next multiple of step
// minutes. A time already on a step boundary is returned unchanged.
func RoundUpToStep(t time.Time, step int) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	if step <= 0 {
		return t
	}
	rem := t.Minute() % step
	if rem == 0 {
		return t
	}
	return AddMinutes(t, step-rem)
}

// ParseRelativeDate parses the date forms accepted by the CLI:
//   - "" or "today"
//   - "tomorrow", "yesterday"
//   - a weekday name ("friday"), meaning its next occurrence
//   - "next-<weekday>" and "next-week"
//   - "last-week"
//   - YYYY-MM-DD
//
// Input is case-insensitive. Past dates are allowed: meetings can be
// viewed and moved in any week.
func ParseRelativeDate(s string, relativeTo time.Time) (time.Time, error) {
	today := StartOfDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "tomorrow":
		return AddDays(today, 1), nil
	case "yesterday":
		return AddDays(today, -1), nil
	case "next-week":
		return AddDays(today, 7), nil
	case "last-week":
		return AddDays(today, -7), nil
	}

	name := strings.TrimPrefix(input, "next-")
	if target, ok := weekdayMap[name]; ok {
		return nextWeekday(today, target), nil
	}
	if name != input {
		return time.Time{}, ErrInvalidDateFormat
	}

	result, err := time.ParseInLocation(DateLayout, input, relativeTo.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return result, nil
}

// ParseFutureDate is ParseRelativeDate that rejects days before relativeTo.
func ParseFutureDate(s string, relativeTo time.Time) (time.Time, error) {
	d, err := ParseRelativeDate(s, relativeTo)
	if err != nil {
		return time.Time{}, err
	}
	if d.Before(StartOfDay(relativeTo)) {
		return time.Time{}, ErrDateInPast
	}
	return d, nil
}

// nextWeekday returns the next occurrence of target strictly after today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	days := int(target) - int(today.Weekday())
	if days <= 0 {
		days += 7
	}
	return AddDays(today, days)
}
