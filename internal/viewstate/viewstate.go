// Package viewstate holds the calendar view state and the single function
// that changes it. The state is a plain value and serializes to JSON.
package viewstate

import (
	"errors"
	"fmt"
	"time"

	"github.com/IMNJL/AI-chef/internal/dateutil"
	"github.com/IMNJL/AI-chef/internal/meeting"
)

// Mode is the displayed view.
type Mode string

const (
	ModeWeek  Mode = "week"
	ModeMonth Mode = "month"
)

// ParseMode parses "week" or "month".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeWeek, ModeMonth:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("invalid view mode %q: must be week or month", s)
	}
}

// Status messages.
const (
	StatusLoading      = "Loading..."
	StatusSynced       = "Sync enabled"
	StatusUnauthorized = "Unauthorized"
	StatusNetwork      = "Network error"
	StatusSaving       = "Saving..."
)

// State is the whole view state.
type State struct {
	Mode       Mode              `json:"mode"`
	WeekStart  time.Time         `json:"weekStart"`
	MonthStart time.Time         `json:"monthStart"`
	Meetings   []meeting.Meeting `json:"meetings"`
	Status     string            `json:"status"`
	Loading    bool              `json:"loading"`
}

// New returns the state anchored on now.
func New(mode Mode, now time.Time) State {
	if mode != ModeMonth {
		mode = ModeWeek
	}
	return State{
		Mode:       mode,
		WeekStart:  dateutil.StartOfWeek(now),
		MonthStart: dateutil.StartOfMonth(now),
	}
}

// Range returns the inclusive dates to fetch for the current view.
func (s State) Range() dateutil.DateRange {
	if s.Mode == ModeMonth {
		first, last := dateutil.MonthGridRange(s.MonthStart)
		return dateutil.DateRange{Start: first, End: last}
	}
	first, last := dateutil.WeekRange(s.WeekStart)
	return dateutil.DateRange{Start: first, End: last}
}

// Anchor returns the first day of the displayed period.
func (s State) Anchor() time.Time {
	if s.Mode == ModeMonth {
		return s.MonthStart
	}
	return s.WeekStart
}

// Action is anything Update accepts.
type Action interface {
	isAction()
}

type (
	// Prev moves one period back.
	Prev struct{}
	// Next moves one period forward.
	Next struct{}
	// Today re-anchors both views on Now.
	Today struct{ Now time.Time }
	// SwitchMode changes the view, deriving the other anchor.
	SwitchMode struct{ Mode Mode }
	// GoTo anchors both views on Date.
	GoTo struct{ Date time.Time }
	// Loading marks a fetch as started.
	Loading struct{}
	// Loaded replaces the working set with a successful fetch.
	Loaded struct{ Meetings []meeting.Meeting }
	// LoadFailed empties the working set after a failed fetch.
	LoadFailed struct{ Err error }
	// SetStatus replaces the status line.
	SetStatus struct{ Text string }
)

func (Prev) isAction()       {}
func (Next) isAction()       {}
func (Today) isAction()      {}
func (SwitchMode) isAction() {}
func (GoTo) isAction()       {}
func (Loading) isAction()    {}
func (Loaded) isAction()     {}
func (LoadFailed) isAction() {}
func (SetStatus) isAction()  {}

// Update returns the state after applying a. s is not modified.
func Update(s State, a Action) State {
	switch a := a.(type) {
	case Prev:
		return step(s, -1)
	case Next:
		return step(s, 1)
	case Today:
		s.WeekStart = dateutil.StartOfWeek(a.Now)
		s.MonthStart = dateutil.StartOfMonth(a.Now)
	case GoTo:
		s.WeekStart = dateutil.StartOfWeek(a.Date)
		s.MonthStart = dateutil.StartOfMonth(a.Date)
	case SwitchMode:
		if a.Mode == s.Mode {
			return s
		}
		switch a.Mode {
		case ModeMonth:
			s.MonthStart = dateutil.StartOfMonth(s.WeekStart)
		case ModeWeek:
			s.WeekStart = dateutil.StartOfWeek(s.MonthStart)
		default:
			return s
		}
		s.Mode = a.Mode
	case Loading:
		s.Loading = true
		s.Status = StatusLoading
	case Loaded:
		ms := append([]meeting.Meeting(nil), a.Meetings...)
		meeting.SortByStart(ms)
		s.Meetings = ms
		s.Loading = false
		s.Status = StatusSynced
	case LoadFailed:
		s.Meetings = nil
		s.Loading = false
		s.Status = StatusFor(a.Err)
	case SetStatus:
		s.Status = a.Text
	}
	return s
}

func step(s State, dir int) State {
	if s.Mode == ModeMonth {
		s.MonthStart = dateutil.AddMonths(s.MonthStart, dir)
	} else {
		s.WeekStart = dateutil.AddDays(s.WeekStart, 7*dir)
	}
	return s
}

// StatusFor maps an error from the store onto a status line.
func StatusFor(err error) string {
	var se *meeting.StoreError
	switch {
	case err == nil:
		return StatusSynced
	case errors.Is(err, meeting.ErrUnauthorized):
		return StatusUnauthorized
	case errors.As(err, &se):
		return fmt.Sprintf("API error (%d)", se.Status)
	case errors.Is(err, meeting.ErrNetwork):
		return StatusNetwork
	case errors.Is(err, meeting.ErrValidation):
		return err.Error()
	default:
		return "Error: " + err.Error()
	}
}
