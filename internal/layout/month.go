package layout

import (
	"time"

	"github.com/IMNJL/AI-chef/internal/dateutil"
	"github.com/IMNJL/AI-chef/internal/meeting"
)

// MaxChips is the number of meetings listed in a month cell before the
// rest are summarised as "+N more".
const MaxChips = 3

// MonthCell is one day of the 6x7 month grid.
type MonthCell struct {
	Date     time.Time
	InMonth  bool
	Today    bool
	Chips    []meeting.Meeting
	Overflow int
}

// MonthGrid lays out the 42 cells of the month containing anchor. Each
// meeting is listed on the day it starts, in the order of ms; ms should be
// sorted by start. Meetings starting outside the grid are dropped.
func MonthGrid(anchor time.Time, ms []meeting.Meeting, now time.Time) [dateutil.MonthGridDays]MonthCell {
	var cells [dateutil.MonthGridDays]MonthCell
	monthStart := dateutil.StartOfMonth(anchor)
	first, _ := dateutil.MonthGridRange(monthStart)
	loc := monthStart.Location()
	today := dateutil.StartOfDay(now.In(loc))

	for i := range cells {
		day := dateutil.AddDays(first, i)
		cells[i] = MonthCell{
			Date:    day,
			InMonth: day.Month() == monthStart.Month(),
			Today:   day.Equal(today),
		}
	}

	for _, m := range ms {
		i := dateutil.DaysBetween(first, m.StartsAt.In(loc))
		if i < 0 || i >= len(cells) {
			continue
		}
		if len(cells[i].Chips) >= MaxChips {
			cells[i].Overflow++
			continue
		}
		cells[i].Chips = append(cells[i].Chips, m)
	}
	return cells
}

// CellAt returns the cell index for a date, or -1 when it is off the grid.
func CellAt(anchor, date time.Time) int {
	first, _ := dateutil.MonthGridRange(anchor)
	i := dateutil.DaysBetween(first, date.In(first.Location()))
	if i < 0 || i >= dateutil.MonthGridDays {
		return -1
	}
	return i
}
