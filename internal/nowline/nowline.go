// Package nowline computes the "current time" marker drawn across the week
// grid.
package nowline

import (
	"sync"
	"time"

	"github.com/IMNJL/AI-chef/internal/dateutil"
	"github.com/IMNJL/AI-chef/internal/layout"
	"github.com/IMNJL/AI-chef/internal/timecodec"
)

// Interval is how often the marker is recomputed.
const Interval = time.Minute

// Marker is the position of the now line in the displayed week.
type Marker struct {
	DayIndex int     // 0 = Monday
	Minutes  int     // minutes since local midnight
	Top      float64 // offset inside the day column
	Label    string  // HH:MM
}

// Compute returns the marker for now, or false when now falls outside the
// week [weekStart, weekStart+7d). now is converted to weekStart's location.
func Compute(now, weekStart time.Time, rowHeight float64) (Marker, bool) {
	weekStart = dateutil.StartOfDay(weekStart)
	local := now.In(weekStart.Location())
	if local.Before(weekStart) || !local.Before(dateutil.AddDays(weekStart, 7)) {
		return Marker{}, false
	}

	minutes := dateutil.MinuteOfDay(local)
	return Marker{
		DayIndex: dateutil.DaysBetween(weekStart, local),
		Minutes:  minutes,
		Top:      layout.MinutesToOffset(minutes, rowHeight),
		Label:    timecodec.Clock(local),
	}, true
}

// Indicator holds the latest marker. Every Tick replaces the marker as a
// whole, so readers never see a half-updated value.
type Indicator struct {
	mu        sync.RWMutex
	weekStart time.Time
	rowHeight float64
	clock     string
	marker    Marker
	visible   bool
}

// NewIndicator creates an indicator for the given week.
func NewIndicator(weekStart time.Time, rowHeight float64) *Indicator {
	return &Indicator{weekStart: weekStart, rowHeight: rowHeight}
}

// SetWeek changes the displayed week. The marker is refreshed on the next
// Tick.
func (i *Indicator) SetWeek(weekStart time.Time) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.weekStart = weekStart
}

// Tick recomputes the clock label and the marker for now.
func (i *Indicator) Tick(now time.Time) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.clock = timecodec.Clock(now.In(i.weekStart.Location()))
	i.marker, i.visible = Compute(now, i.weekStart, i.rowHeight)
}

// Marker returns the current marker and whether it is visible.
func (i *Indicator) Marker() (Marker, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.marker, i.visible
}

// Clock returns the HH:MM label of the last tick.
func (i *Indicator) Clock() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.clock
}
