// Package layout assigns overlapping meetings of a day to side-by-side lanes
// and computes their boxes inside a day column.
package layout

import (
	"cmp"
	"slices"

	"github.com/IMNJL/AI-chef/internal/meeting"
)

const (
	// DefaultRowHeight is the height of one hour row in pixels.
	DefaultRowHeight = 48.0
	// DefaultMinHeight is the smallest rendered event height in pixels.
	DefaultMinHeight = 22.0
	// MinVisibleMinutes is the shortest duration used when sizing a box.
	MinVisibleMinutes = 10
)

// Result is the lane assignment for one day.
type Result struct {
	Events   []meeting.DayEvent // sorted by start, then end
	MaxLanes int                // never less than 1
}

type activeLane struct {
	endMin int
	lane   int
}

// Assign places each event in the lowest lane not used by an event still
// running at its start. An event ending exactly when another starts frees its
// lane. The input slice is not modified.
func Assign(events []meeting.DayEvent) Result {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b meeting.DayEvent) int {
		if c := cmp.Compare(a.StartMin, b.StartMin); c != 0 {
			return c
		}
		return cmp.Compare(a.EndMin, b.EndMin)
	})

	var active []activeLane
	maxLanes := 1
	for i := range sorted {
		ev := &sorted[i]
		active = slices.DeleteFunc(active, func(a activeLane) bool {
			return a.endMin <= ev.StartMin
		})

		ev.Lane = lowestFreeLane(active)
		active = append(active, activeLane{endMin: ev.EndMin, lane: ev.Lane})
		maxLanes = max(maxLanes, len(active), ev.Lane+1)
	}

	return Result{Events: sorted, MaxLanes: maxLanes}
}

func lowestFreeLane(active []activeLane) int {
	lane := 0
	for slices.ContainsFunc(active, func(a activeLane) bool { return a.lane == lane }) {
		lane++
	}
	return lane
}

// Metrics describes the day column an event is drawn into.
type Metrics struct {
	RowHeight float64 // units per hour
	MinHeight float64 // smallest box height
}

// DefaultMetrics returns the pixel metrics of the web grid.
func DefaultMetrics() Metrics {
	return Metrics{RowHeight: DefaultRowHeight, MinHeight: DefaultMinHeight}
}

// Box is the rectangle of an event inside its day column. Top and Height
// are in the units of Metrics; Left and Width are percentages of the column.
type Box struct {
	Top      float64
	Height   float64
	LeftPct  float64
	WidthPct float64
}

// Place computes the box of an assigned event.
func Place(ev meeting.DayEvent, maxLanes int, m Metrics) Box {
	maxLanes = max(maxLanes, 1)
	end := max(ev.EndMin, ev.StartMin+MinVisibleMinutes)
	width := 100 / float64(maxLanes)
	return Box{
		Top:      MinutesToOffset(ev.StartMin, m.RowHeight),
		Height:   max(m.MinHeight, MinutesToOffset(end-ev.StartMin, m.RowHeight)),
		LeftPct:  float64(ev.Lane) * width,
		WidthPct: width,
	}
}

// Placed pairs an event with its box.
type Placed struct {
	Event meeting.DayEvent
	Box   Box
}

// Day assigns lanes and computes boxes for all events of one day.
func Day(events []meeting.DayEvent, m Metrics) ([]Placed, int) {
	res := Assign(events)
	out := make([]Placed, len(res.Events))
	for i, ev := range res.Events {
		out[i] = Placed{Event: ev, Box: Place(ev, res.MaxLanes, m)}
	}
	return out, res.MaxLanes
}

// MinutesToOffset converts minutes into a vertical offset.
func MinutesToOffset(minutes int, rowHeight float64) float64 {
	return float64(minutes) / 60 * rowHeight
}
