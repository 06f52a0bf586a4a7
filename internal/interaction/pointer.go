package interaction

import (
	"math"
	"time"

	"github.com/IMNJL/AI-chef/internal/layout"
)

// Defaults matching the web grid.
const (
	DefaultThreshold     = 6.0
	DefaultSnapMinutes   = 15
	DefaultMinDuration   = 15
	DefaultClickCooldown = 350 * time.Millisecond
)

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

// PointerEvent is a pointer sample in grid coordinates.
type PointerEvent struct {
	ID     int64
	X, Y   float64
	Button Button
}

// Geometry is the grid measurement captured once when a session starts.
type Geometry struct {
	RowHeight float64 // units per hour
	DayWidth  float64 // width of one day column
}

func (g Geometry) rowHeight() float64 { return math.Max(g.RowHeight, 1) }
func (g Geometry) dayWidth() float64  { return math.Max(g.DayWidth, 1) }

// Config tunes both machines.
type Config struct {
	Threshold     float64       // motion needed before a press becomes a drag
	SnapMinutes   int           // granularity of committed changes
	MinDuration   int           // shortest duration a resize can produce, in minutes
	ClickCooldown time.Duration // clicks ignored for this long after a drag
	MinHeight     float64       // smallest previewed height
}

// DefaultConfig returns the pixel configuration of the web grid.
func DefaultConfig() Config {
	return Config{
		Threshold:     DefaultThreshold,
		SnapMinutes:   DefaultSnapMinutes,
		MinDuration:   DefaultMinDuration,
		ClickCooldown: DefaultClickCooldown,
		MinHeight:     layout.DefaultMinHeight,
	}
}

// RoundHalfUp rounds to the nearest integer, halves towards +Inf.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// SnapMinutes rounds raw minutes to whole minutes and then to the nearest
// multiple of step.
func SnapMinutes(raw float64, step int) int {
	minutes := RoundHalfUp(raw)
	if step <= 1 {
		return minutes
	}
	return RoundHalfUp(float64(minutes)/float64(step)) * step
}

// DeltaMinutes converts a vertical offset into snapped minutes.
func DeltaMinutes(dy float64, g Geometry, step int) int {
	return SnapMinutes(dy/g.rowHeight()*60, step)
}

// DeltaDays converts a horizontal offset into whole day columns.
func DeltaDays(dx float64, g Geometry) int {
	return RoundHalfUp(dx / g.dayWidth())
}
