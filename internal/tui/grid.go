package tui

import (
	"math"
	"slices"

	"github.com/IMNJL/AI-chef/internal/interaction"
	"github.com/IMNJL/AI-chef/internal/layout"
	"github.com/IMNJL/AI-chef/internal/meeting"
)

// Screen layout, in terminal lines and cells.
const (
	titleLines  = 1
	headerLines = 1
	footerLines = 2
	gridTop     = titleLines + headerLines
	gutterWidth = 6 // "09:00 "
	minColWidth = 4
	minCellRows = 2
)

// weekGrid is the measured week grid for one terminal size.
type weekGrid struct {
	colW     int // cells per day column, separator included
	rowLines int // lines per hour
	height   int // visible grid lines
	scroll   int // grid lines scrolled off the top
}

func newWeekGrid(width, height, rowLines, scroll int) weekGrid {
	g := weekGrid{
		colW:     max((width-gutterWidth)/7, minColWidth),
		rowLines: max(rowLines, 1),
		height:   max(height-gridTop-footerLines, 1),
	}
	g.scroll = g.clampScroll(scroll)
	return g
}

func (g weekGrid) totalLines() int {
	return 24 * g.rowLines
}

func (g weekGrid) clampScroll(scroll int) int {
	return min(max(scroll, 0), max(g.totalLines()-g.height, 0))
}

// minutesPerLine is the time one grid line covers.
func (g weekGrid) minutesPerLine() int {
	return 60 / g.rowLines
}

// lineOf returns the unscrolled grid line of a minute of the day.
func (g weekGrid) lineOf(minute int) int {
	return minute * g.rowLines / 60
}

// colX returns the screen x of day column d, at its separator.
func (g weekGrid) colX(d int) int {
	return gutterWidth + d*g.colW
}

// screenY returns the screen row of a grid line, and whether it is visible.
func (g weekGrid) screenY(line int) (int, bool) {
	y := line - g.scroll
	return gridTop + y, y >= 0 && y < g.height
}

// at maps a screen cell to a day column and grid line.
func (g weekGrid) at(x, y int) (day, line int, ok bool) {
	if x < gutterWidth || y < gridTop || y >= gridTop+g.height {
		return 0, 0, false
	}
	day = (x - gutterWidth) / g.colW
	if day > 6 {
		return 0, 0, false
	}
	return day, y - gridTop + g.scroll, true
}

// geometry is what the interaction machines measure drags with.
func (g weekGrid) geometry() interaction.Geometry {
	return interaction.Geometry{RowHeight: float64(g.rowLines), DayWidth: float64(g.colW)}
}

func (g weekGrid) metrics() layout.Metrics {
	return layout.Metrics{RowHeight: float64(g.rowLines), MinHeight: 1}
}

// block is a meeting fragment placed in the week grid. x and w are screen
// cells; y and h are unscrolled grid lines.
type block struct {
	ev   meeting.DayEvent
	x, w int
	y, h int
}

func (b block) contains(day, x, line int) bool {
	return b.ev.DayIndex == day && x >= b.x && x < b.x+b.w && line >= b.y && line < b.y+b.h
}

// onHandle reports whether line is the resize handle: the last line of a
// block at least two lines tall.
func (b block) onHandle(line int) bool {
	return b.h >= 2 && line == b.y+b.h-1
}

// weekBlocks lays out the day fragments of a week.
func weekBlocks(days [7][]meeting.DayEvent, g weekGrid) []block {
	var out []block
	for d, events := range days {
		placed, _ := layout.Day(events, g.metrics())
		inner := float64(g.colW - 1)
		for _, p := range placed {
			lx := int(math.Round(p.Box.LeftPct / 100 * inner))
			rx := int(math.Round((p.Box.LeftPct + p.Box.WidthPct) / 100 * inner))
			y := int(math.Floor(p.Box.Top))
			out = append(out, block{
				ev: p.Event,
				x:  g.colX(d) + 1 + lx,
				w:  max(rx-lx, 1),
				y:  y,
				h:  max(int(math.Floor(p.Box.Top+p.Box.Height))-y, 1),
			})
		}
	}
	return out
}

// hit returns the block under a screen cell, preferring the topmost lane.
func hit(blocks []block, g weekGrid, x, y int) (block, int, bool) {
	day, line, ok := g.at(x, y)
	if !ok {
		return block{}, 0, false
	}
	i := slices.IndexFunc(blocks, func(b block) bool { return b.contains(day, x, line) })
	if i < 0 {
		return block{}, line, false
	}
	return blocks[i], line, true
}

// monthGrid is the measured month grid for one terminal size.
type monthGrid struct {
	cellW, cellH int
}

func newMonthGrid(width, height int) monthGrid {
	body := max(height-gridTop-footerLines, minCellRows*6)
	return monthGrid{
		cellW: max(width/7, minColWidth),
		cellH: max(body/6, minCellRows),
	}
}

// cellOrigin returns the screen position of cell i of the 6x7 grid.
func (g monthGrid) cellOrigin(i int) (x, y int) {
	return (i % 7) * g.cellW, gridTop + (i/7)*g.cellH
}

// at maps a screen cell to a month cell index and the line inside it.
func (g monthGrid) at(x, y int) (idx, line int, ok bool) {
	if x < 0 || y < gridTop {
		return 0, 0, false
	}
	col, row := x/g.cellW, (y-gridTop)/g.cellH
	if col > 6 || row > 5 {
		return 0, 0, false
	}
	return row*7 + col, (y - gridTop) % g.cellH, true
}

// chipRows returns how many chips fit in a cell with n chips and overflow
// hidden meetings, and how many end up summarised as "+N more".
func (g monthGrid) chipRows(n, overflow int) (shown, more int) {
	room := g.cellH - 1
	if overflow == 0 && n <= room {
		return n, 0
	}
	shown = min(n, max(room-1, 0))
	return shown, n - shown + overflow
}
