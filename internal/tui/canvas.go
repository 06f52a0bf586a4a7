package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// canvas is a fixed grid of styled cells. Styles are compared by pointer,
// so callers pass pointers into a long-lived Styles value.
type canvas struct {
	w, h  int
	cells []cell
}

type cell struct {
	r    rune // 0 marks the trailing half of a wide rune
	skip bool
	st   *lipgloss.Style
}

func newCanvas(w, h int, bg *lipgloss.Style) *canvas {
	c := &canvas{w: max(w, 0), h: max(h, 0)}
	c.cells = make([]cell, c.w*c.h)
	for i := range c.cells {
		c.cells[i] = cell{r: ' ', st: bg}
	}
	return c
}

func (c *canvas) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.w && y < c.h
}

func (c *canvas) set(x, y int, r rune, st *lipgloss.Style) {
	if !c.in(x, y) {
		return
	}
	c.cells[y*c.w+x] = cell{r: r, st: st}
}

// fill paints a rectangle with spaces.
func (c *canvas) fill(x, y, w, h int, st *lipgloss.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			c.set(col, row, ' ', st)
		}
	}
}

// hline draws r across [x, x+w) on row y, keeping each cell's style unless
// st is set.
func (c *canvas) hline(x, y, w int, r rune, st *lipgloss.Style) {
	for col := x; col < x+w; col++ {
		c.set(col, y, r, st)
	}
}

// text writes s at (x, y), truncated to maxW cells with an ellipsis.
// It returns the number of cells written.
func (c *canvas) text(x, y, maxW int, s string, st *lipgloss.Style) int {
	if maxW <= 0 || !c.in(x, y) {
		return 0
	}
	s = ansi.Truncate(s, maxW, "…")
	col := x
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if col+rw > x+maxW || col+rw > c.w {
			break
		}
		c.set(col, y, r, st)
		if rw == 2 {
			c.cells[y*c.w+col+1] = cell{skip: true, st: st}
		}
		col += rw
	}
	return col - x
}

// center writes s centered in [x, x+w).
func (c *canvas) center(x, y, w int, s string, st *lipgloss.Style) {
	sw := min(ansi.StringWidth(s), w)
	c.text(x+(w-sw)/2, y, w, s, st)
}

// String renders the canvas, grouping runs of equally styled cells.
func (c *canvas) String() string {
	var b strings.Builder
	var run strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		var cur *lipgloss.Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur != nil {
				b.WriteString(cur.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for x := 0; x < c.w; x++ {
			cl := c.cells[y*c.w+x]
			if cl.skip {
				continue
			}
			if cl.st != cur {
				flush()
				cur = cl.st
			}
			run.WriteRune(cl.r)
		}
		flush()
	}
	return b.String()
}
