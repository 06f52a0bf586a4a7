package tui

import (
	"fmt"
	"strconv"

	"github.com/IMNJL/AI-chef/internal/dateutil"
	"github.com/IMNJL/AI-chef/internal/layout"
	"github.com/IMNJL/AI-chef/internal/timecodec"
)

var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// renderMonth draws the 6x7 month grid.
func (m Model) renderMonth(c *canvas) {
	s := m.styles
	g := m.monthGrid()
	loc := m.svc.Location()
	cells := layout.MonthGrid(m.state.MonthStart, m.state.Meetings, m.now())

	for d, name := range weekdayNames {
		c.center(d*g.cellW, titleLines, g.cellW, name, &s.MonthWeekdayStyle)
	}

	for i, cell := range cells {
		x, y := g.cellOrigin(i)
		c.fill(x, y, g.cellW, g.cellH, &s.MonthCellStyle)
		if x > 0 {
			for row := range g.cellH {
				c.set(x, y+row, '│', &s.SeparatorStyle)
			}
		}
		inner, innerW := x+1, g.cellW-1

		header := &s.MonthDayStyle
		if !cell.InMonth {
			header = &s.MonthOutsideStyle
		}
		if dateutil.StartOfDay(cell.Date).Equal(dateutil.StartOfDay(m.cursor)) {
			c.fill(inner, y, innerW, 1, &s.MonthCursorStyle)
			header = &s.MonthCursorStyle
		}
		num := strconv.Itoa(cell.Date.Day())
		if cell.Today {
			num = " " + num + " "
			c.text(inner, y, innerW, num, &s.MonthTodayStyle)
		} else {
			c.text(inner, y, innerW, num, header)
		}

		shown, more := g.chipRows(len(cell.Chips), cell.Overflow)
		for j, mt := range cell.Chips[:shown] {
			st := &s.MonthChipStyle
			switch {
			case m.ctrl.Pending(mt.ID):
				st = &s.EventPendingStyle
			case mt.ID == m.selected:
				st = &s.MonthSelectedStyle
			}
			c.fill(inner, y+1+j, innerW, 1, st)
			c.text(inner, y+1+j, innerW, timecodec.Clock(mt.StartsAt.In(loc))+" "+mt.DisplayTitle(), st)
		}
		if more > 0 {
			c.text(inner, y+1+shown, innerW, fmt.Sprintf("+%d more", more), &s.MonthMoreStyle)
		}
	}
}
