package tui

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/IMNJL/AI-chef/internal/dateutil"
	"github.com/IMNJL/AI-chef/internal/interaction"
	"github.com/IMNJL/AI-chef/internal/meeting"
	"github.com/IMNJL/AI-chef/internal/timecodec"
	"github.com/IMNJL/AI-chef/internal/tui/view"
)

// blocks lays out the displayed week.
func (m Model) blocks(g weekGrid) []block {
	return weekBlocks(meeting.WeekEvents(m.state.Meetings, m.state.WeekStart), g)
}

// renderWeek draws the day header and the visible part of the week grid.
func (m Model) renderWeek(c *canvas) {
	s := m.styles
	g := m.weekGrid()
	now := m.now()

	for d, label := range view.HeaderLabels(m.state.WeekStart, now) {
		st := &s.DayHeaderStyle
		if label.Today {
			st = &s.DayHeaderTodayStyle
		}
		c.center(g.colX(d)+1, titleLines, g.colW-1, label.Text, st)
	}

	cursorDay := dateutil.DaysBetween(m.state.WeekStart, m.cursor)
	cursorLine := g.lineOf(dateutil.MinuteOfDay(m.cursor))

	for row := range g.height {
		line := g.scroll + row
		y := gridTop + row
		hour := line / g.rowLines
		if hour >= 24 {
			break
		}
		if line%g.rowLines == 0 {
			c.text(0, y, gutterWidth-1, fmt.Sprintf("%02d:00", hour), &s.GutterStyle)
		}
		bg := &s.GridStyle
		if hour%2 == 1 {
			bg = &s.GridHourStyle
		}
		for d := range 7 {
			c.set(g.colX(d), y, '│', &s.SeparatorStyle)
			c.fill(g.colX(d)+1, y, g.colW-1, 1, bg)
		}
		if line == cursorLine && cursorDay >= 0 && cursorDay < 7 {
			c.fill(g.colX(cursorDay)+1, y, g.colW-1, 1, &s.CursorStyle)
		}
	}

	if mk, ok := m.nowInd.Marker(); ok {
		if y, visible := g.screenY(int(mk.Top)); visible {
			c.hline(g.colX(mk.DayIndex)+1, y, g.colW-1, '─', &s.NowLineStyle)
			c.text(0, y, gutterWidth-1, mk.Label, &s.GutterNowStyle)
		}
	}

	active, dragging := m.ctrl.Active()
	for _, b := range m.blocks(g) {
		st := m.blockStyle(b, now)
		if dragging && active.Subject.ID == b.ev.ID && active.Subject.DayIndex == b.ev.DayIndex {
			st = &s.EventGhostStyle
		}
		drawBlock(c, g, b, st, blockLines(b.ev, b.h))
	}

	if dragging {
		m.drawPreview(c, g, active)
	}
}

func (m Model) blockStyle(b block, now time.Time) *lipgloss.Style {
	s := m.styles
	past := !b.ev.EndsAt.After(now)
	alt := b.ev.Lane%2 == 1
	switch {
	case m.ctrl.Pending(b.ev.ID):
		return &s.EventPendingStyle
	case b.ev.ID == m.selected:
		return &s.EventSelectedStyle
	case past && alt:
		return &s.EventPastAltStyle
	case past:
		return &s.EventPastStyle
	case alt:
		return &s.EventAltStyle
	default:
		return &s.EventStyle
	}
}

// blockLines is the text of a block, one entry per line, for a block h
// lines tall.
func blockLines(ev meeting.DayEvent, h int) []string {
	span := timecodec.MinutesRange(ev.StartMin, ev.EndMin)
	if h <= 1 {
		return []string{timecodec.Clock(ev.StartsAt.In(ev.Day.Location())) + " " + ev.DisplayTitle()}
	}
	lines := []string{ev.DisplayTitle(), span}
	if ev.Location != "" {
		lines = append(lines, ev.Location)
	}
	return lines
}

// drawBlock paints b's visible lines. Blocks at least two lines tall get a
// resize grip on their last line.
func drawBlock(c *canvas, g weekGrid, b block, st *lipgloss.Style, lines []string) {
	for i := range b.h {
		y, ok := g.screenY(b.y + i)
		if !ok {
			continue
		}
		c.fill(b.x, y, b.w, 1, st)
		if i < len(lines) {
			c.text(b.x, y, b.w, lines[i], st)
		}
		if b.onHandle(b.y+i) && b.w >= 2 {
			c.set(b.x+b.w-1, y, '≡', st)
		}
	}
}

// drawPreview draws where the active session would put its meeting, with
// the snapped times it would commit.
func (m Model) drawPreview(c *canvas, g weekGrid, s *interaction.Session) {
	p := s.Preview()
	ev := s.Subject
	loc := m.svc.Location()

	var (
		b   block
		mut *interaction.Mutation
	)
	switch s.Kind {
	case interaction.KindResize:
		b = block{
			ev: ev,
			x:  g.colX(ev.DayIndex) + 1,
			w:  g.colW - 1,
			y:  g.lineOf(ev.StartMin),
			h:  max(int(math.Round(p.Height)), 1),
		}
		mut = interaction.ResizeMutation(ev.Meeting, p.DeltaMinutes, m.ctrl.Config().MinDuration)
	default:
		day := min(max(ev.DayIndex+p.DeltaDays, 0), 6)
		top := g.lineOf(ev.StartMin) + int(math.Round(float64(p.DeltaMinutes)*float64(g.rowLines)/60))
		b = block{
			ev: ev,
			x:  g.colX(day) + 1,
			w:  g.colW - 1,
			y:  max(top, 0),
			h:  max(g.lineOf(ev.EndMin)-g.lineOf(ev.StartMin), 1),
		}
		correction := dateutil.DaysBetween(dateutil.StartOfDay(ev.StartsAt.In(loc)), ev.Day)
		mut = interaction.ShiftMutation(ev.Meeting, correction+p.DeltaDays, p.DeltaMinutes, loc)
	}

	after := ev.Meeting
	if mut != nil {
		after = mut.After
	}
	label := view.FormatSpan(after.StartsAt.In(loc), after.EndsAt.In(loc))
	lines := []string{label, after.DisplayTitle()}
	if b.h == 1 {
		lines = []string{label + " " + after.DisplayTitle()}
	}
	drawBlock(c, g, b, &m.styles.DragPreviewStyle, lines)
}
