package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/IMNJL/AI-chef/internal/dateutil"
	"github.com/IMNJL/AI-chef/internal/interaction"
	"github.com/IMNJL/AI-chef/internal/layout"
	"github.com/IMNJL/AI-chef/internal/meeting"
	"github.com/IMNJL/AI-chef/internal/tui/commands"
	"github.com/IMNJL/AI-chef/internal/viewstate"
)

// handleMouseMsg routes mouse events. Drags only exist in the week view.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	LogMouse(msg)
	if m.mode != ModeNormal {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.wheel(-1)
	case tea.MouseButtonWheelDown:
		return m.wheel(1)
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			// Any other button while dragging loses the capture.
			if m.ctrl.Busy() {
				_ = m.ctrl.Cancel(mousePointer)
				m.setStatus("Cancelled", false)
			}
			return m, nil
		}
		if m.state.Mode == viewstate.ModeMonth {
			return m.monthClick(msg.X, msg.Y)
		}
		return m.pointerDown(msg.X, msg.Y)
	case tea.MouseActionMotion:
		return m.pointerMove(msg.X, msg.Y)
	case tea.MouseActionRelease:
		return m.pointerUp(msg.X, msg.Y)
	}
	return m, nil
}

func pointer(x, y int) interaction.PointerEvent {
	return interaction.PointerEvent{ID: mousePointer, X: float64(x), Y: float64(y), Button: interaction.ButtonPrimary}
}

// pointerDown starts a move, or a resize on the last line of a block. A
// press on an empty cell moves the cursor there; a second press on the
// cursor opens the create form.
func (m Model) pointerDown(x, y int) (tea.Model, tea.Cmd) {
	g := m.weekGrid()
	day, line, ok := g.at(x, y)
	if !ok {
		return m, nil
	}

	b, _, onBlock := hit(m.blocks(g), g, x, y)
	if !onBlock {
		at := dateutil.AddMinutes(dateutil.AddDays(m.state.WeekStart, day), line*g.minutesPerLine())
		if at.Equal(m.cursor) {
			return m.openCreateForm(at), nil
		}
		m.cursor = at
		m.syncSelection()
		return m, nil
	}

	kind := interaction.KindMove
	if b.onHandle(line) {
		kind = interaction.KindResize
	}
	m.selected = b.ev.ID
	s, err := m.ctrl.Down(kind, pointer(x, y), interaction.Target{
		Event:      b.ev,
		Geometry:   g.geometry(),
		BaseHeight: float64(b.h),
	})
	switch {
	case errors.Is(err, interaction.ErrCommitPending):
		m.setStatus(viewstate.StatusSaving, false)
		return m, nil
	case err != nil:
		LogError(err, "pointer down")
		return m, nil
	}
	LogSession(s, "down")
	return m, nil
}

func (m Model) pointerMove(x, y int) (tea.Model, tea.Cmd) {
	if _, err := m.ctrl.Move(pointer(x, y)); err != nil {
		if !errors.Is(err, interaction.ErrNoSession) {
			LogError(err, "pointer move")
		}
		return m, nil
	}
	if s, ok := m.ctrl.Session(mousePointer); ok {
		LogSession(s, "move")
	}
	return m, nil
}

// pointerUp ends the session. A commit is sent to the store; a release
// that never left the armed state is a click and opens the meeting.
func (m Model) pointerUp(x, y int) (tea.Model, tea.Cmd) {
	s, ok := m.ctrl.Session(mousePointer)
	if !ok {
		return m, nil
	}
	subject := s.Subject.Meeting

	clickAllowed := m.ctrl.ClickAllowed()
	out, err := m.ctrl.Up(pointer(x, y))
	if err != nil {
		LogError(err, "pointer up")
		return m, nil
	}
	LogOutcome(out)

	if out.Mutation != nil {
		m.setStatus(viewstate.StatusSaving, false)
		return m, commands.Commit(m.svc, *out.Mutation)
	}
	if !out.Moved && clickAllowed {
		if current, ok := meeting.Find(m.state.Meetings, subject.ID); ok {
			subject = current
		}
		return m.openEditForm(subject), nil
	}
	return m, nil
}

func (m Model) wheel(dir int) (tea.Model, tea.Cmd) {
	if m.state.Mode == viewstate.ModeMonth {
		if dir < 0 {
			return m.navigate(viewstate.Prev{})
		}
		return m.navigate(viewstate.Next{})
	}
	g := m.weekGrid()
	m.scroll = g.clampScroll(m.scroll + dir*g.rowLines)
	return m, nil
}

// monthClick opens the chip under the pointer, zooms into the week for
// "+N more", and otherwise selects the day.
func (m Model) monthClick(x, y int) (tea.Model, tea.Cmd) {
	g := m.monthGrid()
	idx, line, ok := g.at(x, y)
	if !ok {
		return m, nil
	}
	cells := layout.MonthGrid(m.state.MonthStart, m.state.Meetings, m.now())
	c := cells[idx]
	date := dateutil.AddMinutes(c.Date, dateutil.MinuteOfDay(m.cursor))

	shown, more := g.chipRows(len(c.Chips), c.Overflow)
	switch {
	case line >= 1 && line <= shown:
		if !m.ctrl.ClickAllowed() {
			return m, nil
		}
		m.cursor = date
		return m.openEditForm(c.Chips[line-1]), nil
	case more > 0 && line == shown+1:
		m.cursor = date
		return m.switchMode(viewstate.ModeWeek)
	}

	if dateutil.StartOfDay(date).Equal(dateutil.StartOfDay(m.cursor)) {
		return m.openCreateForm(date), nil
	}
	if !c.InMonth {
		return m.moveCursor(date)
	}
	m.cursor = date
	m.syncSelection()
	return m, nil
}
