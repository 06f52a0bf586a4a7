package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/IMNJL/AI-chef/internal/calendar"
	"github.com/IMNJL/AI-chef/internal/interaction"
	"github.com/IMNJL/AI-chef/internal/nowline"
	"github.com/IMNJL/AI-chef/internal/tui/commands"
	"github.com/IMNJL/AI-chef/internal/tui/view"
	"github.com/IMNJL/AI-chef/internal/viewstate"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		firstSize := m.width == 0
		m.width = msg.Width
		m.height = msg.Height
		if firstSize {
			m.scroll = m.cursorScroll()
		} else {
			m.scroll = m.weekGrid().clampScroll(m.scroll)
		}
		return m, nil

	case commands.LoadedMsg:
		// Answers for a period the user already left are dropped.
		if msg.Mode != m.state.Mode || !msg.Anchor.Equal(m.state.Anchor()) {
			return m, nil
		}
		m.state = viewstate.Update(m.state, msg.Action)
		LogLoad(msg.Anchor, len(m.state.Meetings), m.state.Status)
		if failed, ok := msg.Action.(viewstate.LoadFailed); ok {
			LogError(failed.Err, "load")
		}
		if m.selected != "" {
			if _, ok := m.selectedMeeting(); !ok {
				m.selected = ""
			}
		}
		return m, nil

	case commands.CommittedMsg:
		m.ctrl.Resolve(msg.Mutation.MeetingID)
		if msg.Err != nil {
			LogError(msg.Err, "commit")
			m.setStatus(viewstate.StatusFor(msg.Err), true)
			return m, nil
		}
		m.setStatus(m.commitStatus(msg.Mutation), false)
		return m, m.load()

	case commands.SavedMsg:
		if msg.Err != nil {
			LogError(msg.Err, "save")
			m.setStatus(viewstate.StatusFor(msg.Err), true)
			return m, nil
		}
		if msg.Created {
			m.setStatus("Meeting created", false)
		} else {
			m.setStatus("Meeting saved", false)
		}
		return m, m.load()

	case commands.DeletedMsg:
		if msg.Err != nil {
			LogError(msg.Err, "delete")
			m.setStatus(viewstate.StatusFor(msg.Err), true)
			return m, nil
		}
		if m.selected == msg.ID {
			m.selected = ""
		}
		m.setStatus("Meeting deleted", false)
		return m, m.load()

	case commands.QuickAddMsg:
		if msg.Err != nil {
			LogError(msg.Err, "quick add")
			m.setStatus(viewstate.StatusFor(msg.Err), true)
			return m, nil
		}
		created := msg.Meeting
		m.setStatus(fmt.Sprintf("Added %q", created.DisplayTitle()), false)
		m.selected = created.ID
		m.cursor = m.floorToLine(created.StartsAt.In(m.svc.Location()))
		if !m.state.Range().Contains(m.cursor) {
			m.state = viewstate.Update(m.state, viewstate.GoTo{Date: m.cursor})
			m.nowInd.SetWeek(m.state.WeekStart)
		}
		m.scroll = m.cursorScroll()
		return m, m.load()

	case commands.NowTickMsg:
		// A tick never touches a drag in progress: the preview lives in
		// the controller's session.
		m.nowInd.Tick(msg.Time)
		return m, commands.Tick(nowline.Interval)

	case commands.RefreshMsg:
		if m.ctrl.Busy() || m.state.Loading {
			return m, nil
		}
		return m, m.load()

	case commands.StatusMsgCmd:
		m.setStatus(msg.Msg, false)
		return m, nil

	case commands.ErrMsg:
		LogError(msg.Err, "command")
		if errors.Is(msg.Err, calendar.ErrNoChange) {
			m.setStatus("Nothing to change", false)
			return m, nil
		}
		m.setStatus(viewstate.StatusFor(msg.Err), true)
		return m, nil
	}

	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	if m.mode == ModeModal && m.modalType == ModalForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) commitStatus(mut interaction.Mutation) string {
	after := mut.After
	if mut.Kind == interaction.KindResize {
		return fmt.Sprintf("Resized %q to %s", after.DisplayTitle(), view.FormatDuration(after.DurationMinutes()))
	}
	return fmt.Sprintf("Moved %q to %s", after.DisplayTitle(), after.StartsAt.In(m.svc.Location()).Format("Mon Jan 2 15:04"))
}
