package tui

import (
	"strings"
	"time"

	"github.com/IMNJL/AI-chef/internal/timecodec"
	"github.com/IMNJL/AI-chef/internal/tui/input"
	"github.com/IMNJL/AI-chef/internal/tui/view"
	"github.com/IMNJL/AI-chef/internal/viewstate"
)

// statusTTL is how long a transient status message wins over the view
// state's own status line.
const statusTTL = 5 * time.Second

const minWidth, minHeight = gutterWidth + 7*minColWidth, gridTop + footerLines + 4

// View renders the TUI.
func (m Model) View() string {
	return view.Render(m.viewState())
}

func (m Model) viewState() view.ViewState {
	showModal := m.mode == ModeModal && m.modalType != ModalNone
	overlay := m.overlay
	overlay.active = showModal

	modal := ""
	if showModal {
		modal = m.renderModal()
	}
	return view.ViewState{
		Width:        m.width,
		Height:       m.height,
		BaseContent:  m.renderApp(),
		ModalContent: modal,
		ShowModal:    showModal,
		Overlay:      overlay,
	}
}

func (m Model) renderApp() string {
	if m.width < minWidth || m.height < minHeight {
		return view.PadLinesWithBackground(" Terminal too small", m.width, m.height, m.styles.Palette().Bg)
	}

	c := newCanvas(m.width, m.height-footerLines, &m.styles.GridStyle)
	m.renderTitle(c)
	if m.state.Mode == viewstate.ModeMonth {
		m.renderMonth(c)
	} else {
		m.renderWeek(c)
	}
	return c.String() + "\n" + m.renderFooter()
}

// renderTitle draws the app name, the view tabs, the period and the clock.
func (m Model) renderTitle(c *canvas) {
	s := m.styles
	c.fill(0, 0, c.w, 1, &s.TitleMutedStyle)
	x := c.text(0, 0, c.w, " aichef ", &s.TitleStyle)

	tabs := []struct {
		mode  viewstate.Mode
		label string
	}{{viewstate.ModeWeek, " Week "}, {viewstate.ModeMonth, " Month "}}
	for _, tab := range tabs {
		st := &s.TabStyle
		if tab.mode == m.state.Mode {
			st = &s.TabActiveStyle
		}
		x += c.text(x+1, 0, c.w-x-1, tab.label, st) + 1
	}

	title := view.WeekTitle(m.state.WeekStart)
	if m.state.Mode == viewstate.ModeMonth {
		title = view.MonthTitle(m.state.MonthStart)
	}
	c.text(x+2, 0, c.w-x-2, title, &s.TitleStyle)

	clock := m.nowInd.Clock()
	if clock == "" {
		clock = timecodec.Clock(m.now())
	}
	c.text(c.w-len(clock)-1, 0, len(clock), clock, &s.TitleMutedStyle)
}

func (m Model) renderFooter() string {
	s := m.styles
	status, statusStyle := m.state.Status, s.StatusStyle
	if m.statusMsg != "" && m.now().Sub(m.statusTime) < statusTTL {
		status = m.statusMsg
		if m.statusErr {
			statusStyle = s.StatusErrorStyle
		}
	}
	if sel, ok := m.selectedMeeting(); ok && status == viewstate.StatusSynced {
		loc := m.svc.Location()
		status = sel.DisplayTitle() + " · " + view.FormatSpan(sel.StartsAt.In(loc), sel.EndsAt.In(loc))
		if sel.Location != "" {
			status += " · " + sel.Location
		}
	}

	promptLine := ""
	if m.mode == ModePrompt {
		promptLine = m.prompt.View()
		if matches := input.PromptMatchingCommands(m.prompt.Value(), input.Commands); len(matches) > 0 {
			names := make([]string, len(matches))
			for i, c := range matches {
				names[i] = c.Name
			}
			promptLine += "  " + strings.Join(names, " ")
		}
	}

	return view.RenderFooter(view.FooterModel{
		Width:       m.width,
		StatusText:  status,
		HelpText:    m.helpText(),
		PromptLine:  promptLine,
		StatusStyle: statusStyle,
		HelpStyle:   s.HelpStyle,
	})
}

func (m Model) helpText() string {
	if m.state.Mode == viewstate.ModeMonth {
		return "hjkl move · [ ] month · w week · c new · enter open · d delete · a add · t today · q quit"
	}
	return "hjkl move · [ ] week · m month · tab next · c new · enter open · HJKL shift · +/- length · a add · q quit"
}

func (m Model) renderModal() string {
	loc := m.svc.Location()
	switch m.modalType {
	case ModalForm:
		return m.form.render(m.styles, loc)
	case ModalConfirmDelete:
		if m.confirm == nil {
			return ""
		}
		detail := m.confirm.StartsAt.In(loc).Format("Mon Jan 2") + " " +
			view.FormatSpan(m.confirm.StartsAt.In(loc), m.confirm.EndsAt.In(loc))
		body := view.RenderConfirmBody("Delete "+m.confirm.DisplayTitle()+"?", detail,
			m.styles.ModalBodyStyle, m.styles.ModalMutedStyle)
		return view.RenderModalFrame("Delete meeting", body,
			view.RenderModalButtons(m.styles.Modal, "[y] Delete", "[n] Keep"), m.styles.Modal)
	}
	return ""
}
