package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/IMNJL/AI-chef/internal/calendar"
	"github.com/IMNJL/AI-chef/internal/dateutil"
	"github.com/IMNJL/AI-chef/internal/interaction"
	"github.com/IMNJL/AI-chef/internal/meeting"
	"github.com/IMNJL/AI-chef/internal/timecodec"
	"github.com/IMNJL/AI-chef/internal/tui/commands"
	"github.com/IMNJL/AI-chef/internal/tui/input"
	"github.com/IMNJL/AI-chef/internal/viewstate"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	week := m.state.Mode == viewstate.ModeWeek
	step := m.weekGrid().minutesPerLine()

	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Cursor
	case "h", "left":
		return m.moveCursor(dateutil.AddDays(m.cursor, -1))
	case "l", "right":
		return m.moveCursor(dateutil.AddDays(m.cursor, 1))
	case "j", "down":
		if !week {
			return m.moveCursor(dateutil.AddDays(m.cursor, 7))
		}
		return m.moveCursor(m.clampToDay(dateutil.AddMinutes(m.cursor, step)))
	case "k", "up":
		if !week {
			return m.moveCursor(dateutil.AddDays(m.cursor, -7))
		}
		return m.moveCursor(m.clampToDay(dateutil.AddMinutes(m.cursor, -step)))
	case "pgdown", "ctrl+d":
		if week {
			g := m.weekGrid()
			m.scroll = g.clampScroll(m.scroll + g.height)
			return m.moveCursor(m.clampToDay(dateutil.AddMinutes(m.cursor, g.height*step)))
		}
	case "pgup", "ctrl+u":
		if week {
			g := m.weekGrid()
			m.scroll = g.clampScroll(m.scroll - g.height)
			return m.moveCursor(m.clampToDay(dateutil.AddMinutes(m.cursor, -g.height*step)))
		}
	case "tab":
		return m.cycleSelection(1), nil
	case "shift+tab":
		return m.cycleSelection(-1), nil

	// Periods
	case "[", "p":
		return m.navigate(viewstate.Prev{})
	case "]", "n":
		return m.navigate(viewstate.Next{})
	case "t":
		return m.navigate(viewstate.Today{Now: m.now()})
	case "w":
		return m.switchMode(viewstate.ModeWeek)
	case "m":
		return m.switchMode(viewstate.ModeMonth)
	case "r":
		m.statusMsg = ""
		return m, m.load()

	// Meetings
	case "c", "i":
		return m.openCreateForm(m.cursor), nil
	case "enter", "e":
		if sel, ok := m.selectedMeeting(); ok {
			return m.openEditForm(sel), nil
		}
		return m.openCreateForm(m.cursor), nil
	case "d", "delete", "backspace":
		if sel, ok := m.selectedMeeting(); ok {
			m.confirm = &sel
			m.setMode(ModeModal, "confirm delete")
			m.modalType = ModalConfirmDelete
		}
	case "y":
		return m.yank()
	case "H", "shift+left":
		return m.shiftSelected(-1, 0)
	case "L", "shift+right":
		return m.shiftSelected(1, 0)
	case "J", "shift+down":
		return m.shiftSelected(0, m.snap())
	case "K", "shift+up":
		return m.shiftSelected(0, -m.snap())
	case "+", "=":
		return m.stretchSelected(m.snap())
	case "-", "_":
		return m.stretchSelected(-m.snap())

	// Prompt
	case "a", "/", ":":
		m.setMode(ModePrompt, "open prompt")
		m.prompt.SetValue("")
		if msg.String() == "/" {
			m.prompt.SetValue("/")
			m.prompt.CursorEnd()
		}
		return m, m.prompt.Focus()

	case "esc":
		m.ctrl.CancelAll()
		m.selected = ""
	}
	return m, nil
}

// handlePromptKeys handles keys while the prompt line is focused.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt("cancel")
		return m, nil
	case "tab":
		if completed, ok := input.PromptAutocomplete(m.prompt.Value(), input.Commands); ok {
			m.prompt.SetValue(completed)
			m.prompt.CursorEnd()
		}
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.prompt.Value())
		m.closePrompt("submit")
		if value == "" {
			return m, nil
		}
		return m.handlePromptSubmit(value)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt(reason string) {
	m.prompt.Blur()
	m.prompt.SetValue("")
	m.setMode(ModeNormal, reason)
}

// handlePromptSubmit runs a prompt command. Plain text is a quick add.
func (m Model) handlePromptSubmit(value string) (tea.Model, tea.Cmd) {
	p := input.Parse(value)
	switch p.Name {
	case "/add":
		if p.Arg == "" {
			return m.openCreateForm(m.cursor), nil
		}
		m.setStatus("Thinking...", false)
		llm := m.cfg.LLM
		return m, commands.QuickAdd(m.svc, llm.Provider, llm.Model, llm.BaseURL, p.Arg)
	case "/goto":
		date, err := dateutil.ParseRelativeDate(p.Arg, m.now())
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		return m.navigate(viewstate.GoTo{Date: date})
	case "/today":
		return m.navigate(viewstate.Today{Now: m.now()})
	case "/week":
		return m.switchMode(viewstate.ModeWeek)
	case "/month":
		return m.switchMode(viewstate.ModeMonth)
	case "/refresh":
		return m, m.load()
	}
	if !input.Known(p.Name) {
		m.setStatus(fmt.Sprintf("Unknown command %s", p.Name), true)
	}
	return m, nil
}

// handleModalKeys handles keys while a modal is open.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalForm:
		return m.handleFormKeys(msg)
	case ModalConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	}
	m.closeModal("unknown modal")
	return m, nil
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.String() {
	case "esc":
		m.closeModal("cancel form")
		return m, nil
	case "tab", "down":
		m.form, cmd = m.form.move(1)
		return m, cmd
	case "shift+tab", "up":
		m.form, cmd = m.form.move(-1)
		return m, cmd
	case "enter":
		if m.form.focus < fieldCount-1 {
			m.form, cmd = m.form.move(1)
			return m, cmd
		}
		return m.saveForm()
	case "ctrl+s":
		return m.saveForm()
	case "ctrl+d":
		if m.form.editingID == "" {
			return m, nil
		}
		if sel, ok := meeting.Find(m.state.Meetings, m.form.editingID); ok {
			m.confirm = &sel
			m.modalType = ModalConfirmDelete
		}
		return m, nil
	}

	m.form, cmd = m.form.update(msg)
	m.form.err = ""
	return m, cmd
}

// saveForm validates the form locally and sends it. Invalid input keeps the
// form open with the error shown under it.
func (m Model) saveForm() (tea.Model, tea.Cmd) {
	if err := m.form.validate(m.state.Meetings, m.svc.Location()); err != nil {
		m.form.err = formError(err)
		return m, nil
	}
	form := m.form.Form()
	m.closeModal("save form")
	m.setStatus(viewstate.StatusSaving, false)
	return m, commands.Save(m.svc, form, m.state.Meetings)
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if m.confirm == nil {
			m.closeModal("nothing to delete")
			return m, nil
		}
		id := m.confirm.ID
		m.closeModal("confirm delete")
		m.setStatus("Deleting...", false)
		return m, commands.Delete(m.svc, id)
	case "n", "esc":
		m.closeModal("cancel delete")
	}
	return m, nil
}

func (m *Model) setMode(mode Mode, reason string) {
	if m.mode != mode {
		LogModeChange(m.mode, mode, reason)
	}
	m.mode = mode
}

func (m *Model) closeModal(reason string) {
	m.setMode(ModeNormal, reason)
	m.modalType = ModalNone
	m.confirm = nil
	m.overlay.active = false
}

func (m Model) openCreateForm(at time.Time) Model {
	seed := at
	if m.state.Mode == viewstate.ModeMonth {
		seed = dateutil.AddMinutes(dateutil.StartOfDay(at), 9*60)
	}
	m.form = newFormModel(calendar.NewForm(seed, m.svc.Location()), m.styles)
	m.setMode(ModeModal, "create form")
	m.modalType = ModalForm
	return m
}

func (m Model) openEditForm(sel meeting.Meeting) Model {
	m.selected = sel.ID
	m.form = newFormModel(calendar.EditForm(sel, m.svc.Location()), m.styles)
	m.setMode(ModeModal, "edit form")
	m.modalType = ModalForm
	return m
}

// navigate applies a period action, keeps the cursor inside the new period
// and fetches it.
func (m Model) navigate(a viewstate.Action) (tea.Model, tea.Cmd) {
	before := m.state.Anchor()
	m.state = viewstate.Update(m.state, a)

	switch a := a.(type) {
	case viewstate.Today:
		m.cursor = m.floorToLine(a.Now)
	case viewstate.GoTo:
		m.cursor = dateutil.AddMinutes(dateutil.StartOfDay(a.Date.In(m.svc.Location())), dateutil.MinuteOfDay(m.cursor))
	default:
		if m.state.Mode == viewstate.ModeMonth {
			m.cursor = sameDayIn(m.state.MonthStart, m.cursor)
		} else {
			m.cursor = dateutil.AddDays(m.cursor, dateutil.DaysBetween(before, m.state.Anchor()))
		}
	}
	return m.afterNavigate()
}

func (m Model) switchMode(mode viewstate.Mode) (tea.Model, tea.Cmd) {
	if m.state.Mode == mode {
		return m, nil
	}
	m.state = viewstate.Update(m.state, viewstate.SwitchMode{Mode: mode})
	m.state = viewstate.Update(m.state, viewstate.GoTo{Date: m.cursor})
	return m.afterNavigate()
}

func (m Model) afterNavigate() (tea.Model, tea.Cmd) {
	m.selected = ""
	m.ctrl.CancelAll()
	m.nowInd.SetWeek(m.state.WeekStart)
	m.nowInd.Tick(m.now())
	m.scroll = m.cursorScroll()
	return m, m.load()
}

// moveCursor moves the cursor to t, following it into the next period when
// it leaves the displayed one.
func (m Model) moveCursor(t time.Time) (tea.Model, tea.Cmd) {
	m.cursor = t
	if !m.state.Range().Contains(t) || (m.state.Mode == viewstate.ModeMonth && t.Month() != m.state.MonthStart.Month()) {
		m.state = viewstate.Update(m.state, viewstate.GoTo{Date: t})
		return m.afterNavigate()
	}
	m.ensureCursorVisible()
	m.syncSelection()
	return m, nil
}

func (m *Model) ensureCursorVisible() {
	if m.state.Mode != viewstate.ModeWeek {
		return
	}
	g := m.weekGrid()
	line := g.lineOf(dateutil.MinuteOfDay(m.cursor))
	switch {
	case line < g.scroll:
		m.scroll = line
	case line >= g.scroll+g.height:
		m.scroll = line - g.height + 1
	}
	m.scroll = g.clampScroll(m.scroll)
}

// syncSelection selects the meeting under the cursor, if any.
func (m *Model) syncSelection() {
	if m.state.Mode == viewstate.ModeMonth {
		if sel, ok := m.selectedMeeting(); ok && dateutil.StartOfDay(sel.StartsAt.In(m.svc.Location())).Equal(dateutil.StartOfDay(m.cursor)) {
			return
		}
		m.selected = ""
		for _, mt := range m.state.Meetings {
			if dateutil.StartOfDay(mt.StartsAt.In(m.svc.Location())).Equal(dateutil.StartOfDay(m.cursor)) {
				m.selected = mt.ID
				return
			}
		}
		return
	}

	m.selected = ""
	for _, mt := range m.state.Meetings {
		if !mt.StartsAt.After(m.cursor) && mt.EndsAt.After(m.cursor) {
			m.selected = mt.ID
			return
		}
	}
}

// cycleSelection selects the next or previous meeting in the displayed
// period and moves the cursor onto it.
func (m Model) cycleSelection(dir int) Model {
	var visible []meeting.Meeting
	r := m.state.Range()
	for _, mt := range m.state.Meetings {
		if r.Contains(mt.StartsAt.In(m.svc.Location())) {
			visible = append(visible, mt)
		}
	}
	if len(visible) == 0 {
		return m
	}

	i := -1
	for j, mt := range visible {
		if mt.ID == m.selected {
			i = j
			break
		}
	}
	switch {
	case i < 0 && dir < 0:
		i = len(visible) - 1
	case i < 0:
		i = 0
	default:
		i = (i + dir + len(visible)) % len(visible)
	}

	sel := visible[i]
	m.selected = sel.ID
	m.cursor = m.floorToLine(sel.StartsAt.In(m.svc.Location()))
	m.ensureCursorVisible()
	return m
}

func (m Model) selectedMeeting() (meeting.Meeting, bool) {
	if m.selected == "" {
		return meeting.Meeting{}, false
	}
	return meeting.Find(m.state.Meetings, m.selected)
}

// shiftSelected moves the selected meeting from the keyboard. It goes
// through the same per-meeting serialization as a drag.
func (m Model) shiftSelected(days, minutes int) (tea.Model, tea.Cmd) {
	sel, ok := m.selectedMeeting()
	if !ok {
		return m, nil
	}
	if interaction.ShiftMutation(sel, days, minutes, m.svc.Location()) == nil {
		m.setStatus("Nothing to change", false)
		return m, nil
	}
	if !m.reserve(sel.ID) {
		return m, nil
	}
	m.setStatus(viewstate.StatusSaving, false)
	return m, commands.Shift(m.svc, sel, days, minutes)
}

func (m Model) stretchSelected(delta int) (tea.Model, tea.Cmd) {
	sel, ok := m.selectedMeeting()
	if !ok {
		return m, nil
	}
	if interaction.ResizeMutation(sel, delta, interaction.DefaultMinDuration) == nil {
		m.setStatus("Nothing to change", false)
		return m, nil
	}
	if !m.reserve(sel.ID) {
		return m, nil
	}
	m.setStatus(viewstate.StatusSaving, false)
	return m, commands.Stretch(m.svc, sel, delta)
}

func (m *Model) reserve(id string) bool {
	if err := m.ctrl.Reserve(id); err != nil {
		if errors.Is(err, interaction.ErrCommitPending) {
			m.setStatus(viewstate.StatusSaving, false)
		}
		return false
	}
	return true
}

// yank copies the link of the selected meeting, or a one-line summary when
// it has none.
func (m Model) yank() (tea.Model, tea.Cmd) {
	sel, ok := m.selectedMeeting()
	if !ok {
		return m, nil
	}
	if sel.ExternalLink != "" {
		return m, commands.Copy("link", sel.ExternalLink)
	}
	loc := m.svc.Location()
	text := fmt.Sprintf("%s %s %s", sel.StartsAt.In(loc).Format("Mon Jan 2"),
		timecodec.Clock(sel.StartsAt.In(loc))+"-"+timecodec.Clock(sel.EndsAt.In(loc)), sel.DisplayTitle())
	if sel.Location != "" {
		text += " @ " + sel.Location
	}
	return m, commands.Copy("details", text)
}

func (m Model) snap() int {
	return m.ctrl.Config().SnapMinutes
}

// floorToLine drops t to the start of its grid line.
func (m Model) floorToLine(t time.Time) time.Time {
	step := m.weekGrid().minutesPerLine()
	return dateutil.AddMinutes(dateutil.StartOfDay(t), dateutil.MinuteOfDay(t)/step*step)
}

// clampToDay keeps a cursor moved by minutes on the cursor's day.
func (m Model) clampToDay(t time.Time) time.Time {
	day := dateutil.StartOfDay(m.cursor)
	last := dateutil.AddMinutes(day, 24*60-m.weekGrid().minutesPerLine())
	switch {
	case t.Before(day):
		return day
	case t.After(last):
		return last
	}
	return t
}

// sameDayIn returns the day of monthStart's month with t's day of month and
// clock, clamped to the month's last day.
func sameDayIn(monthStart, t time.Time) time.Time {
	last := dateutil.AddDays(dateutil.AddMonths(monthStart, 1), -1).Day()
	return time.Date(monthStart.Year(), monthStart.Month(), min(t.Day(), last),
		t.Hour(), t.Minute(), 0, 0, monthStart.Location())
}

func (m *Model) setStatus(text string, isErr bool) {
	m.statusMsg = text
	m.statusErr = isErr
	m.statusTime = m.now()
}
