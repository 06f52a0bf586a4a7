package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/IMNJL/AI-chef/internal/calendar"
	"github.com/IMNJL/AI-chef/internal/meeting"
	"github.com/IMNJL/AI-chef/internal/timecodec"
	"github.com/IMNJL/AI-chef/internal/tui/view"
	"github.com/IMNJL/AI-chef/internal/viewstate"
)

// Form fields, in tab order.
const (
	fieldTitle = iota
	fieldStart
	fieldEnd
	fieldLocation
	fieldLink
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Start", "End", "Location", "Link"}

const formInputWidth = 36

// formModel is the create/edit dialog: one text input per calendar.Form
// field.
type formModel struct {
	editingID string
	inputs    [fieldCount]textinput.Model
	focus     int
	err       string
}

func newFormModel(f calendar.Form, s *Styles) formModel {
	values := [fieldCount]string{f.Title, f.Start, f.End, f.Location, f.Link}
	placeholders := [fieldCount]string{"Meeting title", timecodec.InputLayout, timecodec.InputLayout, "Optional", "https://..."}

	fm := formModel{editingID: f.EditingID}
	for i := range fm.inputs {
		ti := textinput.New()
		ti.Prompt = "› "
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 256
		ti.Width = formInputWidth
		ti.SetValue(values[i])
		ti.PlaceholderStyle = s.ModalPlaceholderStyle
		ti.TextStyle = s.ModalInputTextStyle
		ti.PromptStyle = s.ModalInputTextStyle
		ti.Cursor.Style = s.ModalInputCursorStyle
		ti.Cursor.TextStyle = s.ModalInputTextStyle
		fm.inputs[i] = ti
	}
	fm.inputs[fieldTitle].Focus()
	return fm
}

// Form returns the raw field values.
func (f formModel) Form() calendar.Form {
	return calendar.Form{
		EditingID: f.editingID,
		Title:     f.inputs[fieldTitle].Value(),
		Start:     f.inputs[fieldStart].Value(),
		End:       f.inputs[fieldEnd].Value(),
		Location:  f.inputs[fieldLocation].Value(),
		Link:      f.inputs[fieldLink].Value(),
	}
}

// move shifts the focus by delta fields, wrapping around.
func (f formModel) move(delta int) (formModel, tea.Cmd) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f, f.inputs[f.focus].Focus()
}

func (f formModel) update(msg tea.Msg) (formModel, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// validate checks the form locally, before any request is sent.
func (f formModel) validate(current []meeting.Meeting, loc *time.Location) error {
	form := f.Form()
	if !form.IsEdit() {
		_, err := form.Draft(loc)
		return err
	}
	m, ok := meeting.Find(current, form.EditingID)
	if !ok {
		return meeting.ErrNotFound
	}
	_, err := form.Patch(m, loc)
	return err
}

func (f formModel) title() string {
	if f.editingID != "" {
		return "Edit meeting"
	}
	return "New meeting"
}

// span describes the entered times, or "" while they do not parse.
func (f formModel) span(loc *time.Location) string {
	start, err := timecodec.ParseInput(f.inputs[fieldStart].Value(), loc)
	if err != nil {
		return ""
	}
	end, err := timecodec.ParseInput(f.inputs[fieldEnd].Value(), loc)
	if err != nil || !end.After(start) {
		return ""
	}
	return start.Format("Mon Jan 2") + " · " + view.FormatSpan(start, end) + " · " +
		view.FormatDuration(int(end.Sub(start).Minutes()))
}

func (f formModel) render(s *Styles, loc *time.Location) string {
	fields := make([]view.FormField, fieldCount)
	for i := range fields {
		fields[i] = view.FormField{
			Label:   fieldLabels[i],
			Input:   f.inputs[i].View(),
			Focused: i == f.focus,
		}
	}
	body := view.RenderMeetingFormBody(view.MeetingFormModel{
		Fields: fields,
		Span:   f.span(loc),
		Error:  f.err,
	}, s.Form)

	buttons := []string{"[ctrl+s] Save", "[esc] Cancel"}
	if f.editingID != "" {
		buttons = append(buttons, "[ctrl+d] Delete")
	}
	return view.RenderModalFrame(f.title(), body, view.RenderModalButtons(s.Modal, buttons...), s.Modal)
}

// formError turns a validation error into the line shown under the form.
func formError(err error) string {
	if err == nil {
		return ""
	}
	return viewstate.StatusFor(err)
}
