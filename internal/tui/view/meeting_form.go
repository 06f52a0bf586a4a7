package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FormField is one labelled input of the meeting form.
type FormField struct {
	Label   string
	Input   string // rendered textinput
	Focused bool
}

// MeetingFormModel contains what the meeting form body shows.
type MeetingFormModel struct {
	Fields []FormField
	Span   string // e.g. "Tue Jan 7 · 09:00–10:00 · 1h", empty when invalid
	Error  string
}

// MeetingFormStyles groups styles for the meeting form body.
type MeetingFormStyles struct {
	LabelStyle       lipgloss.Style
	LabelActiveStyle lipgloss.Style
	TagStyle         lipgloss.Style
	ErrorStyle       lipgloss.Style
	BodyStyle        lipgloss.Style
}

// RenderMeetingFormBody renders the modal body for the create/edit form.
func RenderMeetingFormBody(model MeetingFormModel, styles MeetingFormStyles) string {
	var body strings.Builder
	if model.Span != "" {
		body.WriteString(styles.TagStyle.Render(model.Span) + "\n\n")
	}
	for i, f := range model.Fields {
		label := styles.LabelStyle
		if f.Focused {
			label = styles.LabelActiveStyle
		}
		body.WriteString(label.Render(strings.ToUpper(f.Label)) + "\n")
		body.WriteString(f.Input)
		if i < len(model.Fields)-1 {
			body.WriteString("\n")
		}
	}
	if model.Error != "" {
		body.WriteString("\n\n" + styles.ErrorStyle.Render(model.Error))
	}
	return styles.BodyStyle.Render(body.String())
}

// RenderConfirmBody renders a single question for a confirmation modal.
func RenderConfirmBody(question, detail string, body, muted lipgloss.Style) string {
	if detail == "" {
		return body.Render(question)
	}
	return body.Render(question) + "\n" + muted.Render(detail)
}
