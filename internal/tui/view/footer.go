package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterModel contains content and styles for rendering the footer.
type FooterModel struct {
	Width       int
	StatusText  string
	HelpText    string
	PromptLine  string // replaces the help line while the prompt is open
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
}

// RenderFooter renders the status line and the help or prompt line.
func RenderFooter(model FooterModel) string {
	status := footerLine(model.Width, model.StatusStyle, model.StatusText)
	second := footerLine(model.Width, model.HelpStyle, model.HelpText)
	if model.PromptLine != "" {
		second = footerLine(model.Width, model.HelpStyle, model.PromptLine)
	}
	return status + "\n" + second
}

func footerLine(width int, style lipgloss.Style, content string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := max(width-frameW, 0)
	if contentWidth > 0 {
		content = ansi.Truncate(content, contentWidth, "…")
	}
	return style.Width(contentWidth).Render(content)
}
