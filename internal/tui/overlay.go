package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/IMNJL/AI-chef/internal/tui/view"
)

// overlayMargin is the backdrop around the modal content, in cells.
const (
	overlayMarginX = 2
	overlayMarginY = 1
)

// OverlayModel draws modal content centered on an opaque backdrop box.
type OverlayModel struct {
	active  bool
	bgColor lipgloss.Color
}

var _ view.OverlayRenderer = OverlayModel{}

// NewOverlayModel initializes an inactive overlay.
func NewOverlayModel() OverlayModel {
	return OverlayModel{}
}

// Active reports whether the overlay is visible.
func (o OverlayModel) Active() bool {
	return o.active
}

// SetBackground updates the backdrop color.
func (o *OverlayModel) SetBackground(color lipgloss.Color) {
	o.bgColor = color
}

// Render draws content over base. base is padded or cut to width x height.
func (o OverlayModel) Render(base string, width, height int, content string) string {
	if !o.active || width <= 0 || height <= 0 {
		return base
	}
	contentLines := splitContent(content)
	contentW, contentH := contentSize(contentLines)
	if contentW == 0 {
		return base
	}

	boxW := min(contentW+2*overlayMarginX, width)
	boxH := min(contentH+2*overlayMarginY, height)
	top, left := (height-boxH)/2, (width-boxW)/2

	bgSeq := view.BackgroundSeq(o.bgColor)
	box := o.boxLines(contentLines, boxW, boxH, bgSeq)

	lines := normalizeBase(base, width, height)
	for i, line := range box {
		row := top + i
		lines[row] = ansi.Cut(lines[row], 0, left) + line + ansi.Cut(lines[row], left+boxW, width)
	}
	return strings.Join(lines, "\n")
}

// boxLines renders the backdrop box with content centered inside it.
func (o OverlayModel) boxLines(content []string, boxW, boxH int, bgSeq string) []string {
	blank := bgSeq + strings.Repeat(" ", boxW) + ansi.ResetStyle
	lines := make([]string, boxH)
	for i := range lines {
		lines[i] = blank
	}

	contentW, _ := contentSize(content)
	contentW = min(contentW, boxW)
	left := (boxW - contentW) / 2
	right := boxW - left - contentW
	top := max((boxH-len(content))/2, 0)
	for i, line := range content {
		row := top + i
		if row >= boxH {
			break
		}
		if w := lipgloss.Width(line); w > contentW {
			line = ansi.Cut(line, 0, contentW)
		} else if w < contentW {
			line += strings.Repeat(" ", contentW-w)
		}
		if bgSeq != "" {
			line = view.ApplyBackgroundResets(line, o.bgColor)
		}
		lines[row] = bgSeq + strings.Repeat(" ", left) + line + bgSeq + strings.Repeat(" ", right) + ansi.ResetStyle
	}
	return lines
}

func splitContent(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(content, "\n"), "\n")
}

func contentSize(lines []string) (int, int) {
	w := 0
	for _, line := range lines {
		w = max(w, lipgloss.Width(line))
	}
	return w, len(lines)
}

// normalizeBase returns exactly height lines of exactly width cells.
func normalizeBase(base string, width, height int) []string {
	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]
	for i, line := range lines {
		switch w := lipgloss.Width(line); {
		case w > width:
			lines[i] = ansi.Cut(line, 0, width)
		case w < width:
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return lines
}
