package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/IMNJL/AI-chef/internal/tui/theme"
	"github.com/IMNJL/AI-chef/internal/tui/view"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	TitleStyle      lipgloss.Style
	TitleMutedStyle lipgloss.Style
	TabStyle        lipgloss.Style
	TabActiveStyle  lipgloss.Style

	// Week grid
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style
	GutterStyle         lipgloss.Style
	GutterNowStyle      lipgloss.Style
	GridStyle           lipgloss.Style
	GridHourStyle       lipgloss.Style // first line of every hour
	SeparatorStyle      lipgloss.Style
	CursorStyle         lipgloss.Style
	NowLineStyle        lipgloss.Style

	// Meeting blocks
	EventStyle         lipgloss.Style
	EventAltStyle      lipgloss.Style // odd lanes
	EventPastStyle     lipgloss.Style
	EventPastAltStyle  lipgloss.Style
	EventSelectedStyle lipgloss.Style
	EventPendingStyle  lipgloss.Style
	EventGhostStyle    lipgloss.Style // original position while dragging
	DragPreviewStyle   lipgloss.Style

	// Month grid
	MonthDayStyle      lipgloss.Style
	MonthOutsideStyle  lipgloss.Style
	MonthTodayStyle    lipgloss.Style
	MonthCursorStyle   lipgloss.Style
	MonthChipStyle     lipgloss.Style
	MonthMoreStyle     lipgloss.Style
	MonthCellStyle     lipgloss.Style
	MonthWeekdayStyle  lipgloss.Style
	MonthSelectedStyle lipgloss.Style

	// Footer
	StatusStyle      lipgloss.Style
	StatusErrorStyle lipgloss.Style
	HelpStyle        lipgloss.Style

	// Modal
	Modal                 view.ModalStyles
	Form                  view.MeetingFormStyles
	ModalBodyStyle        lipgloss.Style
	ModalMutedStyle       lipgloss.Style
	ModalInputTextStyle   lipgloss.Style
	ModalPlaceholderStyle lipgloss.Style
	ModalInputCursorStyle lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	base := lipgloss.NewStyle().Background(p.Bg).Foreground(p.Fg)

	s := &Styles{palette: p}

	s.TitleStyle = base.Foreground(p.Accent).Bold(true)
	s.TitleMutedStyle = base.Foreground(p.FgMuted)
	s.TabStyle = base.Foreground(p.FgMuted)
	s.TabActiveStyle = lipgloss.NewStyle().Background(p.Accent).Foreground(p.TextOnAccent).Bold(true)

	s.DayHeaderStyle = base.Foreground(p.FgMuted).Bold(true)
	s.DayHeaderTodayStyle = base.Foreground(p.Today).Bold(true)
	s.GutterStyle = base.Foreground(p.FgMuted)
	s.GutterNowStyle = lipgloss.NewStyle().Background(p.Now).Foreground(p.TextOnNow).Bold(true)
	s.GridStyle = base
	s.GridHourStyle = base.Background(p.BgHighlight)
	s.SeparatorStyle = base.Foreground(p.BgSelection)
	s.CursorStyle = lipgloss.NewStyle().Background(p.BgSelection).Foreground(p.Fg)
	s.NowLineStyle = base.Foreground(p.Now).Bold(true)

	event := lipgloss.NewStyle().Foreground(p.TextOnEvent)
	s.EventStyle = event.Background(p.EventBg)
	s.EventAltStyle = event.Background(p.EventBgAlt)
	s.EventPastStyle = event.Background(p.EventPastBg).Foreground(p.FgMuted)
	s.EventPastAltStyle = event.Background(p.EventPastBgAlt).Foreground(p.FgMuted)
	s.EventSelectedStyle = lipgloss.NewStyle().Background(p.Accent).Foreground(p.TextOnAccent).Bold(true)
	s.EventPendingStyle = lipgloss.NewStyle().Background(p.DragBg).Foreground(p.TextOnWarning).Italic(true)
	s.EventGhostStyle = base.Foreground(p.FgMuted).Faint(true)
	s.DragPreviewStyle = lipgloss.NewStyle().Background(p.Warning).Foreground(p.TextOnWarning).Bold(true)

	s.MonthDayStyle = base.Foreground(p.Fg).Bold(true)
	s.MonthOutsideStyle = base.Foreground(p.FgMuted).Faint(true)
	s.MonthTodayStyle = lipgloss.NewStyle().Background(p.Today).Foreground(p.Bg).Bold(true)
	s.MonthCursorStyle = lipgloss.NewStyle().Background(p.BgSelection).Foreground(p.Fg).Bold(true)
	s.MonthChipStyle = event.Background(p.EventBg)
	s.MonthMoreStyle = base.Foreground(p.FgMuted).Italic(true)
	s.MonthCellStyle = base
	s.MonthWeekdayStyle = base.Foreground(p.FgMuted).Bold(true)
	s.MonthSelectedStyle = s.EventSelectedStyle

	s.StatusStyle = base.Foreground(p.Fg).Background(p.BgHighlight).Padding(0, 1)
	s.StatusErrorStyle = s.StatusStyle.Foreground(p.Warning).Bold(true)
	s.HelpStyle = base.Foreground(p.FgMuted).Padding(0, 1)

	mb := lipgloss.NewStyle().Background(p.Modal.Bg).Foreground(p.Modal.Text)
	s.ModalBodyStyle = mb
	s.ModalMutedStyle = mb.Foreground(p.Modal.Muted)
	s.ModalInputTextStyle = mb
	s.ModalPlaceholderStyle = mb.Foreground(p.Modal.Muted)
	s.ModalInputCursorStyle = lipgloss.NewStyle().Background(p.Modal.Text).Foreground(p.Modal.Bg)
	s.Modal = view.ModalStyles{
		ModalHeaderStyle:       mb,
		ModalTitleStyle:        mb.Foreground(p.Accent).Bold(true),
		ModalFooterStyle:       mb.Foreground(p.Modal.Muted),
		ModalStyle:             mb.Border(lipgloss.RoundedBorder()).BorderForeground(p.Modal.Border).BorderBackground(p.Modal.Bg).Padding(1, 2),
		ModalButtonStyle:       mb.Foreground(p.Modal.Muted),
		ModalButtonActiveStyle: lipgloss.NewStyle().Background(p.Modal.Highlight).Foreground(p.Modal.Text).Bold(true),
		ModalBodyStyle:         mb,
	}
	s.Form = view.MeetingFormStyles{
		LabelStyle:       mb.Foreground(p.Modal.Muted),
		LabelActiveStyle: mb.Foreground(p.Accent).Bold(true),
		TagStyle:         lipgloss.NewStyle().Background(p.Modal.Highlight).Foreground(p.Modal.Text).Padding(0, 1),
		ErrorStyle:       mb.Foreground(p.Warning).Bold(true),
		BodyStyle:        mb,
	}

	return s
}

// Palette returns the colors the styles were built from.
func (s *Styles) Palette() *theme.Palette {
	return s.palette
}
