package theme

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Now         lipgloss.Color
	Today       lipgloss.Color
	Warning     lipgloss.Color

	// Meeting blocks. Alt is used for odd lanes so neighbours stay apart.
	EventBg        lipgloss.Color
	EventBgAlt     lipgloss.Color
	EventPastBg    lipgloss.Color
	EventPastBgAlt lipgloss.Color
	DragBg         lipgloss.Color

	TextOnAccent  lipgloss.Color
	TextOnEvent   lipgloss.Color
	TextOnWarning lipgloss.Color
	TextOnNow     lipgloss.Color

	Modal ModalColors
}

// ModalColors holds modal-specific colors derived from a Theme.
type ModalColors struct {
	Bg        lipgloss.Color
	Border    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Highlight lipgloss.Color
	Backdrop  lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	light := IsLight(t.Bg)
	eventBg := eventShade(t.Event, t.Bg, light)
	eventAltBg := eventShade(t.EventAlt, t.Bg, light)
	eventPast := blend(eventBg, t.Bg, 0.6)
	eventPastAlt := blend(eventAltBg, t.Bg, 0.6)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Now:         lipgloss.Color(t.Now),
		Today:       lipgloss.Color(t.Today),
		Warning:     lipgloss.Color(t.Warning),

		EventBg:        lipgloss.Color(eventBg),
		EventBgAlt:     lipgloss.Color(eventAltBg),
		EventPastBg:    lipgloss.Color(eventPast),
		EventPastBgAlt: lipgloss.Color(eventPastAlt),
		DragBg:         lipgloss.Color(eventShade(t.Warning, t.Bg, light)),

		TextOnAccent:  lipgloss.Color(TextOn(t.Accent, t.Bg, t.Fg)),
		TextOnEvent:   lipgloss.Color(TextOn(eventBg, t.Bg, t.Fg)),
		TextOnWarning: lipgloss.Color(TextOn(t.Warning, t.Bg, t.Fg)),
		TextOnNow:     lipgloss.Color(TextOn(t.Now, t.Bg, t.Fg)),

		Modal: ModalColors{
			Bg:        lipgloss.Color(t.BaseBg),
			Border:    lipgloss.Color(t.ModalBorder),
			Text:      lipgloss.Color(t.TextPrimary),
			Muted:     lipgloss.Color(t.TextMuted),
			Highlight: lipgloss.Color(t.Highlight),
			Backdrop:  lipgloss.Color(coalesce(t.BgSelection, t.BgHighlight, t.Bg)),
		},
	}
}

// IsLight reports whether a background color reads as light.
func IsLight(bg string) bool {
	return luminance(bg) > 0.55
}

// eventShade tones an accent down into a block background: towards the
// background on light themes, towards black on dark ones.
func eventShade(accent, bg string, light bool) string {
	if light {
		return blend(accent, bg, 0.75)
	}
	return blend(accent, "#000000", 0.5)
}

// blend mixes a towards b by ratio in [0, 1]. Invalid colors return a.
func blend(a, b string, ratio float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	ratio = min(max(ratio, 0), 1)
	return ca.BlendRgb(cb, ratio).Clamped().Hex()
}

// TextOn picks whichever of two text colors contrasts more with bg.
func TextOn(bg, lightText, darkText string) string {
	if contrast(bg, lightText) >= contrast(bg, darkText) {
		return lightText
	}
	return darkText
}

func contrast(a, b string) float64 {
	l1, l2 := luminance(a), luminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// luminance returns the relative luminance of a hex color, 0 when invalid.
func luminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
