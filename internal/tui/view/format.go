// Package view provides rendering helpers for the TUI.
package view

import (
	"fmt"
	"time"

	"github.com/IMNJL/AI-chef/internal/timecodec"
)

// FormatDuration formats minutes as "Xh Ym".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatSpan formats a meeting's time span. Meetings ending on a later day
// show the end date.
func FormatSpan(start, end time.Time) string {
	end = end.In(start.Location())
	if sy, sm, sd := start.Date(); sy == end.Year() && sm == end.Month() && sd == end.Day() {
		return timecodec.Clock(start) + "–" + timecodec.Clock(end)
	}
	return timecodec.Clock(start) + "–" + end.Format("Mon 2 ") + timecodec.Clock(end)
}
