package ui

import (
	"os"

	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Times: cyan so the agenda scans by column
	colorTime = color.New(color.FgCyan)

	// Ongoing meetings and today's date
	colorNow = color.New(color.FgGreen, color.Bold)

	// Muted: past meetings, ids and secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)

	// Links
	colorLink = color.New(color.FgBlue, color.Underline)

	// Warnings, e.g. skipped import entries
	colorWarn = color.New(color.FgYellow)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// colorSupported reports whether stdout can show colors at all.
func colorSupported() bool {
	if termenv.EnvNoColor() {
		return false
	}
	return termenv.NewOutput(os.Stdout).EnvColorProfile() != termenv.Ascii
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatHeader(s string) string { return colorHeader.Sprint(s) }
func formatTime(s string) string   { return colorTime.Sprint(s) }
func formatNow(s string) string    { return colorNow.Sprint(s) }
func formatMuted(s string) string  { return colorMuted.Sprint(s) }
func formatLink(s string) string   { return colorLink.Sprint(s) }
func formatWarn(s string) string   { return colorWarn.Sprint(s) }
