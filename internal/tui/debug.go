package tui

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/IMNJL/AI-chef/internal/interaction"
)

// DebugLogPath is the fixed path for debug logs.
const DebugLogPath = "aichef-debug.log"

// debugLog receives TUI events when --debug is set. It discards everything
// otherwise.
var (
	debugLog  = zerolog.Nop()
	debugFile io.Closer
)

// InitDebugLogger opens the debug log when enabled.
func InitDebugLogger(enabled bool) error {
	if !enabled {
		debugLog = zerolog.Nop()
		return nil
	}

	f, err := os.Create(DebugLogPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}
	debugFile = f
	setDebugWriter(f)
	debugLog.Info().Str("log_file", DebugLogPath).Msg("debug start")
	return nil
}

func setDebugWriter(w io.Writer) {
	debugLog = zerolog.New(w).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugFile == nil {
		return
	}
	debugLog.Info().Msg("debug end")
	_ = debugFile.Close()
	debugFile = nil
	debugLog = zerolog.Nop()
}

// DebugLogger returns the logger other packages should write TUI-side
// events to.
func DebugLogger() zerolog.Logger {
	return debugLog
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	debugLog.Debug().Str("key", msg.String()).Msg("key press")
}

// LogMouse logs a mouse event.
func LogMouse(msg tea.MouseMsg) {
	debugLog.Debug().
		Int("x", msg.X).Int("y", msg.Y).
		Str("button", fmt.Sprint(msg.Button)).
		Str("action", fmt.Sprint(msg.Action)).
		Msg("mouse")
}

// LogModeChange logs a mode change.
func LogModeChange(from, to Mode, reason string) {
	debugLog.Debug().Stringer("from", from).Stringer("to", to).Str("reason", reason).Msg("mode change")
}

// LogSession logs a state change of a pointer session.
func LogSession(s *interaction.Session, event string) {
	if s == nil {
		return
	}
	p := s.Preview()
	debugLog.Debug().
		Str("event", event).
		Stringer("kind", s.Kind).
		Stringer("state", s.State()).
		Str("meeting", s.Subject.ID).
		Int("delta_days", p.DeltaDays).
		Int("delta_minutes", p.DeltaMinutes).
		Msg("session")
}

// LogOutcome logs a released session.
func LogOutcome(out interaction.Outcome) {
	ev := debugLog.Debug().Stringer("state", out.State).Bool("moved", out.Moved)
	if out.Mutation != nil {
		ev = ev.Str("meeting", out.Mutation.MeetingID).
			Time("starts_at", out.Mutation.After.StartsAt).
			Time("ends_at", out.Mutation.After.EndsAt)
	}
	ev.Msg("release")
}

// LogLoad logs the end of a fetch.
func LogLoad(anchor time.Time, count int, status string) {
	debugLog.Debug().Time("anchor", anchor).Int("count", count).Str("status", status).Msg("loaded")
}

// LogError logs an error surfaced in the status line.
func LogError(err error, where string) {
	debugLog.Warn().Err(err).Str("where", where).Msg("error")
}
