package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robfig/cron/v3"

	"github.com/IMNJL/AI-chef/internal/tui/commands"
)

// Sender delivers messages into a running program. *tea.Program
// implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// StartRefresh sends a RefreshMsg to s on every tick of the cron spec. An
// empty spec schedules nothing. The returned func stops the scheduler.
func StartRefresh(s Sender, spec string) (func(), error) {
	if spec == "" {
		return func() {}, nil
	}
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { s.Send(commands.RefreshMsg{}) }); err != nil {
		return nil, err
	}
	c.Start()
	debugLog.Debug().Str("spec", spec).Msg("refresh scheduled")
	return func() { <-c.Stop().Done() }, nil
}
