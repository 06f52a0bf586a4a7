package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/IMNJL/AI-chef/internal/calendar"
	"github.com/IMNJL/AI-chef/internal/config"
	"github.com/IMNJL/AI-chef/internal/meeting"
	"github.com/IMNJL/AI-chef/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	store   meeting.Store
	config  *config.Config
	root    *cobra.Command
	debug   bool // Enable debug logging
	noColor bool
	clock   func() time.Time
}

// NewApp creates a new CLI application. A nil store is opened from the
// config on first use.
func NewApp(store meeting.Store, cfg *config.Config) *App {
	a := &App{store: store, config: cfg}

	a.root = &cobra.Command{
		Use:   "aichef",
		Short: "A terminal calendar for your meetings",
		Long: `aichef shows your meetings in a week or month grid.

Drag meetings with the mouse to move them, drag their bottom edge to
resize them, or use the subcommands below from scripts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor || !colorSupported() {
				DisableColor()
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			return tui.Run(a.store, a.config, a.debug)
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (writes "+tui.DebugLogPath+")")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.monthCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.resizeCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.serveCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "aichef %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureStore opens the configured store unless one was injected.
func (a *App) ensureStore() error {
	if a.store != nil {
		return nil
	}
	store, err := OpenStore(a.config)
	if err != nil {
		return err
	}
	a.store = store
	return nil
}

// service wraps the store in a calendar service in the configured timezone.
func (a *App) service() (*calendar.Service, error) {
	if err := a.ensureStore(); err != nil {
		return nil, err
	}
	loc, err := a.config.Location()
	if err != nil {
		return nil, err
	}
	opts := []calendar.Option{calendar.WithLocation(loc)}
	if a.clock != nil {
		opts = append(opts, calendar.WithClock(a.clock))
	}
	return calendar.NewService(a.store, opts...), nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the store.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

// errNoChange is reported when a move or resize is a no-op.
var errNoChange = errors.New("meeting already at that time")
