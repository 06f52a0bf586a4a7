package ui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/IMNJL/AI-chef/internal/config"
	"github.com/IMNJL/AI-chef/internal/server"
)

func (a *App) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the meetings API from the local database",
		Long: `Run the meetings REST API over the local SQLite database, for
offline use and for pointing another aichef at it with
storage.backend = "api".

Requests need an X-Telegram-Init-Data header or a telegramId query
parameter, but the value is not verified.`,
		Example: `  aichef serve
  aichef serve --addr=:9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.serverStore()
			if err != nil {
				return err
			}
			loc, err := a.config.Location()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.config.Server.Addr
			}

			level := zerolog.InfoLevel
			if a.debug {
				level = zerolog.DebugLevel
			}
			log := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
				Level(level).With().Timestamp().Logger()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(store, server.WithLogger(log), server.WithLocation(loc))
			fmt.Fprintf(cmd.OutOrStdout(), "Serving meetings on http://%s\n", addr)
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}

// serverStore returns the store to serve: the configured one when it is
// local, otherwise the SQLite database at storage.db_path.
func (a *App) serverStore() (server.Store, error) {
	if a.store == nil && a.config.Storage.Backend != config.BackendAPI {
		if err := a.ensureStore(); err != nil {
			return nil, err
		}
	}
	if s, ok := a.store.(server.Store); ok {
		return s, nil
	}
	s, err := openSQLite(a.config.Storage.DBPath)
	if err != nil {
		return nil, err
	}
	if a.store == nil {
		a.store = s
	}
	return s, nil
}
