package main

import (
	"fmt"
	"os"

	"github.com/IMNJL/AI-chef/internal/config"
	"github.com/IMNJL/AI-chef/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The store is opened lazily so that config and version work without one.
	app := ui.NewApp(nil, cfg)
	defer func() { _ = app.Close() }()
	return app.Execute()
}
