package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/IMNJL/AI-chef/internal/api"
	"github.com/IMNJL/AI-chef/internal/config"
	"github.com/IMNJL/AI-chef/internal/db"
	"github.com/IMNJL/AI-chef/internal/meeting"
)

// OpenStore opens the meeting store selected by cfg.Storage.Backend.
func OpenStore(cfg *config.Config) (meeting.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendAPI:
		return api.NewClient(cfg.API.BaseURL, api.Credentials{
			InitData:   cfg.API.InitData,
			TelegramID: cfg.API.TelegramID,
		}, api.WithTimeout(cfg.APITimeout())), nil
	case config.BackendSQLite, "":
		return openSQLite(cfg.Storage.DBPath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func openSQLite(path string) (*db.SQLite, error) {
	path, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	s, err := db.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return s, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
