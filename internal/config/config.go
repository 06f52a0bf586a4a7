// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"

	"github.com/IMNJL/AI-chef/internal/scheduler"
	"github.com/IMNJL/AI-chef/internal/viewstate"
)

// Storage backends.
const (
	BackendAPI    = "api"
	BackendSQLite = "sqlite"
)

const envPrefix = "AICHEF_"

// Config holds the application configuration.
type Config struct {
	API      APIConfig      `toml:"api"`
	Storage  StorageConfig  `toml:"storage"`
	Calendar CalendarConfig `toml:"calendar"`
	Sync     SyncConfig     `toml:"sync"`
	LLM      LLMConfig      `toml:"llm"`
	UI       UIConfig       `toml:"ui"`
	Server   ServerConfig   `toml:"server"`
}

// APIConfig holds the remote meetings API settings.
type APIConfig struct {
	BaseURL    string `toml:"base_url"`    // e.g., "https://example.com"
	InitData   string `toml:"init_data"`   // opaque credential, sent as a header
	TelegramID int64  `toml:"telegram_id"` // fallback credential when init_data is empty
	Timeout    string `toml:"timeout"`     // e.g., "15s"
}

// StorageConfig selects where meetings live.
type StorageConfig struct {
	Backend string `toml:"backend"` // "api" or "sqlite"
	DBPath  string `toml:"db_path"`
}

// CalendarConfig holds grid settings.
type CalendarConfig struct {
	RowHeight   int    `toml:"row_height"`   // terminal lines per hour
	DefaultView string `toml:"default_view"` // "week" or "month"
	SnapMinutes int    `toml:"snap_minutes"`
	Timezone    string `toml:"timezone"` // IANA name, empty for local

	// Working hours, used when looking for a free slot.
	Workdays []string `toml:"workdays"`  // e.g., ["monday", "friday"]
	DayStart string   `toml:"day_start"` // "HH:MM"
	DayEnd   string   `toml:"day_end"`   // "HH:MM"
}

// SyncConfig holds background refresh settings.
type SyncConfig struct {
	Refresh string `toml:"refresh"` // cron spec, empty disables
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Provider string `toml:"provider"` // "copilot", "ollama", "lmstudio"
	Model    string `toml:"model"`    // e.g., "gpt-4o"
	BaseURL  string `toml:"base_url"` // e.g., "http://localhost:11434"
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// ServerConfig holds the local API server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Timeout: "15s",
		},
		Storage: StorageConfig{
			Backend: BackendSQLite,
			DBPath:  defaultDBPath(),
		},
		Calendar: CalendarConfig{
			RowHeight:   2,
			DefaultView: string(viewstate.ModeWeek),
			SnapMinutes: 15,
			Workdays:    []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
			DayStart:    "09:00",
			DayEnd:      "18:00",
		},
		Sync: SyncConfig{
			Refresh: "@every 5m",
		},
		LLM: LLMConfig{
			Provider: "copilot",
			Model:    "gpt-4o",
			BaseURL:  "http://localhost:11434",
		},
		UI: UIConfig{
			Theme: "mocha",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "aichef.db"
	}
	return filepath.Join(home, ".local", "share", "aichef", "aichef.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "aichef", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	strs := map[string]*string{
		"API_BASE_URL":    &cfg.API.BaseURL,
		"INIT_DATA":       &cfg.API.InitData,
		"API_TIMEOUT":     &cfg.API.Timeout,
		"STORAGE_BACKEND": &cfg.Storage.Backend,
		"DB_PATH":         &cfg.Storage.DBPath,
		"DEFAULT_VIEW":    &cfg.Calendar.DefaultView,
		"TIMEZONE":        &cfg.Calendar.Timezone,
		"SYNC_REFRESH":    &cfg.Sync.Refresh,
		"LLM_PROVIDER":    &cfg.LLM.Provider,
		"LLM_MODEL":       &cfg.LLM.Model,
		"LLM_BASE_URL":    &cfg.LLM.BaseURL,
		"UI_THEME":        &cfg.UI.Theme,
		"SERVER_ADDR":     &cfg.Server.Addr,
	}
	for name, field := range strs {
		if v := os.Getenv(envPrefix + name); v != "" {
			*field = v
		}
	}

	// Invalid numbers are ignored rather than failing the whole load.
	if v := os.Getenv(envPrefix + "TELEGRAM_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.API.TelegramID = id
		}
	}
	if v := os.Getenv(envPrefix + "ROW_HEIGHT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Calendar.RowHeight = n
		}
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendAPI, BackendSQLite:
	default:
		return fmt.Errorf("storage backend must be %q or %q, got %q", BackendAPI, BackendSQLite, c.Storage.Backend)
	}
	if c.Storage.Backend == BackendSQLite && c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}

	if c.API.Timeout != "" {
		d, err := time.ParseDuration(c.API.Timeout)
		if err != nil {
			return fmt.Errorf("api timeout: %w", err)
		}
		if d <= 0 {
			return errors.New("api timeout must be positive")
		}
	}
	if c.API.TelegramID < 0 {
		return errors.New("telegram_id must not be negative")
	}

	if c.Calendar.RowHeight < 1 || c.Calendar.RowHeight > 4 {
		return fmt.Errorf("row_height must be between 1 and 4, got %d", c.Calendar.RowHeight)
	}
	if _, err := viewstate.ParseMode(c.Calendar.DefaultView); err != nil {
		return fmt.Errorf("default_view: %w", err)
	}
	if c.Calendar.SnapMinutes != 15 {
		return fmt.Errorf("snap_minutes must be 15, got %d", c.Calendar.SnapMinutes)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.Scheduler(); err != nil {
		return err
	}

	if c.Sync.Refresh != "" {
		if _, err := cron.ParseStandard(c.Sync.Refresh); err != nil {
			return fmt.Errorf("sync refresh %q: %w", c.Sync.Refresh, err)
		}
	}
	return nil
}

// Location returns the configured display location.
func (c *Config) Location() (*time.Location, error) {
	if c.Calendar.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Calendar.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Calendar.Timezone, err)
	}
	return loc, nil
}

// Scheduler returns a free slot finder for the configured working hours.
func (c *Config) Scheduler() (*scheduler.Scheduler, error) {
	s, err := scheduler.New(c.Calendar.Workdays, c.Calendar.DayStart, c.Calendar.DayEnd)
	if err != nil {
		return nil, fmt.Errorf("working hours: %w", err)
	}
	return s, nil
}

// APITimeout returns the request timeout, or zero when unset.
func (c *Config) APITimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// View returns the configured initial view mode.
func (c *Config) View() viewstate.Mode {
	m, err := viewstate.ParseMode(c.Calendar.DefaultView)
	if err != nil {
		return viewstate.ModeWeek
	}
	return m
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path. The file may hold
// a credential, so it is written owner-only.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
