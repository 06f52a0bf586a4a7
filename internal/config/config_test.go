package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/IMNJL/AI-chef/internal/viewstate"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("expected backend sqlite, got %s", cfg.Storage.Backend)
	}
	if cfg.Calendar.SnapMinutes != 15 {
		t.Errorf("expected snap_minutes 15, got %d", cfg.Calendar.SnapMinutes)
	}
	if cfg.Sync.Refresh != "@every 5m" {
		t.Errorf("expected refresh @every 5m, got %s", cfg.Sync.Refresh)
	}
	if cfg.LLM.Provider != "copilot" {
		t.Errorf("expected provider copilot, got %s", cfg.LLM.Provider)
	}
	if cfg.APITimeout() != 15*time.Second {
		t.Errorf("expected timeout 15s, got %v", cfg.APITimeout())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.View() != viewstate.ModeWeek {
		t.Errorf("expected default view week, got %s", cfg.View())
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[api]
base_url = "https://cal.example.com"
init_data = "query_id=1&hash=abc"
timeout = "5s"

[storage]
backend = "api"
db_path = "/tmp/test.db"

[calendar]
row_height = 3
default_view = "month"
timezone = "Europe/Moscow"

[sync]
refresh = "*/10 * * * *"

[llm]
provider = "ollama"
model = "llama3"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.BaseURL != "https://cal.example.com" {
		t.Errorf("expected base_url from file, got %s", cfg.API.BaseURL)
	}
	if cfg.API.InitData != "query_id=1&hash=abc" {
		t.Errorf("expected init_data from file, got %s", cfg.API.InitData)
	}
	if cfg.APITimeout() != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", cfg.APITimeout())
	}
	if cfg.Storage.Backend != BackendAPI {
		t.Errorf("expected backend api, got %s", cfg.Storage.Backend)
	}
	if cfg.Calendar.RowHeight != 3 {
		t.Errorf("expected row_height 3, got %d", cfg.Calendar.RowHeight)
	}
	if cfg.View() != viewstate.ModeMonth {
		t.Errorf("expected month view, got %s", cfg.View())
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "Europe/Moscow" {
		t.Errorf("location = %v, %v", loc, err)
	}
	if cfg.Sync.Refresh != "*/10 * * * *" {
		t.Errorf("expected refresh from file, got %s", cfg.Sync.Refresh)
	}
	// Sections absent from the file keep their defaults.
	if cfg.UI.Theme != "mocha" {
		t.Errorf("expected default theme, got %s", cfg.UI.Theme)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[api]
base_url = "https://file.example.com"
telegram_id = 7

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("AICHEF_API_BASE_URL", "https://env.example.com")
	t.Setenv("AICHEF_TELEGRAM_ID", "42")
	t.Setenv("AICHEF_ROW_HEIGHT", "not-a-number")
	t.Setenv("AICHEF_UI_THEME", "latte")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.BaseURL != "https://env.example.com" {
		t.Errorf("expected base_url from env, got %s", cfg.API.BaseURL)
	}
	if cfg.API.TelegramID != 42 {
		t.Errorf("expected telegram_id 42 from env, got %d", cfg.API.TelegramID)
	}
	if cfg.Calendar.RowHeight != 2 {
		t.Errorf("invalid env number should be ignored, got row_height %d", cfg.Calendar.RowHeight)
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path from file, got %s", cfg.Storage.DBPath)
	}
	if cfg.UI.Theme != "latte" {
		t.Errorf("expected theme latte from env, got %s", cfg.UI.Theme)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Storage.Backend = "postgres" }},
		{"sqlite without path", func(c *Config) { c.Storage.DBPath = "" }},
		{"bad timeout", func(c *Config) { c.API.Timeout = "soon" }},
		{"negative timeout", func(c *Config) { c.API.Timeout = "-1s" }},
		{"negative telegram id", func(c *Config) { c.API.TelegramID = -1 }},
		{"row height zero", func(c *Config) { c.Calendar.RowHeight = 0 }},
		{"row height too large", func(c *Config) { c.Calendar.RowHeight = 5 }},
		{"unknown view", func(c *Config) { c.Calendar.DefaultView = "day" }},
		{"snap not 15", func(c *Config) { c.Calendar.SnapMinutes = 10 }},
		{"unknown timezone", func(c *Config) { c.Calendar.Timezone = "Mars/Olympus" }},
		{"bad cron", func(c *Config) { c.Sync.Refresh = "every now and then" }},
		{"unknown workday", func(c *Config) { c.Calendar.Workdays = []string{"someday"} }},
		{"day ends before it starts", func(c *Config) { c.Calendar.DayEnd = "08:00" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidate_APIBackendWithoutPath(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = BackendAPI
	cfg.Storage.DBPath = ""
	cfg.Sync.Refresh = ""

	if err := cfg.Validate(); err != nil {
		t.Errorf("api backend does not need db_path: %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/test.db", filepath.Join(home, "test.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := expandPath(tc.input)
			if got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	cfg := Default()
	cfg.API.BaseURL = "https://cal.example.com"
	cfg.API.TelegramID = 99
	cfg.Calendar.DefaultView = "month"
	cfg.Storage.DBPath = filepath.Join(tmpDir, "aichef.db")

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.API.BaseURL != cfg.API.BaseURL || loaded.API.TelegramID != 99 {
		t.Errorf("api = %+v", loaded.API)
	}
	if loaded.View() != viewstate.ModeMonth {
		t.Errorf("expected month view, got %s", loaded.View())
	}
}
