package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/IMNJL/AI-chef/internal/config"
	"github.com/IMNJL/AI-chef/internal/llm"
	"github.com/IMNJL/AI-chef/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.`,
		Example: `  aichef config
  aichef config --show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), config.DefaultConfigPath(), show)
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Only print the configuration")
	return cmd
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string, showOnly bool) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) && !showOnly {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)
	if showOnly {
		return nil
	}

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Storage.Backend = promptChoice(reader, out, "Storage backend", cfg.Storage.Backend, config.BackendSQLite, config.BackendAPI)
	if cfg.Storage.Backend == config.BackendAPI {
		cfg.API.BaseURL = promptValue(reader, out, "API base URL", cfg.API.BaseURL)
		cfg.API.InitData = promptValue(reader, out, "Init data (empty to use telegram id)", cfg.API.InitData)
		if cfg.API.InitData == "" {
			cfg.API.TelegramID = promptInt(reader, out, "Telegram id", cfg.API.TelegramID)
		}
	} else {
		cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	}
	cfg.Calendar.Timezone = promptValue(reader, out, "Timezone (IANA, empty for local)", cfg.Calendar.Timezone)
	cfg.Calendar.DefaultView = promptChoice(reader, out, "Default view", cfg.Calendar.DefaultView, "week", "month")
	cfg.Calendar.DayStart = promptValue(reader, out, "Working day starts (HH:MM)", cfg.Calendar.DayStart)
	cfg.Calendar.DayEnd = promptValue(reader, out, "Working day ends (HH:MM)", cfg.Calendar.DayEnd)
	cfg.Sync.Refresh = promptValue(reader, out, "Background refresh (cron spec, empty to disable)", cfg.Sync.Refresh)
	cfg.LLM.Provider = promptChoice(reader, out, "LLM provider", cfg.LLM.Provider, llm.Providers...)
	cfg.LLM.Model = promptValue(reader, out, "LLM model", cfg.LLM.Model)
	cfg.LLM.BaseURL = promptValue(reader, out, "LLM base URL (Ollama/LM Studio)", cfg.LLM.BaseURL)
	cfg.UI.Theme = promptChoice(reader, out, "UI theme", cfg.UI.Theme, theme.Available()...)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[storage]")
	fmt.Fprintf(w, "  backend          = %s\n", cfg.Storage.Backend)
	fmt.Fprintf(w, "  db_path          = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(w, "\n[api]")
	fmt.Fprintf(w, "  base_url         = %s\n", cfg.API.BaseURL)
	fmt.Fprintf(w, "  init_data        = %s\n", redact(cfg.API.InitData))
	if cfg.API.TelegramID != 0 {
		fmt.Fprintf(w, "  telegram_id      = %d\n", cfg.API.TelegramID)
	}
	fmt.Fprintf(w, "  timeout          = %s\n", cfg.API.Timeout)
	fmt.Fprintln(w, "\n[calendar]")
	fmt.Fprintf(w, "  row_height       = %d\n", cfg.Calendar.RowHeight)
	fmt.Fprintf(w, "  default_view     = %s\n", cfg.Calendar.DefaultView)
	fmt.Fprintf(w, "  timezone         = %s\n", cfg.Calendar.Timezone)
	fmt.Fprintf(w, "  workdays         = %s\n", strings.Join(cfg.Calendar.Workdays, ", "))
	fmt.Fprintf(w, "  day_start        = %s\n", cfg.Calendar.DayStart)
	fmt.Fprintf(w, "  day_end          = %s\n", cfg.Calendar.DayEnd)
	fmt.Fprintln(w, "\n[sync]")
	fmt.Fprintf(w, "  refresh          = %s\n", cfg.Sync.Refresh)
	fmt.Fprintln(w, "\n[llm]")
	fmt.Fprintf(w, "  provider         = %s\n", cfg.LLM.Provider)
	fmt.Fprintf(w, "  model            = %s\n", cfg.LLM.Model)
	fmt.Fprintf(w, "  base_url         = %s\n", cfg.LLM.BaseURL)
	fmt.Fprintln(w, "\n[ui]")
	fmt.Fprintf(w, "  theme            = %s\n", cfg.UI.Theme)
	fmt.Fprintln(w, "\n[server]")
	fmt.Fprintf(w, "  addr             = %s\n", cfg.Server.Addr)
}

// redact hides all but the last four characters of a credential.
func redact(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", 8) + s[len(s)-4:]
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int64) int64 {
	for {
		value := promptValue(reader, out, label, strconv.FormatInt(current, 10))
		n, err := strconv.ParseInt(value, 10, 64)
		if err == nil && n >= 0 {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
	}
}

func promptChoice(reader *bufio.Reader, out io.Writer, label, current string, options ...string) string {
	joined := strings.Join(options, ", ")
	full := fmt.Sprintf("%s (%s)", label, joined)
	for {
		value := strings.ToLower(promptValue(reader, out, full, current))
		for _, o := range options {
			if value == o {
				return value
			}
		}
		fmt.Fprintf(out, "  Invalid value %q. Available: %s\n", value, joined)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}
