package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// githubTokenEnv lists the variables checked before the Copilot config files.
var githubTokenEnv = []string{"AICHEF_GITHUB_TOKEN", "GITHUB_TOKEN"}

// LoadGitHubToken finds a GitHub OAuth token usable for Copilot: first in
// the environment, then in the github-copilot hosts.json or apps.json that
// editor plugins write.
func LoadGitHubToken() (string, error) {
	for _, name := range githubTokenEnv {
		if token := os.Getenv(name); token != "" {
			return token, nil
		}
	}

	dir, err := configDir()
	if err != nil {
		return "", fmt.Errorf("getting config directory: %w", err)
	}
	for _, name := range []string{"hosts.json", "apps.json"} {
		if token, err := oauthTokenIn(filepath.Join(dir, "github-copilot", name)); err == nil {
			return token, nil
		}
	}

	return "", errors.New("GitHub token not found: set GITHUB_TOKEN or sign in to GitHub Copilot in your editor")
}

// configDir is where Copilot editor plugins keep their config. They use
// ~/.config on macOS too.
func configDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir, nil
	}
	if runtime.GOOS == "windows" {
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return dir, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(home, "AppData", "Local"), nil
	}
	return filepath.Join(home, ".config"), nil
}

// oauthTokenIn reads the oauth_token of the github.com entry in a Copilot
// config file.
func oauthTokenIn(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var hosts map[string]struct {
		OAuthToken string `json:"oauth_token"`
	}
	if err := json.Unmarshal(data, &hosts); err != nil {
		return "", err
	}
	for key, host := range hosts {
		if strings.Contains(key, "github.com") && host.OAuthToken != "" {
			return host.OAuthToken, nil
		}
	}
	return "", fmt.Errorf("oauth_token not found in %s", path)
}
