// Package config loads runtime configuration from the environment and
// query-layer settings from an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	VaultPath    string
	DBPath       string
	SettingsPath string
	LogLevel     string
	LogPretty    bool
}

func Load() Config {
	return Config{
		VaultPath:    os.Getenv("DATAVIEW_VAULT"),
		DBPath:       os.Getenv("DATAVIEW_DB"),
		SettingsPath: os.Getenv("DATAVIEW_SETTINGS"),
		LogLevel:     envOr("DATAVIEW_LOG_LEVEL", "info"),
		LogPretty:    parseBoolOr("DATAVIEW_LOG_PRETTY", false),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolOr(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return strings.EqualFold(v, "1") || strings.EqualFold(v, "true")
}

// Settings tune how task results render and how completion is tracked in
// task text.
type Settings struct {
	CompletionTracking bool   `toml:"completion_tracking"`
	CompletionKey      string `toml:"completion_key"`
	RenderNullAs       string `toml:"render_null_as"`
	TaskSymbol         string `toml:"task_symbol"`
}

func DefaultSettings() Settings {
	return Settings{
		CompletionTracking: true,
		CompletionKey:      "completion",
		RenderNullAs:       "-",
		TaskSymbol:         "-",
	}
}

// LoadSettings reads a TOML settings file on top of the defaults. A missing
// file is not an error; a malformed one is.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}
	if _, err := toml.DecodeFile(path, &settings); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("settings %s: %w", path, err)
	}
	if strings.TrimSpace(settings.CompletionKey) == "" {
		settings.CompletionKey = "completion"
	}
	return settings, nil
}
