package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "autoreturn"

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "https://openrouter.ai/api/v1",
			Model:          "google/gemini-2.5-flash",
			TimeoutSeconds: 60,
			RetryCount:     3,
		},
		Chat: ChatConfig{
			MaxTurns:      8,
			ToolLatencyMs: 1500,
			ShowToolCalls: true,
		},
		Storage: StorageConfig{
			DatabasePath: DefaultDatabasePath(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultConfigPath returns the xdg location of the config file.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.json")
}

// DefaultDatabasePath returns the xdg location of the sqlite store.
func DefaultDatabasePath() string {
	return filepath.Join(xdg.StateHome, appName, "autoreturn.db")
}
