package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// envPrefix is prepended to every environment override.
const envPrefix = "AUTORETURN_"

// Loader loads and merges configuration from file, environment, and
// defaults.
type Loader struct {
	path     string
	validate *validator.Validate
}

// NewLoader creates a loader for the given config file path. An empty path
// uses the xdg default.
func NewLoader(path string) *Loader {
	if path == "" {
		path = DefaultConfigPath()
	}
	return &Loader{
		path:     path,
		validate: validator.New(),
	}
}

// Load builds the effective configuration: defaults, then the config file,
// then environment overrides, validated as a whole.
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	if fileCfg, err := l.loadFile(); err == nil {
		merge(config, fileCfg)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load config from %s: %w", l.path, err)
	}

	applyEnvironmentOverrides(config)

	if err := l.Validate(config); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks a configuration against its struct tags.
func (l *Loader) Validate(config *Config) error {
	err := l.validate.Struct(config)
	if err == nil {
		return nil
	}
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			return ValidationError{
				Field:   e.Field(),
				Message: fmt.Sprintf("validation failed on tag '%s' with value '%v'", e.Tag(), e.Value()),
				Value:   e.Value(),
			}
		}
	}
	return err
}

// SaveFile writes a configuration to the loader's path.
func (l *Loader) SaveFile(config *Config) error {
	if err := l.Validate(config); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(l.path, data, 0o644)
}

func (l *Loader) loadFile() (*Config, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, err
	}
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &config, nil
}

// merge overlays non-zero override fields onto base.
func merge(base, override *Config) {
	if override.API.APIKey != "" {
		base.API.APIKey = override.API.APIKey
	}
	if override.API.BaseURL != "" {
		base.API.BaseURL = override.API.BaseURL
	}
	if override.API.Model != "" {
		base.API.Model = override.API.Model
	}
	if override.API.TimeoutSeconds != 0 {
		base.API.TimeoutSeconds = override.API.TimeoutSeconds
	}
	if override.API.RetryCount != 0 {
		base.API.RetryCount = override.API.RetryCount
	}
	if override.Chat.MaxTurns != 0 {
		base.Chat.MaxTurns = override.Chat.MaxTurns
	}
	if override.Chat.ToolLatencyMs != 0 {
		base.Chat.ToolLatencyMs = override.Chat.ToolLatencyMs
	}
	if override.Chat.Temperature != nil {
		base.Chat.Temperature = override.Chat.Temperature
	}
	if override.Chat.MaxTokens != nil {
		base.Chat.MaxTokens = override.Chat.MaxTokens
	}
	if override.Storage.DatabasePath != "" {
		base.Storage.DatabasePath = override.Storage.DatabasePath
	}
	if override.Log.Level != "" {
		base.Log.Level = override.Log.Level
	}
	if override.Log.Format != "" {
		base.Log.Format = override.Log.Format
	}
	if override.Log.File != "" {
		base.Log.File = override.Log.File
	}
}

// applyEnvironmentOverrides applies AUTORETURN_* variables on top of the
// merged configuration. OPENROUTER_API_KEY is honored as a fallback key
// source.
func applyEnvironmentOverrides(config *Config) {
	if v := os.Getenv(envPrefix + "API_KEY"); v != "" {
		config.API.APIKey = v
	} else if config.API.APIKey == "" {
		config.API.APIKey = os.Getenv("OPENROUTER_API_KEY")
	}
	if v := os.Getenv(envPrefix + "BASE_URL"); v != "" {
		config.API.BaseURL = v
	}
	if v := os.Getenv(envPrefix + "MODEL"); v != "" {
		config.API.Model = v
	}
	if v := os.Getenv(envPrefix + "MAX_TURNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Chat.MaxTurns = n
		}
	}
	if v := os.Getenv(envPrefix + "TOOL_LATENCY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Chat.ToolLatencyMs = n
		}
	}
	if v := os.Getenv(envPrefix + "DATABASE_PATH"); v != "" {
		config.Storage.DatabasePath = v
	}
	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
	if v := os.Getenv(envPrefix + "LOG_FORMAT"); v != "" {
		config.Log.Format = v
	}
}
