// Package config loads the application configuration from the xdg config
// file, applies environment overrides, and validates the result.
package config

import "fmt"

// Config is the full application configuration.
type Config struct {
	API     APIConfig     `json:"api"`
	Chat    ChatConfig    `json:"chat"`
	Storage StorageConfig `json:"storage"`
	Log     LogConfig     `json:"log"`
}

// APIConfig configures the model provider connection.
type APIConfig struct {
	// APIKey authenticates against the provider. Usually supplied via
	// AUTORETURN_API_KEY or OPENROUTER_API_KEY rather than the file.
	APIKey string `json:"api_key,omitempty"`

	BaseURL string `json:"base_url,omitempty" validate:"omitempty,url"`

	// Model is the provider model identifier used for support turns.
	Model string `json:"model,omitempty"`

	TimeoutSeconds int `json:"timeout_seconds,omitempty" validate:"omitempty,min=1,max=600"`
	RetryCount     int `json:"retry_count,omitempty" validate:"omitempty,min=0,max=10"`
}

// ChatConfig configures the orchestration loop.
type ChatConfig struct {
	// MaxTurns bounds the model round trips per user turn.
	MaxTurns int `json:"max_turns,omitempty" validate:"omitempty,min=1,max=32"`

	// ToolLatencyMs is the simulated backend delay applied per tool call.
	ToolLatencyMs int `json:"tool_latency_ms,omitempty" validate:"omitempty,min=0,max=60000"`

	Temperature *float64 `json:"temperature,omitempty" validate:"omitempty,min=0,max=2"`
	MaxTokens   *int     `json:"max_tokens,omitempty" validate:"omitempty,min=1"`

	// ShowToolCalls renders tool activity in the chat output.
	ShowToolCalls bool `json:"show_tool_calls,omitempty"`
}

// StorageConfig configures the sqlite store.
type StorageConfig struct {
	DatabasePath string `json:"database_path,omitempty"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level  string `json:"level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	Format string `json:"format,omitempty" validate:"omitempty,oneof=text json"`
	File   string `json:"file,omitempty"`
}

// ValidationError describes a single invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
	Value   interface{}
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config field %s: %s", e.Field, e.Message)
}
