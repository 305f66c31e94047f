package llmclient

import (
	"log/slog"
	"time"
)

// Config holds configuration for the chat completion client.
type Config struct {
	APIKey     string        // bearer token for the API
	BaseURL    string        // base URL of an OpenAI-compatible endpoint
	Logger     *slog.Logger  // logger for debugging
	Timeout    time.Duration // HTTP timeout
	RetryCount int           // number of retries for failed requests
	RetryDelay time.Duration // delay between retries
}
