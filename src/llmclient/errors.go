package llmclient

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrNoAPIKey indicates the API key is missing.
	ErrNoAPIKey = errors.New("API key is required")

	// ErrEmptyResponse indicates the API returned a response with no choices.
	ErrEmptyResponse = errors.New("empty response from API")

	// ErrTimeout indicates a timeout occurred.
	ErrTimeout = errors.New("operation timed out")

	// ErrRateLimited indicates rate limiting.
	ErrRateLimited = errors.New("rate limited")
)

// ErrorResponse matches the wire error format:
// {"error":{"message":"...","code":"..."}}
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// APIError represents an error response from the chat completions API.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
	Code       string
	Param      string
	Details    map[string]interface{}
	RequestID  string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

// IsRetryable returns true if the error is retryable.
func (e *APIError) IsRetryable() bool {
	if e.StatusCode >= 500 && e.StatusCode < 600 {
		return true
	}
	if e.StatusCode == http.StatusTooManyRequests {
		return true
	}
	switch e.Code {
	case "timeout", "connection_error", "server_error":
		return true
	}
	return false
}

// IsRateLimit returns true if this is a rate limit error.
func (e *APIError) IsRateLimit() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.Code == "rate_limit_exceeded"
}

// IsAuthError returns true if this is an authentication error.
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.Code == "invalid_api_key"
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.IsRetryable()
	}

	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrRateLimited) {
		return true
	}

	return false
}

// GetRetryDelay returns the appropriate retry delay for an error.
func GetRetryDelay(err error, attempt int) time.Duration {
	// Rate limit errors may carry an explicit retry-after.
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.IsRateLimit() {
		if retryAfter, ok := apiErr.Details["retry_after"].(float64); ok {
			return time.Duration(retryAfter) * time.Second
		}
	}

	// Exponential backoff: attempt 1: 1s, attempt 2: 2s, attempt 3: 4s.
	delay := time.Second * time.Duration(1<<uint(attempt-1))
	maxDelay := time.Minute
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}
