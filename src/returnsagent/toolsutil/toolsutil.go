// Package toolsutil holds helpers shared by the returns agent tools.
package toolsutil

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Package-level logger for tools. Defaults to discard so library use stays
// quiet until the CLI installs a real logger.
var logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
	Level: slog.LevelError,
}))

// SetLogger allows setting a custom logger for the tools packages.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// GetLogger returns the current tools logger.
func GetLogger() *slog.Logger {
	return logger
}

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidParams      = errors.New("invalid parameters")
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// ToolError carries structured context for a failed tool invocation. The
// executor serializes it into the tool result, so the model sees the type
// and code, not a bare string.
type ToolError struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *ToolError) Unwrap() error {
	return e.Cause
}

// NewToolError creates a new tool error with context.
func NewToolError(errorType, message, code string, cause error) *ToolError {
	return &ToolError{
		Type:    errorType,
		Message: message,
		Code:    code,
		Cause:   cause,
		Details: make(map[string]interface{}),
	}
}

// NotFoundError reports a missing domain entity.
func NotFoundError(entity, id string) *ToolError {
	return NewToolError("NotFound", fmt.Sprintf("%s %s not found", entity, id), "not_found", ErrNotFound)
}

// ValidationError reports rejected tool arguments.
func ValidationError(message string) *ToolError {
	return NewToolError("ValidationError", message, "invalid_params", ErrInvalidParams)
}

// BackendError reports a store failure behind a tool.
func BackendError(operation string, cause error) *ToolError {
	return NewToolError("BackendUnavailable", fmt.Sprintf("%s failed", operation), "backend_unavailable", cause)
}
