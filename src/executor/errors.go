package executor

import "errors"

var (
	// ErrMaxTurnsExceeded is returned when the model keeps requesting tools
	// past the per-turn iteration bound.
	ErrMaxTurnsExceeded = errors.New("maximum turns exceeded")

	// ErrModelClientRequired is returned when a step is attempted without a
	// bound model client.
	ErrModelClientRequired = errors.New("model client is required")

	// ErrConversationRequired is returned when a step is attempted without a
	// transcript.
	ErrConversationRequired = errors.New("conversation is required")

	// ErrConversationNotFound is returned when a resume target does not
	// exist in storage.
	ErrConversationNotFound = errors.New("conversation not found")
)
