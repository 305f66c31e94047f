package executor

import (
	"github.com/autoreturn/autoreturn/src/agent"
	"github.com/autoreturn/autoreturn/src/aisdk"
)

// ExecutionState describes where a turn is in the request/tool/response cycle.
type ExecutionState int

const (
	// StateTextResponse means the model answered with plain text and the
	// turn is finished.
	StateTextResponse ExecutionState = iota

	// StateToolCallsNeeded means the model requested tool calls that have
	// not been executed yet.
	StateToolCallsNeeded

	// StateToolCallsCompleted means the requested tool calls were executed
	// and their results appended to the transcript.
	StateToolCallsCompleted

	// StateError means the step failed before producing a usable response.
	StateError
)

// String returns a human-readable name for the state.
func (s ExecutionState) String() string {
	switch s {
	case StateTextResponse:
		return "text_response"
	case StateToolCallsNeeded:
		return "tool_calls_needed"
	case StateToolCallsCompleted:
		return "tool_calls_completed"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// StepRequest holds everything needed for a single model round trip.
type StepRequest struct {
	Conversation *aisdk.Conversation
	Model        aisdk.ModelClient
	Toolbox      *agent.Toolbox
	Temperature  *float64
	MaxTokens    *int
}

// StepResult is the outcome of one model round trip.
type StepResult struct {
	State     ExecutionState
	Response  *aisdk.Message
	ToolCalls []aisdk.ToolCall
	Usage     aisdk.Usage
	Error     error

	// UpdatedConversation includes the assistant message produced by this
	// step appended to the input transcript.
	UpdatedConversation *aisdk.Conversation
}

// ToolExecutionRequest asks for a batch of tool calls to be executed in the
// order the model emitted them.
type ToolExecutionRequest struct {
	Conversation *aisdk.Conversation
	Toolbox      *agent.Toolbox
	ToolCalls    []aisdk.ToolCall
}

// ToolExecutionResult carries the tool messages produced for a batch.
type ToolExecutionResult struct {
	State ExecutionState

	// ToolResults holds one tool message per requested call, in call order.
	ToolResults []*aisdk.Message

	// UpdatedConversation includes the tool messages appended to the input
	// transcript.
	UpdatedConversation *aisdk.Conversation
}
