package executor

import (
	"time"

	"github.com/autoreturn/autoreturn/src/aisdk"
	"github.com/autoreturn/autoreturn/src/returnsagent/tools/tool_vision"
)

// EventType identifies the kind of conversation event.
type EventType string

const (
	EventUserMessage          EventType = "user_message"
	EventAssistantMessage     EventType = "assistant_message"
	EventToolCallRequest      EventType = "tool_call_request"
	EventToolCallResponse     EventType = "tool_call_response"
	EventToolCallError        EventType = "tool_call_error"
	EventToolProgress         EventType = "tool_progress"
	EventSystemMessage        EventType = "system_message"
	EventError                EventType = "error"
	EventTurnComplete         EventType = "turn_complete"
	EventConversationComplete EventType = "conversation_complete"
)

// ConversationEvent is implemented by every event emitted during a turn.
type ConversationEvent interface {
	Type() EventType
	Timestamp() time.Time
	ConversationID() string
}

// BaseEvent holds the fields common to all events.
type BaseEvent struct {
	EventType           EventType `json:"type"`
	EventTimestamp      time.Time `json:"timestamp"`
	EventConversationID string    `json:"conversation_id"`
	TurnNumber          int       `json:"turn_number"`
}

func (e *BaseEvent) Type() EventType        { return e.EventType }
func (e *BaseEvent) Timestamp() time.Time   { return e.EventTimestamp }
func (e *BaseEvent) ConversationID() string { return e.EventConversationID }

// UserMessageEvent is emitted when a user message enters the transcript.
type UserMessageEvent struct {
	BaseEvent
	Content    string `json:"content"`
	Attachment string `json:"attachment,omitempty"`
}

// AssistantMessageEvent is emitted for every assistant message, whether it
// carries tool calls or the final text.
type AssistantMessageEvent struct {
	BaseEvent
	Content   string           `json:"content"`
	ToolCalls []aisdk.ToolCall `json:"tool_calls,omitempty"`
}

// ToolCallRequestEvent is emitted before a tool call executes.
type ToolCallRequestEvent struct {
	BaseEvent
	ToolCall aisdk.ToolCall `json:"tool_call"`
}

// ToolCallResponseEvent is emitted after a tool call completes.
type ToolCallResponseEvent struct {
	BaseEvent
	ToolCall aisdk.ToolCall      `json:"tool_call"`
	Response *aisdk.ToolResponse `json:"response"`
	Duration time.Duration       `json:"duration"`
}

// ToolCallErrorEvent is emitted when tool execution itself fails.
type ToolCallErrorEvent struct {
	BaseEvent
	ToolCall aisdk.ToolCall `json:"tool_call"`
	Error    error          `json:"error"`
	Duration time.Duration  `json:"duration"`
}

// ToolProgressEvent carries the intermediate analysis card the vision tool
// publishes before its simulated processing delay elapses.
type ToolProgressEvent struct {
	BaseEvent
	Progress tool_vision.Progress `json:"progress"`
}

// SystemMessageEvent carries operator-facing notices such as the return
// window warning or the turn-limit apology.
type SystemMessageEvent struct {
	BaseEvent
	Message string `json:"message"`
	Purpose string `json:"purpose"` // "info", "warning", "apology"
}

// ErrorEvent is emitted when a turn fails outside tool execution.
type ErrorEvent struct {
	BaseEvent
	Error   error  `json:"error"`
	Context string `json:"context"`
}

// TurnCompleteEvent is emitted when one model round trip finishes.
type TurnCompleteEvent struct {
	BaseEvent
	State ExecutionState `json:"state"`
	Usage aisdk.Usage    `json:"usage"`
}

// ConversationCompleteEvent is emitted when a user turn fully resolves.
type ConversationCompleteEvent struct {
	BaseEvent
	Reason     string `json:"reason"` // "text_response", "max_turns", "error"
	TotalTurns int    `json:"total_turns"`
}

// EventSink receives events as they occur.
type EventSink interface {
	Send(event ConversationEvent) error
	Close() error
}

// EventProcessor consumes events from a sink.
type EventProcessor interface {
	Process(event ConversationEvent) error
	Close() error
}

// ChannelEventSink fans events out to processors through a buffered channel,
// keeping rendering off the orchestration path.
type ChannelEventSink struct {
	events     chan ConversationEvent
	processors []EventProcessor
	done       chan struct{}
}

// NewChannelEventSink creates a sink and starts its processing goroutine.
func NewChannelEventSink(bufferSize int, processors ...EventProcessor) *ChannelEventSink {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	s := &ChannelEventSink{
		events:     make(chan ConversationEvent, bufferSize),
		processors: processors,
		done:       make(chan struct{}),
	}
	go s.processEvents()
	return s
}

func (s *ChannelEventSink) processEvents() {
	defer close(s.done)
	for event := range s.events {
		for _, p := range s.processors {
			// Processor failures must not stall the conversation.
			_ = p.Process(event)
		}
	}
}

// Send queues an event for processing.
func (s *ChannelEventSink) Send(event ConversationEvent) error {
	s.events <- event
	return nil
}

// Close drains pending events and shuts down the processors.
func (s *ChannelEventSink) Close() error {
	close(s.events)
	<-s.done
	var firstErr error
	for _, p := range s.processors {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
