package executor

import (
	"time"

	"github.com/autoreturn/autoreturn/src/aisdk"
	"github.com/autoreturn/autoreturn/src/returnsagent/tools/tool_vision"
)

// EventEmitter builds and sends events for one conversation turn. A nil
// emitter or nil sink silently drops events so callers never have to guard.
type EventEmitter struct {
	sink           EventSink
	conversationID string
	turnNumber     int
}

// NewEventEmitter creates an emitter bound to a conversation and turn.
func NewEventEmitter(sink EventSink, conversationID string, turnNumber int) *EventEmitter {
	return &EventEmitter{
		sink:           sink,
		conversationID: conversationID,
		turnNumber:     turnNumber,
	}
}

func (e *EventEmitter) base(t EventType) BaseEvent {
	return BaseEvent{
		EventType:           t,
		EventTimestamp:      time.Now(),
		EventConversationID: e.conversationID,
		TurnNumber:          e.turnNumber,
	}
}

func (e *EventEmitter) send(event ConversationEvent) {
	if e == nil || e.sink == nil {
		return
	}
	_ = e.sink.Send(event)
}

// EmitUserMessage signals a user message entering the transcript.
func (e *EventEmitter) EmitUserMessage(content string, attachment *aisdk.Attachment) {
	if e == nil {
		return
	}
	ev := &UserMessageEvent{BaseEvent: e.base(EventUserMessage), Content: content}
	if attachment != nil {
		ev.Attachment = attachment.Describe()
	}
	e.send(ev)
}

// EmitAssistantMessage signals an assistant message, final or intermediate.
func (e *EventEmitter) EmitAssistantMessage(content string, toolCalls []aisdk.ToolCall) {
	if e == nil {
		return
	}
	e.send(&AssistantMessageEvent{
		BaseEvent: e.base(EventAssistantMessage),
		Content:   content,
		ToolCalls: toolCalls,
	})
}

// EmitToolCallRequest signals a tool call about to execute.
func (e *EventEmitter) EmitToolCallRequest(call aisdk.ToolCall) {
	if e == nil {
		return
	}
	e.send(&ToolCallRequestEvent{BaseEvent: e.base(EventToolCallRequest), ToolCall: call})
}

// EmitToolCallResponse signals a completed tool call.
func (e *EventEmitter) EmitToolCallResponse(call aisdk.ToolCall, resp *aisdk.ToolResponse, duration time.Duration) {
	if e == nil {
		return
	}
	e.send(&ToolCallResponseEvent{
		BaseEvent: e.base(EventToolCallResponse),
		ToolCall:  call,
		Response:  resp,
		Duration:  duration,
	})
}

// EmitToolCallError signals a tool execution failure.
func (e *EventEmitter) EmitToolCallError(call aisdk.ToolCall, err error, duration time.Duration) {
	if e == nil {
		return
	}
	e.send(&ToolCallErrorEvent{
		BaseEvent: e.base(EventToolCallError),
		ToolCall:  call,
		Error:     err,
		Duration:  duration,
	})
}

// EmitToolProgress forwards the vision analysis card.
func (e *EventEmitter) EmitToolProgress(p tool_vision.Progress) {
	if e == nil {
		return
	}
	e.send(&ToolProgressEvent{BaseEvent: e.base(EventToolProgress), Progress: p})
}

// EmitSystemMessage signals an operator-facing notice.
func (e *EventEmitter) EmitSystemMessage(message, purpose string) {
	if e == nil {
		return
	}
	e.send(&SystemMessageEvent{BaseEvent: e.base(EventSystemMessage), Message: message, Purpose: purpose})
}

// EmitError signals a turn failure.
func (e *EventEmitter) EmitError(err error, context string) {
	if e == nil {
		return
	}
	e.send(&ErrorEvent{BaseEvent: e.base(EventError), Error: err, Context: context})
}

// EmitTurnComplete signals the end of one model round trip.
func (e *EventEmitter) EmitTurnComplete(state ExecutionState, usage aisdk.Usage) {
	if e == nil {
		return
	}
	e.send(&TurnCompleteEvent{BaseEvent: e.base(EventTurnComplete), State: state, Usage: usage})
}

// EmitConversationComplete signals that the user turn fully resolved.
func (e *EventEmitter) EmitConversationComplete(reason string, totalTurns int) {
	if e == nil {
		return
	}
	e.send(&ConversationCompleteEvent{
		BaseEvent:  e.base(EventConversationComplete),
		Reason:     reason,
		TotalTurns: totalTurns,
	})
}
