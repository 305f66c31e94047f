package executor

import (
	"context"
	"time"

	"github.com/autoreturn/autoreturn/src/aisdk"
	"github.com/autoreturn/autoreturn/src/returnsagent"
)

// Turn outcome reasons.
const (
	ReasonTextResponse   = "text_response"
	ReasonTransportError = "transport_error"
	ReasonMaxTurns       = "max_turns"
)

// Fallback replies injected when a turn cannot resolve normally. Both leave
// the transcript with no unresolved tool calls.
const (
	transportFailureReply = "I'm having trouble connecting to the support server. Please try again."
	maxTurnsReply         = "I'm sorry, I wasn't able to resolve that request within the allowed number of steps. Please try again or rephrase your request."
)

// TurnRequest describes one user turn to run through the loop.
type TurnRequest struct {
	// Conversation is the replayed transcript, system instruction included.
	Conversation *aisdk.Conversation

	Model      aisdk.ModelClient
	UserID     string
	UserText   string
	Attachment *aisdk.Attachment

	// Sink receives conversation events. Optional.
	Sink EventSink

	// ToolLatency is the simulated backend delay per tool call.
	ToolLatency time.Duration

	Temperature *float64
	MaxTokens   *int
}

// TurnResult is the outcome of one user turn.
type TurnResult struct {
	// Conversation is the updated transcript after the turn.
	Conversation *aisdk.Conversation

	// FinalMessage is the assistant message that ended the turn. On
	// transport failure or an exceeded iteration bound it is the injected
	// fallback reply.
	FinalMessage *aisdk.Message

	// Reason reports how the turn ended.
	Reason string

	// Iterations is the number of model round trips consumed.
	Iterations int

	// Err holds the underlying cause for abnormal endings. The turn itself
	// is still resolved: the fallback reply is in the transcript.
	Err error
}

// RunTurn drives one user turn to completion: it appends the user message,
// then alternates model requests and tool execution until the model answers
// with text or the iteration bound is hit. The returned error covers
// infrastructure failures only; model transport failures and the iteration
// bound resolve the turn with a fallback reply and are reported via Reason.
func (s *Service) RunTurn(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	if req.Model == nil {
		return nil, ErrModelClientRequired
	}
	if req.Conversation == nil {
		return nil, ErrConversationRequired
	}

	conv := req.Conversation
	emitter := NewEventEmitter(req.Sink, conv.ID, 0)

	toolbox, err := returnsagent.NewToolbox(returnsagent.TurnContext{
		Store:            s.database,
		UserID:           req.UserID,
		UserText:         req.UserText,
		OnVisionProgress: emitter.EmitToolProgress,
		ToolLatency:      req.ToolLatency,
		Logger:           s.logger,
	})
	if err != nil {
		return nil, err
	}

	userMsg := &aisdk.Message{
		Role:       aisdk.RoleUser,
		Content:    req.UserText,
		Attachment: req.Attachment,
	}
	conv = conv.Clone()
	conv.Append(userMsg)
	if err := s.SaveUserMessage(ctx, conv.ID, req.UserText); err != nil {
		return nil, err
	}
	emitter.EmitUserMessage(req.UserText, req.Attachment)

	var usage aisdk.Usage
	for iteration := 1; iteration <= s.maxTurns; iteration++ {
		emitter.turnNumber = iteration

		stepResult, err := s.Step(ctx, StepRequest{
			Conversation: conv,
			Model:        req.Model,
			Toolbox:      toolbox,
			Temperature:  req.Temperature,
			MaxTokens:    req.MaxTokens,
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			return s.abandonTurn(ctx, conv, emitter, iteration, transportFailureReply, ReasonTransportError, err)
		}

		conv = stepResult.UpdatedConversation
		usage = stepResult.Usage
		if err := s.saveAssistantMessage(ctx, conv.ID, stepResult.Response); err != nil {
			return nil, err
		}
		emitter.EmitAssistantMessage(stepResult.Response.Content, stepResult.Response.ToolCalls)
		emitter.EmitTurnComplete(stepResult.State, stepResult.Usage)

		if stepResult.State == StateTextResponse {
			conv.TurnCount++
			emitter.EmitConversationComplete(ReasonTextResponse, iteration)
			return &TurnResult{
				Conversation: conv,
				FinalMessage: stepResult.Response,
				Reason:       ReasonTextResponse,
				Iterations:   iteration,
			}, nil
		}

		toolResult, err := s.ExecuteToolCalls(ctx, ToolExecutionRequest{
			Conversation: conv,
			Toolbox:      toolbox,
			ToolCalls:    stepResult.ToolCalls,
		}, emitter)
		if err != nil {
			return nil, err
		}
		conv = toolResult.UpdatedConversation
		for _, toolMsg := range toolResult.ToolResults {
			if err := s.saveToolMessage(ctx, conv.ID, toolMsg); err != nil {
				return nil, err
			}
		}
	}

	// The model kept requesting tools past the bound. Tool results for
	// every requested call are already in the transcript, so closing with
	// an assistant reply leaves it consistent.
	s.logger.Error("turn exceeded iteration bound", "conversation_id", conv.ID, "max_turns", s.maxTurns, "usage", usage.TotalTokens)
	return s.abandonTurn(ctx, conv, emitter, s.maxTurns, maxTurnsReply, ReasonMaxTurns, ErrMaxTurnsExceeded)
}

// abandonTurn closes a failed turn with a fallback assistant reply so the
// transcript stays consistent for the next turn.
func (s *Service) abandonTurn(ctx context.Context, conv *aisdk.Conversation, emitter *EventEmitter, iterations int, reply, reason string, cause error) (*TurnResult, error) {
	fallback := &aisdk.Message{
		Role:    aisdk.RoleAssistant,
		Content: reply,
	}
	conv = conv.Clone()
	conv.Append(fallback)
	conv.TurnCount++
	if err := s.saveAssistantMessage(ctx, conv.ID, fallback); err != nil {
		return nil, err
	}

	emitter.EmitError(cause, reason)
	emitter.EmitAssistantMessage(fallback.Content, nil)
	emitter.EmitConversationComplete(reason, iterations)

	return &TurnResult{
		Conversation: conv,
		FinalMessage: fallback,
		Reason:       reason,
		Iterations:   iterations,
		Err:          cause,
	}, nil
}
