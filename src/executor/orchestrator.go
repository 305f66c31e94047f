package executor

import (
	"context"
	"fmt"

	"github.com/autoreturn/autoreturn/src/agent"
	"github.com/autoreturn/autoreturn/src/aisdk"
)

// Step performs one model round trip: it sends the transcript plus the tool
// declarations and classifies the response as final text or a tool-call
// request. The assistant message is appended to the returned transcript but
// not persisted; persistence is the caller's job.
func (s *Service) Step(ctx context.Context, req StepRequest) (*StepResult, error) {
	if req.Model == nil {
		return nil, ErrModelClientRequired
	}
	if req.Conversation == nil {
		return nil, ErrConversationRequired
	}

	chatReq := &aisdk.ChatCompletionRequest{
		Messages:    req.Conversation.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.Toolbox != nil {
		if tools := req.Toolbox.Tools(); len(tools) > 0 {
			chatReq.Tools = agent.ToChatTools(tools)
			chatReq.ToolChoice = "auto"
		}
	}

	resp, err := req.Model.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return &StepResult{State: StateError, Error: err}, err
	}
	if len(resp.Choices) == 0 {
		err := fmt.Errorf("model returned no choices")
		return &StepResult{State: StateError, Error: err}, err
	}

	choice := resp.Choices[0].Message
	assistantMsg := &aisdk.Message{
		Role:      aisdk.RoleAssistant,
		Content:   choice.Content,
		ToolCalls: choice.ToolCalls,
	}

	updated := req.Conversation.Clone()
	updated.Append(assistantMsg)

	result := &StepResult{
		Response:            assistantMsg,
		Usage:               resp.Usage,
		UpdatedConversation: updated,
	}
	if len(choice.ToolCalls) > 0 {
		result.State = StateToolCallsNeeded
		result.ToolCalls = choice.ToolCalls
	} else {
		result.State = StateTextResponse
	}
	return result, nil
}

// ExecuteToolCalls executes a batch of tool calls sequentially and returns
// the tool messages in call order, appended to the transcript. Individual
// tool faults become structured results; the batch itself only fails on
// context cancellation.
func (s *Service) ExecuteToolCalls(ctx context.Context, req ToolExecutionRequest, emitter *EventEmitter) (*ToolExecutionResult, error) {
	if req.Conversation == nil {
		return nil, ErrConversationRequired
	}

	results, err := s.executeTools(ctx, req.Conversation.ID, req.Toolbox, req.ToolCalls, emitter)
	if err != nil {
		return nil, err
	}

	updated := req.Conversation.Clone()
	for _, msg := range results {
		updated.Append(msg)
	}

	return &ToolExecutionResult{
		State:               StateToolCallsCompleted,
		ToolResults:         results,
		UpdatedConversation: updated,
	}, nil
}
