package executor

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoreturn/autoreturn/src/aisdk"
	"github.com/autoreturn/autoreturn/src/returnsagent"
	"github.com/autoreturn/autoreturn/src/storage"
)

// scriptedModel replays canned responses in order, recording every request.
type scriptedModel struct {
	responses []*aisdk.ChatCompletionResponse
	errs      []error
	requests  []*aisdk.ChatCompletionRequest
}

func (m *scriptedModel) CreateChatCompletion(ctx context.Context, req *aisdk.ChatCompletionRequest) (*aisdk.ChatCompletionResponse, error) {
	m.requests = append(m.requests, req)
	i := len(m.requests) - 1
	if i < len(m.errs) && m.errs[i] != nil {
		return nil, m.errs[i]
	}
	if i >= len(m.responses) {
		return textResponse("out of script"), nil
	}
	return m.responses[i], nil
}

func (m *scriptedModel) GetModelInfo() *aisdk.ModelInfo {
	return &aisdk.ModelInfo{ID: "scripted", Name: "scripted", SupportsImages: true}
}

func textResponse(content string) *aisdk.ChatCompletionResponse {
	return &aisdk.ChatCompletionResponse{
		Choices: []aisdk.Choice{{
			Message:      aisdk.Message{Role: aisdk.RoleAssistant, Content: content},
			FinishReason: "stop",
		}},
	}
}

func toolCallResponse(calls ...aisdk.ToolCall) *aisdk.ChatCompletionResponse {
	return &aisdk.ChatCompletionResponse{
		Choices: []aisdk.Choice{{
			Message:      aisdk.Message{Role: aisdk.RoleAssistant, ToolCalls: calls},
			FinishReason: "tool_calls",
		}},
	}
}

func call(id, name, args string) aisdk.ToolCall {
	return aisdk.ToolCall{
		ID:   id,
		Type: "function",
		Function: aisdk.FunctionCall{
			Name:      name,
			Arguments: json.RawMessage(args),
		},
	}
}

func newTestService(t *testing.T) (*Service, storage.ExecQuerier) {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.DB().Close() })
	require.NoError(t, storage.Seed(context.Background(), db.DB()))

	svc := NewService(ServiceConfig{
		Database:     db.DB(),
		SystemPrompt: returnsagent.SystemPrompt(),
		MaxTurns:     8,
	})
	return svc, db.DB()
}

func startConversation(t *testing.T, svc *Service) (*storage.Conversation, *aisdk.Conversation) {
	t.Helper()
	ctx := context.Background()
	stored, err := svc.GetOrCreateConversation(ctx, storage.DemoUserID, false)
	require.NoError(t, err)
	conv, err := svc.BuildConversationFromDB(ctx, stored)
	require.NoError(t, err)
	return stored, conv
}

func TestRunTurnTextOnly(t *testing.T) {
	svc, db := newTestService(t)
	_, conv := startConversation(t, svc)
	model := &scriptedModel{responses: []*aisdk.ChatCompletionResponse{
		textResponse("Hello! How can I help with your order today?"),
	}}

	result, err := svc.RunTurn(context.Background(), TurnRequest{
		Conversation: conv,
		Model:        model,
		UserID:       storage.DemoUserID,
		UserText:     "hi",
	})
	require.NoError(t, err)
	assert.Equal(t, ReasonTextResponse, result.Reason)
	assert.Equal(t, 1, result.Iterations)
	assert.Equal(t, "Hello! How can I help with your order today?", result.FinalMessage.Content)

	// System prompt heads the request transcript.
	require.NotEmpty(t, model.requests)
	first := model.requests[0].Messages[0]
	assert.Equal(t, aisdk.RoleSystem, first.Role)
	assert.Contains(t, first.Content, "AutoReturn")

	// All eleven tools were declared.
	assert.Len(t, model.requests[0].Tools, 11)
	assert.Equal(t, "auto", model.requests[0].ToolChoice)

	// Both messages were persisted.
	msgs, err := storage.GetMessagesByConversationID(context.Background(), db, result.Conversation.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, aisdk.RoleUser, msgs[0].Role)
	assert.Equal(t, aisdk.RoleAssistant, msgs[1].Role)
}

func TestRunTurnToolRound(t *testing.T) {
	svc, db := newTestService(t)
	_, conv := startConversation(t, svc)
	model := &scriptedModel{responses: []*aisdk.ChatCompletionResponse{
		toolCallResponse(
			call("call_1", "analyze_text", `{"text":"I want to return my hoodie"}`),
			call("call_2", "get_user_orders", `{}`),
		),
		textResponse("I can see your recent orders. Which one is the hoodie from?"),
	}}

	result, err := svc.RunTurn(context.Background(), TurnRequest{
		Conversation: conv,
		Model:        model,
		UserID:       storage.DemoUserID,
		UserText:     "I want to return my hoodie",
	})
	require.NoError(t, err)
	assert.Equal(t, ReasonTextResponse, result.Reason)
	assert.Equal(t, 2, result.Iterations)

	// The second request carries assistant tool calls followed by one tool
	// message per call, in call order.
	second := model.requests[1].Messages
	n := len(second)
	require.GreaterOrEqual(t, n, 4)
	assert.Equal(t, aisdk.RoleAssistant, second[n-3].Role)
	require.Len(t, second[n-3].ToolCalls, 2)
	assert.Equal(t, "call_1", second[n-2].ToolCallID)
	assert.Equal(t, "analyze_text", second[n-2].Name)
	assert.Equal(t, "call_2", second[n-1].ToolCallID)
	assert.Equal(t, "get_user_orders", second[n-1].Name)

	var nlp struct {
		Intent string `json:"intent"`
	}
	require.NoError(t, json.Unmarshal([]byte(second[n-2].Content), &nlp))
	assert.Equal(t, "return_request", nlp.Intent)

	// No unresolved tool calls remain.
	assert.Empty(t, result.Conversation.UnresolvedToolCalls())

	// Persisted transcript: user, assistant(tool calls), 2 tool, assistant.
	msgs, err := storage.GetMessagesByConversationID(context.Background(), db, result.Conversation.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 5)
	assert.NotNil(t, msgs[1].ToolCalls)
	assert.Equal(t, aisdk.RoleTool, msgs[2].Role)
	assert.Equal(t, aisdk.RoleTool, msgs[3].Role)
}

func TestRunTurnUnknownToolGetsGenericSuccess(t *testing.T) {
	svc, _ := newTestService(t)
	_, conv := startConversation(t, svc)
	model := &scriptedModel{responses: []*aisdk.ChatCompletionResponse{
		toolCallResponse(call("call_1", "escalate_to_human", `{"priority":"high"}`)),
		textResponse("Done."),
	}}

	result, err := svc.RunTurn(context.Background(), TurnRequest{
		Conversation: conv,
		Model:        model,
		UserID:       storage.DemoUserID,
		UserText:     "please escalate",
	})
	require.NoError(t, err)
	assert.Equal(t, ReasonTextResponse, result.Reason)

	second := model.requests[1].Messages
	toolMsg := second[len(second)-1]
	assert.Equal(t, aisdk.RoleTool, toolMsg.Role)
	assert.JSONEq(t, `{"result":"Function executed successfully on backend."}`, toolMsg.Content)
}

func TestRunTurnTransportFailure(t *testing.T) {
	svc, db := newTestService(t)
	_, conv := startConversation(t, svc)
	model := &scriptedModel{errs: []error{errors.New("connection refused")}}

	result, err := svc.RunTurn(context.Background(), TurnRequest{
		Conversation: conv,
		Model:        model,
		UserID:       storage.DemoUserID,
		UserText:     "hi",
	})
	require.NoError(t, err)
	assert.Equal(t, ReasonTransportError, result.Reason)
	assert.Equal(t, transportFailureReply, result.FinalMessage.Content)
	assert.Error(t, result.Err)

	// No retry, transcript closed with the fallback reply.
	assert.Len(t, model.requests, 1)
	msgs, err := storage.GetMessagesByConversationID(context.Background(), db, result.Conversation.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, transportFailureReply, msgs[1].Content)
	assert.Empty(t, result.Conversation.UnresolvedToolCalls())
}

func TestRunTurnMaxTurnsExceeded(t *testing.T) {
	svc, _ := newTestService(t)
	svc.maxTurns = 3
	_, conv := startConversation(t, svc)

	// The model never stops asking for tools.
	var responses []*aisdk.ChatCompletionResponse
	for i := 0; i < 5; i++ {
		responses = append(responses, toolCallResponse(call("call_1", "analyze_text", `{"text":"again"}`)))
	}
	model := &scriptedModel{responses: responses}

	result, err := svc.RunTurn(context.Background(), TurnRequest{
		Conversation: conv,
		Model:        model,
		UserID:       storage.DemoUserID,
		UserText:     "loop forever",
	})
	require.NoError(t, err)
	assert.Equal(t, ReasonMaxTurns, result.Reason)
	assert.Equal(t, 3, result.Iterations)
	assert.ErrorIs(t, result.Err, ErrMaxTurnsExceeded)
	assert.Len(t, model.requests, 3)
	assert.Equal(t, maxTurnsReply, result.FinalMessage.Content)
	assert.Empty(t, result.Conversation.UnresolvedToolCalls())
}

func TestRunTurnEmitsVisionProgressBeforeResult(t *testing.T) {
	svc, _ := newTestService(t)
	_, conv := startConversation(t, svc)
	model := &scriptedModel{responses: []*aisdk.ChatCompletionResponse{
		toolCallResponse(call("call_1", "run_vision_analysis", `{"media_type":"image","defect_class":"cracked","severity_score":0.9}`)),
		textResponse("The screen damage is confirmed."),
	}}

	var order []EventType
	sink := &recordingSink{onEvent: func(e ConversationEvent) {
		order = append(order, e.Type())
	}}

	result, err := svc.RunTurn(context.Background(), TurnRequest{
		Conversation: conv,
		Model:        model,
		UserID:       storage.DemoUserID,
		UserText:     "my phone screen is cracked",
		Sink:         sink,
	})
	require.NoError(t, err)
	assert.Equal(t, ReasonTextResponse, result.Reason)

	progressAt, responseAt := -1, -1
	for i, et := range order {
		if et == EventToolProgress && progressAt < 0 {
			progressAt = i
		}
		if et == EventToolCallResponse && responseAt < 0 {
			responseAt = i
		}
	}
	require.GreaterOrEqual(t, progressAt, 0, "expected a tool progress event")
	require.GreaterOrEqual(t, responseAt, 0)
	assert.Less(t, progressAt, responseAt, "analysis card must precede the tool result")
}

func TestStepRequiresModel(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Step(context.Background(), StepRequest{Conversation: aisdk.NewConversation("c1", "")})
	assert.ErrorIs(t, err, ErrModelClientRequired)
}

func TestGetOrCreateConversationResume(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.GetOrCreateConversation(ctx, storage.DemoUserID, false)
	require.NoError(t, err)

	resumed, err := svc.GetOrCreateConversation(ctx, storage.DemoUserID, true)
	require.NoError(t, err)
	assert.Equal(t, first.ID, resumed.ID)

	fresh, err := svc.GetOrCreateConversation(ctx, storage.DemoUserID, false)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, fresh.ID)
}

func TestBuildConversationFromDBReplaysToolCalls(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	stored, err := svc.GetOrCreateConversation(ctx, storage.DemoUserID, false)
	require.NoError(t, err)

	require.NoError(t, svc.SaveUserMessage(ctx, stored.ID, "check my order"))
	require.NoError(t, svc.saveAssistantMessage(ctx, stored.ID, &aisdk.Message{
		Role:      aisdk.RoleAssistant,
		ToolCalls: []aisdk.ToolCall{call("call_1", "get_user_orders", `{}`)},
	}))
	require.NoError(t, svc.saveToolMessage(ctx, stored.ID, &aisdk.Message{
		Role:       aisdk.RoleTool,
		Content:    `{"orders":[]}`,
		Name:       "get_user_orders",
		ToolCallID: "call_1",
	}))

	conv, err := svc.BuildConversationFromDB(ctx, stored)
	require.NoError(t, err)
	require.Len(t, conv.Messages, 4) // system + 3 replayed
	assert.Equal(t, aisdk.RoleSystem, conv.Messages[0].Role)
	require.Len(t, conv.Messages[2].ToolCalls, 1)
	assert.Equal(t, "get_user_orders", conv.Messages[2].ToolCalls[0].Function.Name)
	assert.Equal(t, "call_1", conv.Messages[3].ToolCallID)
	assert.Empty(t, conv.UnresolvedToolCalls())
}

// recordingSink captures events synchronously for assertions.
type recordingSink struct {
	onEvent func(ConversationEvent)
}

func (s *recordingSink) Send(event ConversationEvent) error {
	s.onEvent(event)
	return nil
}

func (s *recordingSink) Close() error { return nil }
