package executor

import (
	"context"
	"encoding/json"
	"time"

	"github.com/autoreturn/autoreturn/src/agent"
	"github.com/autoreturn/autoreturn/src/aisdk"
	"github.com/autoreturn/autoreturn/src/storage"
)

// genericSuccessPayload is returned for tool names the registry does not
// know. The simulated backend treats every call it cannot route as handled,
// so the model can keep the conversation moving.
var genericSuccessPayload = []byte(`{"result":"Function executed successfully on backend."}`)

// saveAssistantMessage persists an assistant message, including any tool
// calls it carries.
func (s *Service) saveAssistantMessage(ctx context.Context, conversationID string, msg *aisdk.Message) error {
	record := &storage.Message{
		ConversationID: conversationID,
		Role:           aisdk.RoleAssistant,
		Content:        msg.Content,
	}
	if len(msg.ToolCalls) > 0 {
		raw, err := json.Marshal(msg.ToolCalls)
		if err != nil {
			return err
		}
		encoded := string(raw)
		record.ToolCalls = &encoded
	}
	return storage.CreateMessage(ctx, s.database, record)
}

// saveToolMessage persists a single tool result message.
func (s *Service) saveToolMessage(ctx context.Context, conversationID string, msg *aisdk.Message) error {
	return storage.CreateMessage(ctx, s.database, &storage.Message{
		ConversationID: conversationID,
		Role:           aisdk.RoleTool,
		Content:        msg.Content,
		ToolCallID:     msg.ToolCallID,
		ToolName:       msg.Name,
	})
}

// executeTools runs a batch of tool calls sequentially in the order the
// model emitted them, producing one tool message per call. Tool faults come
// back as structured error payloads; only context cancellation aborts the
// batch.
func (s *Service) executeTools(ctx context.Context, conversationID string, toolbox *agent.Toolbox, toolCalls []aisdk.ToolCall, emitter *EventEmitter) ([]*aisdk.Message, error) {
	results := make([]*aisdk.Message, 0, len(toolCalls))

	for i := range toolCalls {
		call := toolCalls[i]
		emitter.EmitToolCallRequest(call)
		start := time.Now()

		var content []byte
		var isError bool

		switch {
		case toolbox != nil && toolbox.HasTool(call.Function.Name):
			resp, err := toolbox.ExecuteTool(ctx, &call)
			duration := time.Since(start)
			if err != nil {
				if ctx.Err() != nil {
					emitter.EmitToolCallError(call, err, duration)
					return nil, err
				}
				// Executor-level failures still become tool results so
				// the transcript stays consistent.
				content = errorPayload(err)
				isError = true
				emitter.EmitToolCallError(call, err, duration)
			} else {
				content = resp.Content
				isError = resp.IsError
				emitter.EmitToolCallResponse(call, resp, duration)
			}
		default:
			// Unknown tool names get a generic success payload rather
			// than an error, matching the permissive backend contract.
			s.logger.Warn("model requested unknown tool",
				"tool", call.Function.Name,
				"tool_call_id", call.ID,
			)
			content = genericSuccessPayload
			emitter.EmitToolCallResponse(call, &aisdk.ToolResponse{
				Type:    "text",
				Content: genericSuccessPayload,
			}, time.Since(start))
		}

		toolMsg := &aisdk.Message{
			Role:       aisdk.RoleTool,
			Content:    string(content),
			Name:       call.Function.Name,
			ToolCallID: call.ID,
		}
		results = append(results, toolMsg)

		s.recordToolExecution(ctx, conversationID, call, content, isError, time.Since(start))
	}

	return results, nil
}

// recordToolExecution writes the audit row for one tool call. Audit failures
// are logged, not surfaced; they must not break the turn.
func (s *Service) recordToolExecution(ctx context.Context, conversationID string, call aisdk.ToolCall, output []byte, isError bool, duration time.Duration) {
	exec := &storage.ToolExecution{
		ConversationID: conversationID,
		ToolName:       call.Function.Name,
		Input:          string(call.Function.Arguments),
		Output:         string(output),
		DurationMs:     duration.Milliseconds(),
	}
	if isError {
		exec.Error = string(output)
	}
	if err := storage.CreateToolExecution(ctx, s.database, exec); err != nil {
		s.logger.Error("failed to record tool execution", "tool", call.Function.Name, "error", err)
	}
}

func errorPayload(err error) []byte {
	raw, merr := json.Marshal(map[string]string{"error": err.Error()})
	if merr != nil {
		return []byte(`{"error":"tool execution failed"}`)
	}
	return raw
}
