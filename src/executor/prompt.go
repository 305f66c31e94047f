package executor

import (
	"encoding/json"

	"github.com/autoreturn/autoreturn/src/aisdk"
	"github.com/autoreturn/autoreturn/src/storage"
)

// buildAISDKConversation creates an aisdk.Conversation from storage messages.
// The system instruction always heads the transcript; persisted messages are
// replayed after it in insertion order.
func buildAISDKConversation(conversation *storage.Conversation, messages []storage.Message, systemPrompt string) *aisdk.Conversation {
	conv := aisdk.NewConversation(conversation.ID, systemPrompt)
	conv.CreatedAt = conversation.CreatedAt

	for _, msg := range messages {
		m := &aisdk.Message{
			Role:       msg.Role,
			Content:    msg.Content,
			Name:       msg.ToolName,
			ToolCallID: msg.ToolCallID,
			CreatedAt:  msg.CreatedAt,
		}
		if msg.ToolCalls != nil && *msg.ToolCalls != "" {
			var toolCalls []aisdk.ToolCall
			if err := json.Unmarshal([]byte(*msg.ToolCalls), &toolCalls); err == nil {
				m.ToolCalls = toolCalls
			}
		}
		conv.Append(m)
	}

	return conv
}
