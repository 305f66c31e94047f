package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
)

// GetConversationByID retrieves a conversation by id, or nil if not found.
func GetConversationByID(ctx context.Context, db sqlscan.Querier, conversationID string) (*Conversation, error) {
	query := `SELECT id, user_id, title, created_at, updated_at FROM conversations WHERE id = ?`
	var conv Conversation
	err := sqlscan.Get(ctx, db, &conv, query, conversationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

// GetLatestConversation retrieves the user's most recently updated
// conversation, or nil if none exist.
func GetLatestConversation(ctx context.Context, db sqlscan.Querier, userID string) (*Conversation, error) {
	query := `SELECT id, user_id, title, created_at, updated_at FROM conversations WHERE user_id = ? ORDER BY updated_at DESC LIMIT 1`
	var conv Conversation
	err := sqlscan.Get(ctx, db, &conv, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

// CreateConversation creates a new conversation.
func CreateConversation(ctx context.Context, db Execer, conversation *Conversation) error {
	if conversation.ID == "" {
		conversation.ID = GenerateID()
	}
	now := time.Now()
	if conversation.CreatedAt.IsZero() {
		conversation.CreatedAt = now
	}
	if conversation.UpdatedAt.IsZero() {
		conversation.UpdatedAt = now
	}
	query := `INSERT INTO conversations (id, user_id, title, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query, conversation.ID, conversation.UserID, conversation.Title, conversation.CreatedAt, conversation.UpdatedAt)
	return err
}

// TouchConversation bumps a conversation's updated_at.
func TouchConversation(ctx context.Context, db Execer, conversationID string) error {
	query := `UPDATE conversations SET updated_at = ? WHERE id = ?`
	_, err := db.ExecContext(ctx, query, time.Now(), conversationID)
	return err
}

// GetMessagesByConversationID returns a conversation's messages in
// insertion order.
func GetMessagesByConversationID(ctx context.Context, db sqlscan.Querier, conversationID string) ([]Message, error) {
	query := `SELECT id, conversation_id, role, content, tool_call_id, tool_name, tool_calls, created_at FROM messages WHERE conversation_id = ? ORDER BY created_at, id`
	var messages []Message
	if err := sqlscan.Select(ctx, db, &messages, query, conversationID); err != nil {
		return nil, err
	}
	return messages, nil
}

// CreateMessage appends a message to a conversation's persisted transcript.
func CreateMessage(ctx context.Context, db Execer, message *Message) error {
	if message.ID == "" {
		message.ID = GenerateID()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	query := `INSERT INTO messages (id, conversation_id, role, content, tool_call_id, tool_name, tool_calls, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query, message.ID, message.ConversationID, message.Role, message.Content, message.ToolCallID, message.ToolName, message.ToolCalls, message.CreatedAt)
	return err
}

// CreateToolExecution records a tool call audit entry.
func CreateToolExecution(ctx context.Context, db Execer, exec *ToolExecution) error {
	if exec.ID == "" {
		exec.ID = GenerateID()
	}
	if exec.CreatedAt.IsZero() {
		exec.CreatedAt = time.Now()
	}
	query := `INSERT INTO tool_executions (id, conversation_id, tool_name, input, output, error, duration_ms, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query, exec.ID, exec.ConversationID, exec.ToolName, exec.Input, exec.Output, exec.Error, exec.DurationMs, exec.CreatedAt)
	return err
}
