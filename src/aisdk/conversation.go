package aisdk

import (
	"sync"
	"time"
)

// Conversation is the ordered, append-only transcript replayed to the model
// on every request. It is the sole carrier of conversational context: no
// hidden server-side state exists beyond it.
type Conversation struct {
	ID           string
	SystemPrompt string
	Messages     []*Message
	CreatedAt    time.Time
	TurnCount    int
	mu           sync.Mutex
}

// NewConversation creates a transcript seeded with the system instruction.
func NewConversation(id, systemPrompt string) *Conversation {
	c := &Conversation{
		ID:           id,
		SystemPrompt: systemPrompt,
		CreatedAt:    time.Now(),
	}
	if systemPrompt != "" {
		c.Messages = append(c.Messages, &Message{Role: RoleSystem, Content: systemPrompt})
	}
	return c
}

// Append adds a message to the end of the transcript. Messages are never
// mutated or reordered once appended.
func (c *Conversation) Append(msg *Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	c.Messages = append(c.Messages, msg)
}

// Last returns the most recent message, or nil for an empty transcript.
func (c *Conversation) Last() *Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// Clone returns a shallow copy with its own message slice, so a loop
// iteration can build an updated transcript without aliasing the original.
func (c *Conversation) Clone() *Conversation {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := &Conversation{
		ID:           c.ID,
		SystemPrompt: c.SystemPrompt,
		CreatedAt:    c.CreatedAt,
		TurnCount:    c.TurnCount,
		Messages:     make([]*Message, len(c.Messages)),
	}
	copy(out.Messages, c.Messages)
	return out
}

// UnresolvedToolCalls returns the ids of tool calls in the transcript that
// have no matching tool message yet. A consistent transcript returns none
// between turns.
func (c *Conversation) UnresolvedToolCalls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	resolved := make(map[string]bool)
	for _, msg := range c.Messages {
		if msg.Role == RoleTool && msg.ToolCallID != "" {
			resolved[msg.ToolCallID] = true
		}
	}
	var pending []string
	for _, msg := range c.Messages {
		if msg.Role != RoleAssistant {
			continue
		}
		for _, call := range msg.ToolCalls {
			if !resolved[call.ID] {
				pending = append(pending, call.ID)
			}
		}
	}
	return pending
}
