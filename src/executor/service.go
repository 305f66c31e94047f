package executor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/autoreturn/autoreturn/src/aisdk"
	"github.com/autoreturn/autoreturn/src/storage"
)

// Service runs support turns with all necessary dependencies.
type Service struct {
	database     storage.ExecQuerier
	logger       *slog.Logger
	systemPrompt string
	maxTurns     int
}

// ServiceConfig holds configuration for creating a new Service.
type ServiceConfig struct {
	Database     storage.ExecQuerier
	SystemPrompt string
	MaxTurns     int
	Logger       *slog.Logger
}

// NewService creates a new turn service.
func NewService(config ServiceConfig) *Service {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.MaxTurns <= 0 {
		config.MaxTurns = 8
	}
	return &Service{
		database:     config.Database,
		logger:       config.Logger,
		systemPrompt: config.SystemPrompt,
		maxTurns:     config.MaxTurns,
	}
}

// MaxTurns reports the per-turn iteration bound.
func (s *Service) MaxTurns() int { return s.maxTurns }

// GetOrCreateConversation resumes the user's latest conversation when resume
// is set, otherwise starts a fresh one.
func (s *Service) GetOrCreateConversation(ctx context.Context, userID string, resume bool) (*storage.Conversation, error) {
	if resume {
		conversation, err := storage.GetLatestConversation(ctx, s.database, userID)
		if err != nil {
			return nil, err
		}
		if conversation != nil {
			return conversation, nil
		}
		// No conversations exist yet, fall through and create one.
	}

	conversation := &storage.Conversation{
		UserID: userID,
		Title:  "Support Session",
	}
	if err := storage.CreateConversation(ctx, s.database, conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

// GetConversation loads a specific conversation for resuming.
func (s *Service) GetConversation(ctx context.Context, conversationID string) (*storage.Conversation, error) {
	conversation, err := storage.GetConversationByID(ctx, s.database, conversationID)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, fmt.Errorf("%w: %s", ErrConversationNotFound, conversationID)
	}
	return conversation, nil
}

// BuildConversationFromDB replays persisted messages into an in-memory
// transcript headed by the system instruction.
func (s *Service) BuildConversationFromDB(ctx context.Context, conversation *storage.Conversation) (*aisdk.Conversation, error) {
	messages, err := storage.GetMessagesByConversationID(ctx, s.database, conversation.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	return buildAISDKConversation(conversation, messages, s.systemPrompt), nil
}

// SaveUserMessage persists a user message.
func (s *Service) SaveUserMessage(ctx context.Context, conversationID, content string) error {
	msg := &storage.Message{
		ConversationID: conversationID,
		Role:           aisdk.RoleUser,
		Content:        content,
	}
	if err := storage.CreateMessage(ctx, s.database, msg); err != nil {
		return err
	}
	return storage.TouchConversation(ctx, s.database, conversationID)
}
