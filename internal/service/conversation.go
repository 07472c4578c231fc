package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/voyago/tripagent/internal/domain"
)

const defaultHistoryLimit = 10

// EnsureConversation resolves the conversation for a turn. An empty ID mints
// a fresh conversation; a known ID resumes it. Unknown non-empty IDs are
// adopted as-is so clients may bring their own identifiers.
func (s *Service) EnsureConversation(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	if conversationID == "" {
		conversationID = uuid.New().String()
	}
	conv, err := s.store.GetOrCreateConversation(ctx, conversationID, DefaultUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve conversation: %w", err)
	}
	return conv, nil
}

// AppendMessage persists one message at the end of a conversation.
func (s *Service) AppendMessage(ctx context.Context, conversationID, role, content string) (*domain.Message, error) {
	msg := &domain.Message{
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      time.Now(),
	}
	if err := s.store.AppendMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to append message: %w", err)
	}
	return msg, nil
}

// Context returns the bounded recent history of a conversation in
// chronological order. Only the newest messages survive the cut; the head of
// a long conversation is dropped, never the tail.
func (s *Service) Context(ctx context.Context, conversationID string) ([]domain.Message, error) {
	limit := s.config.HistoryLimit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.store.GetContext(ctx, conversationID, limit)
}

// ListConversations lists the default user's conversations, newest first.
func (s *Service) ListConversations(ctx context.Context) ([]domain.Conversation, error) {
	return s.store.ListConversations(ctx, DefaultUserID)
}

// ConversationMessages returns the message history of a conversation in
// chronological order. limit <= 0 returns everything; otherwise the newest
// limit messages.
func (s *Service) ConversationMessages(ctx context.Context, conversationID string, limit int) ([]domain.Message, error) {
	conv, err := s.store.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, fmt.Errorf("conversation %s not found", conversationID)
	}
	return s.store.GetContext(ctx, conversationID, limit)
}

// EnsureRoadmap returns the default user's roadmap, creating it on first use.
// Tool adapters write their findings against this roadmap.
func (s *Service) EnsureRoadmap(ctx context.Context) (*domain.Roadmap, error) {
	roadmap, err := s.store.GetOrCreateRoadmap(ctx, DefaultUserID, "Trip for default user")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve roadmap: %w", err)
	}
	return roadmap, nil
}
