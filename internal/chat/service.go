package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Responder produces the assistant's reply to a user message given the prior
// conversation.
type Responder interface {
	SendMessage(ctx context.Context, message string, history []Message) (string, error)
}

// Service orchestrates the chat conversation: it persists both sides of every
// exchange and keeps the log bounded to MaxHistory messages.
type Service struct {
	repo      *Repository
	responder Responder
}

// NewService creates a new Service.
func NewService(repo *Repository, responder Responder) *Service {
	return &Service{
		repo:      repo,
		responder: responder,
	}
}

// EnsureWelcome seeds the welcome message into an empty conversation.
func (s *Service) EnsureWelcome(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return s.repo.Insert(ctx, Message{
		ID:        uuid.NewString(),
		Role:      RoleModel,
		Text:      WelcomeText,
		Timestamp: time.Now(),
	})
}

// Send records the user's message, asks the responder for a reply using the
// conversation so far, and records the reply. The user's message stays in the
// log even when the responder fails, so a retry carries the full context.
func (s *Service) Send(ctx context.Context, text string) (*Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("message cannot be empty")
	}
	if len(text) > MaxMessageLength {
		return nil, fmt.Errorf("message exceeds %d characters", MaxMessageLength)
	}

	history, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	userMsg := Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Text:      text,
		Timestamp: time.Now(),
	}
	if err := s.repo.Insert(ctx, userMsg); err != nil {
		return nil, err
	}

	reply, err := s.responder.SendMessage(ctx, text, history)
	if err != nil {
		return nil, fmt.Errorf("failed to get chat response: %w", err)
	}

	modelMsg := Message{
		ID:        uuid.NewString(),
		Role:      RoleModel,
		Text:      reply,
		Timestamp: time.Now(),
	}
	if err := s.repo.Insert(ctx, modelMsg); err != nil {
		return nil, err
	}

	if err := s.repo.DeleteOldest(ctx, MaxHistory); err != nil {
		return nil, err
	}
	return &modelMsg, nil
}

// History returns the conversation, oldest first.
func (s *Service) History(ctx context.Context) ([]Message, error) {
	return s.repo.GetAll(ctx)
}

// Clear wipes the conversation and re-seeds the welcome message.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return err
	}
	return s.EnsureWelcome(ctx)
}
