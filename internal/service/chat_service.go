package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"root_tycoon/internal/clock"
	"root_tycoon/internal/domain"

	"github.com/google/uuid"
)

const (
	MaxChatMessageLength = 500
	ChatHistoryLimit     = 50
)

type ChatService struct {
	messages ChatStore
	users    UserStore
	clock    clock.Clock
}

func NewChatService(messages ChatStore, users UserStore, clk clock.Clock) *ChatService {
	return &ChatService{messages: messages, users: users, clock: clk}
}

// Post stores a trimmed message. Empty or overlong text is rejected.
func (s *ChatService) Post(ctx context.Context, userID int64, text string) (*domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" || utf8.RuneCountInString(text) > MaxChatMessageLength {
		return nil, ErrInvalidInput
	}

	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	m := &domain.ChatMessage{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  u.Username,
		Text:      text,
		CreatedAt: s.clock.Now(),
	}
	if err := s.messages.CreateMessage(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// History returns the latest messages, oldest first.
func (s *ChatService) History(ctx context.Context) ([]domain.ChatMessage, error) {
	msgs, err := s.messages.RecentMessages(ctx, ChatHistoryLimit)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []domain.ChatMessage{}
	}
	return msgs, nil
}
