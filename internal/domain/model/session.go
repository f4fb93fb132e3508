package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"ai-chat-service/internal/domain"
)

// Session is the aggregate root for one conversation. Messages is an
// ordered, append-only list (insertion order = chronological order);
// all mutation flows through AddMessage and Rename.
type Session struct {
	ID        string
	Title     string
	Messages  []Message
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewSession(title string) (*Session, error) {
	if strings.TrimSpace(title) == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Title:     title,
		Messages:  make([]Message, 0, 8),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// RestoreSession rehydrates a session from storage without validation.
func RestoreSession(id, title string, createdAt, updatedAt time.Time, messages []Message) *Session {
	return &Session{
		ID:        id,
		Title:     title,
		Messages:  messages,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// AddMessage appends a message and refreshes UpdatedAt. The message must
// already be bound to this session.
func (s *Session) AddMessage(m *Message) error {
	if m.SessionID != s.ID {
		return domain.ErrSessionMismatch
	}
	s.Messages = append(s.Messages, *m)
	s.touch()
	return nil
}

// Rename updates the session title and refreshes UpdatedAt.
func (s *Session) Rename(title string) error {
	if strings.TrimSpace(title) == "" {
		return domain.ErrInvalidArgument
	}
	s.Title = title
	s.touch()
	return nil
}

// touch keeps UpdatedAt monotonically non-decreasing.
func (s *Session) touch() {
	if now := time.Now(); now.After(s.UpdatedAt) {
		s.UpdatedAt = now
	}
}
