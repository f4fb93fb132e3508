package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"ai-chat-service/internal/domain"
)

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message represents one turn of a conversation. It is immutable once
// created; nothing in the domain mutates a message after construction.
type Message struct {
	ID        string
	SessionID string
	Content   string
	Role      MessageRole
	CreatedAt time.Time
}

// NewMessage creates a message for user input or an assistant reply.
// Content must be non-empty after trimming.
func NewMessage(sessionID, content string, role MessageRole) (*Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrInvalidArgument
	}
	if role != RoleUser && role != RoleAssistant {
		return nil, domain.ErrInvalidArgument
	}
	return &Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Content:   content,
		Role:      role,
		CreatedAt: time.Now(),
	}, nil
}

// RestoreMessage rehydrates a message from storage. No validation: the
// repository is trusted to supply already-valid rows.
func RestoreMessage(id, sessionID, content string, role MessageRole, createdAt time.Time) Message {
	return Message{
		ID:        id,
		SessionID: sessionID,
		Content:   content,
		Role:      role,
		CreatedAt: createdAt,
	}
}
