package repository

import (
	"context"

	"ai-chat-service/internal/domain/model"
)

// SessionRepository persists the Session aggregate.
//
// Save has create-or-update semantics for the session row and
// insert-if-absent semantics for message rows: messages are never
// rewritten once stored.
//
// The `qx any` parameter carries an optional transaction handle
// (e.g. pgx.Tx); implementations MUST gracefully accept nil for the
// non-transactional path.
type SessionRepository interface {
	Save(ctx context.Context, qx any, session *model.Session) error
	// FindByID returns the full aggregate with messages in creation order,
	// or domain.ErrNotFound.
	FindByID(ctx context.Context, qx any, id string) (*model.Session, error)
	// FindAll returns all sessions ordered by most-recently-updated first.
	FindAll(ctx context.Context, qx any) ([]*model.Session, error)
	// Delete removes the session and its messages.
	Delete(ctx context.Context, qx any, id string) error
}
