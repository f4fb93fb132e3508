package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"ai-chat-service/internal/domain"
	"ai-chat-service/internal/domain/model"
	"ai-chat-service/internal/domain/ports/repository"
	"ai-chat-service/internal/infra/redis"
)

// SessionRepo is the default session repository. Message rows are
// append-only: once stored they are never rewritten.
var _ repository.SessionRepository = (*SessionRepo)(nil)

type SessionRepo struct {
	pool  *pgxpool.Pool
	cache *redis.SessionCache
}

func NewSessionRepo(pool *pgxpool.Pool, cache *redis.SessionCache) *SessionRepo {
	return &SessionRepo{pool: pool, cache: cache}
}

func (r *SessionRepo) Save(ctx context.Context, qx any, session *model.Session) error {
	const qs = `
INSERT INTO sessions (id, title, created_at, updated_at)
VALUES ($1,$2,$3,$4)
ON CONFLICT (id) DO UPDATE SET
  title = EXCLUDED.title,
  updated_at = EXCLUDED.updated_at;`
	if err := r.exec(ctx, qx, qs, session.ID, session.Title, session.CreatedAt, session.UpdatedAt); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	const qm = `
INSERT INTO messages (id, session_id, content, role, created_at)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (id) DO NOTHING;`
	for i := range session.Messages {
		m := &session.Messages[i]
		if err := r.exec(ctx, qx, qm, m.ID, m.SessionID, m.Content, string(m.Role), m.CreatedAt); err != nil {
			return fmt.Errorf("save message: %w", err)
		}
	}

	// Cache latest aggregate state, best-effort.
	if r.cache != nil {
		_ = r.cache.Store(ctx, session)
	}
	return nil
}

func (r *SessionRepo) FindByID(ctx context.Context, qx any, id string) (*model.Session, error) {
	// Serve from cache when reading outside a transaction. Saves and
	// deletes keep the cached aggregate in sync, so a hit is authoritative.
	if r.cache != nil && qx == nil {
		if s, err := r.cache.Get(ctx, id); err == nil && s != nil {
			_ = r.cache.Extend(ctx, id)
			return s, nil
		}
	}

	const qs = `SELECT id, title, created_at, updated_at FROM sessions WHERE id=$1;`
	row := r.pickRow(ctx, qx, qs, id)
	var (
		sid, title           string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&sid, &title, &createdAt, &updatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}

	const qm = `SELECT id, content, role, created_at FROM messages WHERE session_id=$1 ORDER BY created_at ASC;`
	rows, err := r.queryRows(ctx, qx, qm, id)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()
	var msgs []model.Message
	for rows.Next() {
		var (
			mid, content, role string
			ts                 time.Time
		)
		if err := rows.Scan(&mid, &content, &role, &ts); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, model.RestoreMessage(mid, sid, content, model.MessageRole(role), ts))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}

	s := model.RestoreSession(sid, title, createdAt, updatedAt, msgs)
	if r.cache != nil {
		_ = r.cache.Store(ctx, s)
	}
	return s, nil
}

func (r *SessionRepo) FindAll(ctx context.Context, qx any) ([]*model.Session, error) {
	const q = `SELECT id FROM sessions ORDER BY updated_at DESC;`
	rows, err := r.queryRows(ctx, qx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]*model.Session, 0, len(ids))
	for _, id := range ids {
		s, err := r.FindByID(ctx, qx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *SessionRepo) Delete(ctx context.Context, qx any, id string) error {
	// messages cascade via FK
	const q = `DELETE FROM sessions WHERE id = $1;`
	if err := r.exec(ctx, qx, q, id); err != nil {
		return err
	}
	if r.cache != nil {
		_ = r.cache.Delete(ctx, id)
	}
	return nil
}

func (r *SessionRepo) exec(ctx context.Context, qx any, sql string, args ...any) error {
	var err error
	switch v := qx.(type) {
	case pgx.Tx:
		_, err = v.Exec(ctx, sql, args...)
	case *pgxpool.Conn:
		_, err = v.Exec(ctx, sql, args...)
	default:
		_, err = r.pool.Exec(ctx, sql, args...)
	}
	return err
}

func (r *SessionRepo) pickRow(ctx context.Context, qx any, sql string, args ...any) pgx.Row {
	switch v := qx.(type) {
	case pgx.Tx:
		return v.QueryRow(ctx, sql, args...)
	case *pgxpool.Conn:
		return v.QueryRow(ctx, sql, args...)
	default:
		return r.pool.QueryRow(ctx, sql, args...)
	}
}

func (r *SessionRepo) queryRows(ctx context.Context, qx any, sql string, args ...any) (pgx.Rows, error) {
	switch v := qx.(type) {
	case pgx.Tx:
		return v.Query(ctx, sql, args...)
	case *pgxpool.Conn:
		return v.Query(ctx, sql, args...)
	default:
		return r.pool.Query(ctx, sql, args...)
	}
}
