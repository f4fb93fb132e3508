//go:build !integration

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ai-chat-service/internal/domain/model"
	"ai-chat-service/internal/infra/redis"
)

// memRedis is an in-memory stand-in for the redis client, enough to back
// a SessionCache in unit tests.
type memRedis struct {
	data        map[string]string
	expireCalls []string
}

func newMemRedis() *memRedis {
	return &memRedis{data: map[string]string{}}
}

func (m *memRedis) Ping(context.Context) error { return nil }

func (m *memRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	switch v := value.(type) {
	case string:
		m.data[key] = v
	case []byte:
		m.data[key] = string(v)
	}
	return nil
}

func (m *memRedis) Get(_ context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", errors.New("redis: nil")
	}
	return v, nil
}

func (m *memRedis) Expire(_ context.Context, key string, _ time.Duration) error {
	m.expireCalls = append(m.expireCalls, key)
	return nil
}

func (m *memRedis) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memRedis) Close() error { return nil }

// A cached session must be served without touching Postgres: the repo
// below has no pool, so any database access would panic.
func TestSessionRepo_FindByID_CacheHitSkipsDatabase(t *testing.T) {
	ctx := context.Background()
	client := newMemRedis()
	cache := redis.NewSessionCache(client, time.Hour)

	now := time.Now().UTC().Truncate(time.Microsecond)
	msgs := []model.Message{
		model.RestoreMessage("m-1", "s-1", "hi", model.RoleUser, now),
	}
	want := model.RestoreSession("s-1", "Cached", now, now, msgs)

	data, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := client.Set(ctx, "session:s-1", data, time.Hour); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	repo := NewSessionRepo(nil, cache)
	got, err := repo.FindByID(ctx, nil, "s-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ID != want.ID || got.Title != want.Title {
		t.Errorf("got %q/%q, want %q/%q", got.ID, got.Title, want.ID, want.Title)
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "hi" {
		t.Errorf("messages not restored from cache: %+v", got.Messages)
	}
	if len(client.expireCalls) != 1 || client.expireCalls[0] != "session:s-1" {
		t.Errorf("expected TTL extension on cache hit, got %v", client.expireCalls)
	}
}

func TestSessionRepo_FindByID_TxBypassesCache(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a database access attempt")
		}
	}()

	client := newMemRedis()
	cache := redis.NewSessionCache(client, time.Hour)
	now := time.Now().UTC()
	data, _ := json.Marshal(model.RestoreSession("s-1", "Cached", now, now, nil))
	_ = client.Set(context.Background(), "session:s-1", data, time.Hour)

	// Any non-nil query handle must read through to the database even
	// when the cache holds the session.
	repo := NewSessionRepo(nil, cache)
	_, _ = repo.FindByID(context.Background(), struct{}{}, "s-1")
}
