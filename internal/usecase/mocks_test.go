//go:build !integration

package usecase

import (
	"context"
	"sync"

	"ai-chat-service/internal/domain"
	"ai-chat-service/internal/domain/model"
	"ai-chat-service/internal/domain/ports/adapter"
	"ai-chat-service/internal/domain/ports/repository"
)

// memSessionRepo is a small in-memory implementation used by unit tests.
// It stores deep copies so that only saved state is visible, mirroring a
// real store's round-trip behaviour.
type memSessionRepo struct {
	mu        sync.Mutex
	byID      map[string]*model.Session
	saveCalls int
	saveErr   error // simulate save failures
	failAfter int   // when > 0, saves beyond this count fail with saveErr
}

var _ repository.SessionRepository = (*memSessionRepo)(nil)

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{byID: map[string]*model.Session{}}
}

func cloneSession(s *model.Session) *model.Session {
	cp := *s
	cp.Messages = append([]model.Message(nil), s.Messages...)
	return &cp
}

func (m *memSessionRepo) Save(ctx context.Context, qx any, s *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveCalls++
	if m.saveErr != nil && (m.failAfter == 0 || m.saveCalls > m.failAfter) {
		return m.saveErr
	}
	m.byID[s.ID] = cloneSession(s)
	return nil
}

func (m *memSessionRepo) FindByID(ctx context.Context, qx any, id string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s := m.byID[id]; s != nil {
		return cloneSession(s), nil
	}
	return nil, domain.ErrNotFound
}

func (m *memSessionRepo) FindAll(ctx context.Context, qx any) ([]*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Session, 0, len(m.byID))
	for _, s := range m.byID {
		out = append(out, cloneSession(s))
	}
	// updated_at descending, insertion-stable enough for tests
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].UpdatedAt.After(out[i].UpdatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (m *memSessionRepo) Delete(ctx context.Context, qx any, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memSessionRepo) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveCalls
}

// fakeResponder answers with a fixed reply or a fixed error, and records
// what it was asked.
type fakeResponder struct {
	mu          sync.Mutex
	reply       string
	err         error
	calls       int
	lastHistory []adapter.Message
	lastInput   string
}

var _ adapter.AIResponder = (*fakeResponder)(nil)

func (f *fakeResponder) GenerateResponse(ctx context.Context, history []adapter.Message, input string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastHistory = append([]adapter.Message(nil), history...)
	f.lastInput = input
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}
