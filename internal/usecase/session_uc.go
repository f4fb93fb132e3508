package usecase

import (
	"context"

	"ai-chat-service/internal/domain/model"
	"ai-chat-service/internal/domain/ports/repository"
	"ai-chat-service/internal/infra/metrics"
)

// Compile-time check
var _ SessionUseCase = (*sessionUC)(nil)

type SessionUseCase interface {
	Create(ctx context.Context, title string) (*model.Session, error)
	Get(ctx context.Context, id string) (*model.Session, error)
	List(ctx context.Context) ([]*model.Session, error)
	Rename(ctx context.Context, id, title string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}

type sessionUC struct {
	sessions repository.SessionRepository
}

func NewSessionUseCase(sessions repository.SessionRepository) *sessionUC {
	return &sessionUC{sessions: sessions}
}

func (u *sessionUC) Create(ctx context.Context, title string) (*model.Session, error) {
	s, err := model.NewSession(title)
	if err != nil {
		return nil, err
	}
	if err := u.sessions.Save(ctx, nil, s); err != nil {
		return nil, err
	}
	metrics.IncSessionCreated()
	return s, nil
}

func (u *sessionUC) Get(ctx context.Context, id string) (*model.Session, error) {
	return u.sessions.FindByID(ctx, nil, id)
}

func (u *sessionUC) List(ctx context.Context) ([]*model.Session, error) {
	return u.sessions.FindAll(ctx, nil)
}

func (u *sessionUC) Rename(ctx context.Context, id, title string) (*model.Session, error) {
	s, err := u.sessions.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if err := s.Rename(title); err != nil {
		return nil, err
	}
	if err := u.sessions.Save(ctx, nil, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (u *sessionUC) Delete(ctx context.Context, id string) error {
	return u.sessions.Delete(ctx, nil, id)
}
