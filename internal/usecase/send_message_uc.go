package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"ai-chat-service/internal/domain"
	"ai-chat-service/internal/domain/model"
	"ai-chat-service/internal/domain/ports/adapter"
	"ai-chat-service/internal/domain/ports/repository"
	"ai-chat-service/internal/infra/logging"
	"ai-chat-service/internal/infra/metrics"
)

// Compile-time check
var _ SendMessageUseCase = (*sendMessageUC)(nil)

type SendMessageUseCase interface {
	// Execute appends a user message to the session and, when generateReply
	// is set, asks the responder for an assistant reply and appends that too.
	//
	// The user message is persisted before the responder is invoked; once
	// that save succeeds the call reports success even if the reply stage
	// fails. A session left with only the user message is a correct partial
	// state, not a corruption.
	Execute(ctx context.Context, sessionID, content string, generateReply bool) error
}

type sendMessageUC struct {
	sessions repository.SessionRepository
	ai       adapter.AIResponder
	log      *zerolog.Logger
}

func NewSendMessageUseCase(sessions repository.SessionRepository, ai adapter.AIResponder, log *zerolog.Logger) *sendMessageUC {
	return &sendMessageUC{sessions: sessions, ai: ai, log: log}
}

func (u *sendMessageUC) Execute(ctx context.Context, sessionID, content string, generateReply bool) error {
	log := logging.With(ctx, u.log)
	defer logging.TraceDuration(log, "SendMessageUC.Execute")()

	s, err := u.sessions.FindByID(ctx, nil, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrSessionNotFound
		}
		return err
	}

	userMsg, err := model.NewMessage(s.ID, content, model.RoleUser)
	if err != nil {
		return err
	}

	// History for the responder is the conversation before this turn.
	history := make([]adapter.Message, 0, len(s.Messages))
	for _, m := range s.Messages {
		history = append(history, adapter.Message{Role: string(m.Role), Content: m.Content})
	}

	if err := s.AddMessage(userMsg); err != nil {
		return err
	}
	if err := u.sessions.Save(ctx, nil, s); err != nil {
		return err
	}
	metrics.IncMessagePersisted(string(model.RoleUser))

	if !generateReply {
		return nil
	}

	// Reply stage. Failures here are logged and swallowed: the user message
	// is already durable and the call still reports success.
	start := time.Now()
	reply, err := u.ai.GenerateResponse(ctx, history, content)
	if err != nil {
		metrics.ObserveAIRequest("error", time.Since(start))
		log.Warn().Err(err).
			Str("session_id", s.ID).
			Msg("reply generation failed; keeping user message only")
		return nil
	}
	metrics.ObserveAIRequest("ok", time.Since(start))

	assistantMsg, err := model.NewMessage(s.ID, reply, model.RoleAssistant)
	if err != nil {
		log.Warn().Err(err).Str("session_id", s.ID).Msg("responder returned unusable reply")
		return nil
	}
	if err := s.AddMessage(assistantMsg); err != nil {
		return err
	}
	if err := u.sessions.Save(ctx, nil, s); err != nil {
		log.Error().Err(err).Str("session_id", s.ID).Msg("persist assistant message failed")
		return nil
	}
	metrics.IncMessagePersisted(string(model.RoleAssistant))
	return nil
}
