package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"ai-chat-service/internal/domain/ports/adapter"
	"ai-chat-service/internal/infra/logging"
	"ai-chat-service/internal/usecase"
)

// Server exposes the session/message API over HTTP.
type Server struct {
	sessionUC usecase.SessionUseCase
	sendUC    usecase.SendMessageUseCase
	ai        adapter.AIResponder
	log       *zerolog.Logger
}

func NewServer(sessionUC usecase.SessionUseCase, sendUC usecase.SendMessageUseCase, ai adapter.AIResponder, logger *zerolog.Logger) *Server {
	return &Server{sessionUC: sessionUC, sendUC: sendUC, ai: ai, log: logger}
}

// Router builds the route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(traceMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/api/v1/chat", s.handleChat)

	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Get("/", s.handleListSessions)
		r.Post("/", s.handleCreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Put("/", s.handleRenameSession)
			r.Delete("/", s.handleDeleteSession)
			r.Get("/messages", s.handleListMessages)
			r.Post("/messages", s.handleSendMessage)
		})
	})

	return r
}

// traceMiddleware stamps every request context with a fresh trace id so
// downstream log lines can be correlated.
func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.WithTraceID(r.Context(), uuid.NewString())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
