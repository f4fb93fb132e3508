package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"ai-chat-service/internal/domain"
	"ai-chat-service/internal/domain/model"
	"ai-chat-service/internal/domain/ports/adapter"
	"ai-chat-service/internal/infra/logging"
)

// ---- DTOs ----

type messageDTO struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Content   string    `json:"content"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionDTO struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Messages  []messageDTO `json:"messages,omitempty"`
}

func toMessageDTO(m model.Message) messageDTO {
	return messageDTO{
		ID:        m.ID,
		SessionID: m.SessionID,
		Content:   m.Content,
		Role:      string(m.Role),
		CreatedAt: m.CreatedAt,
	}
}

func toSessionDTO(s *model.Session, withMessages bool) sessionDTO {
	dto := sessionDTO{
		ID:        s.ID,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if withMessages {
		dto.Messages = make([]messageDTO, 0, len(s.Messages))
		for _, m := range s.Messages {
			dto.Messages = append(dto.Messages, toMessageDTO(m))
		}
	}
	return dto
}

// ---- Request bodies ----

type sessionRequest struct {
	Title string `json:"title"`
}

type sendMessageRequest struct {
	Content       string `json:"content"`
	GenerateReply *bool  `json:"generate_reply"`
}

type chatRequest struct {
	Messages []adapter.Message `json:"messages"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// ---- Handlers ----

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.sessionUC.List(r.Context())
	if err != nil {
		s.writeError(w, r, err, "failed to list sessions")
		return
	}
	out := make([]sessionDTO, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, toSessionDTO(sess, false))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	sess, err := s.sessionUC.Create(r.Context(), strings.TrimSpace(req.Title))
	if err != nil {
		s.writeError(w, r, err, "failed to create session")
		return
	}
	writeJSON(w, http.StatusCreated, toSessionDTO(sess, false))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err, "failed to get session")
		return
	}
	writeJSON(w, http.StatusOK, toSessionDTO(sess, true))
}

func (s *Server) handleRenameSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	sess, err := s.sessionUC.Rename(r.Context(), chi.URLParam(r, "id"), strings.TrimSpace(req.Title))
	if err != nil {
		s.writeError(w, r, err, "failed to rename session")
		return
	}
	writeJSON(w, http.StatusOK, toSessionDTO(sess, false))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessionUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err, "failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err, "failed to get session")
		return
	}
	out := make([]messageDTO, 0, len(sess.Messages))
	for _, m := range sess.Messages {
		out = append(out, toMessageDTO(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	generate := true
	if req.GenerateReply != nil {
		generate = *req.GenerateReply
	}

	id := chi.URLParam(r, "id")
	ctx := logging.WithSessID(r.Context(), id)
	if err := s.sendUC.Execute(ctx, id, strings.TrimSpace(req.Content), generate); err != nil {
		s.writeError(w, r, err, "failed to send message")
		return
	}

	// Return the refreshed message list so clients can render the turn.
	sess, err := s.sessionUC.Get(ctx, id)
	if err != nil {
		s.writeError(w, r, err, "failed to reload session")
		return
	}
	out := make([]messageDTO, 0, len(sess.Messages))
	for _, m := range sess.Messages {
		out = append(out, toMessageDTO(m))
	}
	writeJSON(w, http.StatusCreated, out)
}

// handleChat answers a one-shot completion without touching any session.
// The last message is the prompt, everything before it is conversation history.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) == 0 {
		http.Error(w, "Messages array is required", http.StatusBadRequest)
		return
	}

	last := req.Messages[len(req.Messages)-1]
	history := req.Messages[:len(req.Messages)-1]

	reply, err := s.ai.GenerateResponse(r.Context(), history, last.Content)
	if err != nil {
		logging.With(r.Context(), s.log).Error().Err(err).Msg("stateless chat completion failed")
		http.Error(w, "Failed to generate AI response", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Response: reply})
}

// ---- Helpers ----

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrNotFound):
		http.Error(w, "Session not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		logging.With(r.Context(), s.log).Error().Err(err).Msg(msg)
		http.Error(w, msg, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
