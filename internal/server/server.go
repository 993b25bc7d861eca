// Package server is the thin HTTP layer over the two pipelines: JSON in,
// JSON out, no business logic.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/revozen-chatbot/server/internal/agent/freequery"
	errx "github.com/revozen-chatbot/server/internal/core/error"
	logx "github.com/revozen-chatbot/server/pkg/logger"
)

// AskService answers slot-filling questions (POST /ask).
type AskService interface {
	Ask(ctx context.Context, question, sessionID string) (string, error)
}

// ChatService answers free-query questions (POST /chat).
type ChatService interface {
	Chat(ctx context.Context, message string) (*freequery.Result, error)
}

type Server struct {
	router *chi.Mux
	ask    AskService
	chat   ChatService
}

func New(ask AskService, chat ChatService) *Server {
	s := &Server{
		router: chi.NewRouter(),
		ask:    ask,
		chat:   chat,
	}

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	s.router.Get("/", s.handleRoot)
	s.router.Post("/ask", s.handleAsk)
	s.router.Post("/chat", s.handleChat)

	return s
}

// Router exposes the configured handler for http.ListenAndServe and tests.
func (s *Server) Router() http.Handler {
	return s.router
}

type askRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id,omitempty"`
}

type askResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, askResponse{Message: "Revozen Admin Chatbot API is running."})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, askResponse{Message: "invalid request body"})
		return
	}

	msg, err := s.ask.Ask(r.Context(), req.Question, req.SessionID)
	if err != nil {
		logx.Error().Err(err).Msg("ask turn failed")
		writeJSON(w, errx.StatusOf(err), askResponse{Message: errx.SystemErrorMessage})
		return
	}
	writeJSON(w, http.StatusOK, askResponse{Message: msg})
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatError struct {
	Error string `json:"error"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, chatError{Error: "invalid request body"})
		return
	}

	result, err := s.chat.Chat(r.Context(), req.Message)
	if err != nil {
		logx.Error().Err(err).Msg("chat turn failed")
		writeJSON(w, errx.StatusOf(err), chatError{Error: publicError(err)})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// publicError returns the safe user-facing message of an error chain. The
// wrapped cause stays in the logs only.
func publicError(err error) string {
	var appErr *errx.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return errx.SystemErrorMessage
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logx.Error().Err(err).Msg("failed to encode response body")
	}
}
