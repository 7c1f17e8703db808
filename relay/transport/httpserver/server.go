// Package httpserver is the HTTP transport adapter for the chat domain.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chat-relay/chat-relay/relay/chat"
	ports "github.com/chat-relay/chat-relay/relay/chat/ports"
)

// ChatService is the slice of the orchestrator the transport needs.
type ChatService interface {
	Send(ctx context.Context, message string) (string, error)
	History(ctx context.Context) ([]ports.Turn, error)
	Reset(ctx context.Context) error
}

// Server exposes the chat API over HTTP.
type Server struct {
	Chat ChatService
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/chat/new", s.handleNewSession)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("POST /api/history/delete", s.handleDeleteHistory)

	registerUI(mux)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":   true,
		"time": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	type reqBody struct {
		Message string `json:"message"`
	}
	var body reqBody
	if err := readJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	reply, err := s.Chat.Send(r.Context(), body.Message)
	if err != nil {
		writeJSON(w, statusFor(err), map[string]any{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"response": reply})
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Chat.Reset(r.Context()); err != nil {
		writeJSON(w, statusFor(err), map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Chat history cleared, new session started."})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	turns, err := s.Chat.History(r.Context())
	if err != nil {
		writeJSON(w, statusFor(err), map[string]any{"error": err.Error()})
		return
	}

	type historyEntry struct {
		Role      string    `json:"role"`
		Message   string    `json:"message"`
		Timestamp time.Time `json:"timestamp"`
	}
	entries := make([]historyEntry, len(turns))
	for i, turn := range turns {
		entries[i] = historyEntry{
			Role:      string(turn.Role),
			Message:   turn.Content,
			Timestamp: turn.CreatedAt,
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"history": entries})
}

func (s *Server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.Chat.Reset(r.Context()); err != nil {
		writeJSON(w, statusFor(err), map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Chat history deleted."})
}

// statusFor maps domain errors onto HTTP status codes. Validation failures
// are the caller's fault; everything else is a server-side failure.
func statusFor(err error) int {
	var verr *chat.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func readJSON(r *http.Request, dst any) error {
	defer func() { _, _ = io.Copy(io.Discard, r.Body) }()
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
