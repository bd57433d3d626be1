package transport

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/oncampus/gearbot/internal/agent"
)

// ChatAgent is the conversational surface the HTTP layer fronts.
type ChatAgent interface {
	Chat(ctx context.Context, sessionID, message string) string
	Reset(sessionID string)
}

// Server wires HTTP handlers.
type Server struct {
	agent ChatAgent
}

// NewServer creates an HTTP router for the chat API.
func NewServer(chatAgent ChatAgent) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	srv := &Server{agent: chatAgent}

	r.Post("/chat", srv.handleChat)
	r.Post("/chat/reset", srv.handleReset)
	r.Get("/capabilities", srv.handleCapabilities)
	r.Get("/health", srv.handleHealth)

	return r
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// A missing session ID starts a fresh conversation; the client keeps the
	// returned ID to continue it.
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	reply := s.agent.Chat(r.Context(), req.SessionID, req.Message)
	writeJSON(w, http.StatusOK, chatResponse{
		SessionID: req.SessionID,
		Reply:     reply,
	})
}

type resetRequest struct {
	SessionID string `json:"session_id"`
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		http.Error(w, "session_id required", http.StatusBadRequest)
		return
	}

	s.agent.Reset(req.SessionID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

type capability struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleCapabilities(w http.ResponseWriter, _ *http.Request) {
	var caps []capability
	for _, tool := range agent.Catalog() {
		caps = append(caps, capability{Name: tool.Name, Description: tool.Description})
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": caps})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
