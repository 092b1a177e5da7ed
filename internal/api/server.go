// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/deskmate-ai/deskmate/internal/common"
	"github.com/deskmate-ai/deskmate/internal/conversation"
	"github.com/deskmate-ai/deskmate/internal/dispatch"
	"github.com/deskmate-ai/deskmate/internal/engine"
	"github.com/deskmate-ai/deskmate/internal/retriever"
)

// Server is the HTTP surface over the chat engine and the direct support
// tools.
type Server struct {
	router     chi.Router
	engine     *engine.Engine
	retriever  *retriever.Retriever
	dispatcher *dispatch.Dispatcher
	sessions   *conversation.Registry
}

func NewServer(eng *engine.Engine, retr *retriever.Retriever, dispatcher *dispatch.Dispatcher, sessions *conversation.Registry) (*Server, error) {
	logger := common.Logger()
	if eng == nil {
		return nil, fmt.Errorf("engine required")
	}
	if retr == nil {
		return nil, fmt.Errorf("retriever required")
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher required")
	}
	if sessions == nil {
		sessions = conversation.NewRegistry(conversation.DefaultMaxTurns)
	}
	srv := &Server{
		router:     chi.NewRouter(),
		engine:     eng,
		retriever:  retr,
		dispatcher: dispatcher,
		sessions:   sessions,
	}
	srv.routes()
	logger.Info("api: server ready")
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	logger.Info("api: configuring routes")
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Post("/v1/chat", s.handleChat)
	s.router.Post("/v1/session/reset", s.handleSessionReset)
	s.router.Get("/v1/articles", s.handleArticles)
	s.router.Put("/v1/retriever/threshold", s.handleThreshold)

	s.router.Post("/v1/tickets", s.handleTicketCreate)
	s.router.Get("/v1/tickets/{ticketID}", s.handleTicketStatus)
	s.router.Get("/v1/systems/{system}/status", s.handleSystemStatus)
	s.router.Get("/v1/directory", s.handleDirectory)

	s.router.Get("/v1/logs", s.handleLogs)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": common.LogEntries()})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
