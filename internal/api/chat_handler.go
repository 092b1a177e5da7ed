// File path: internal/api/chat_handler.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/deskmate-ai/deskmate/internal/common"
)

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	ctx := r.Context()
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("api: chat decode failed", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		logger.Warn("api: chat message missing")
		writeError(w, http.StatusBadRequest, fmt.Errorf("message required"))
		return
	}
	sessionID, convo := s.sessions.Acquire(req.SessionID)
	logger.Info("api: chat request received", "session", sessionID, "message_length", len(req.Message))
	reply := s.engine.Process(ctx, convo, req.Message)
	writeJSON(w, http.StatusOK, chatResponse{
		SessionID:      sessionID,
		Answer:         reply.Answer,
		Sources:        reply.Sources,
		FunctionResult: reply.FunctionResult,
	})
}

func (s *Server) handleSessionReset(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req sessionResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.SessionID) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("session_id required"))
		return
	}
	s.sessions.Reset(req.SessionID)
	logger.Info("api: session reset", "session", req.SessionID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (s *Server) handleArticles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	k := 5
	if raw := strings.TrimSpace(r.URL.Query().Get("k")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("k must be a positive integer"))
			return
		}
		k = parsed
	}
	articles, err := s.retriever.RelevantArticles(r.Context(), query, k)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"articles": articles})
}

func (s *Server) handleThreshold(w http.ResponseWriter, r *http.Request) {
	var req thresholdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.retriever.SetThreshold(req.Threshold); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"threshold": s.retriever.Threshold()})
}
