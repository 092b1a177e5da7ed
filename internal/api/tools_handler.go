// File path: internal/api/tools_handler.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/deskmate-ai/deskmate/internal/common"
	"github.com/deskmate-ai/deskmate/internal/dispatch"
)

// The tool endpoints reuse the dispatcher so direct callers get exactly the
// same validation and semantics as model-initiated function calls.

func (s *Server) handleTicketCreate(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req ticketCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	args := map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
		"category":    req.Category,
	}
	if req.Priority != "" {
		args["priority"] = req.Priority
	}
	result, err := s.dispatcher.Dispatch("create_support_ticket", args)
	if err != nil {
		writeDispatchError(w, err)
		return
	}
	logger.Info("api: ticket created directly")
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleTicketStatus(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticketID")
	result, err := s.dispatcher.Dispatch("check_ticket_status", map[string]interface{}{"ticket_id": ticketID})
	if err != nil {
		writeDispatchError(w, err)
		return
	}
	status, ok := result.(dispatch.TicketStatus)
	if ok && !status.Found {
		writeJSON(w, http.StatusNotFound, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	system := chi.URLParam(r, "system")
	result, err := s.dispatcher.Dispatch("check_system_status", map[string]interface{}{"system_name": system})
	if err != nil {
		writeDispatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDirectory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	args := map[string]interface{}{}
	for _, field := range []string{"name", "department", "email"} {
		if value := query.Get(field); value != "" {
			args[field] = value
		}
	}
	result, err := s.dispatcher.Dispatch("search_employee_directory", args)
	if err != nil {
		writeDispatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": result})
}

func writeDispatchError(w http.ResponseWriter, err error) {
	var validation *dispatch.ValidationError
	if errors.As(err, &validation) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeError(w, http.StatusInternalServerError, err)
}
