// File path: internal/api/types.go
package api

import "github.com/deskmate-ai/deskmate/internal/engine"

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID      string          `json:"session_id"`
	Answer         string          `json:"answer"`
	Sources        []engine.Source `json:"sources"`
	FunctionResult interface{}     `json:"function_result,omitempty"`
}

type sessionResetRequest struct {
	SessionID string `json:"session_id"`
}

type thresholdRequest struct {
	Threshold float64 `json:"threshold"`
}

type ticketCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}
