package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"invoice-agent/internal/core"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Index     *int   `json:"entry_index,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writePipelineError maps a pipeline failure to a JSON error with the error
// kind as the code and the offending entry index when one applies. Errors
// that are not PipelineErrors become plain 500s.
func writePipelineError(w http.ResponseWriter, r *http.Request, err error) {
	var pe *core.PipelineError
	if !errors.As(err, &pe) {
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}

	status := http.StatusUnprocessableEntity
	switch pe.Kind {
	case core.ErrExtractionFailed, core.ErrRenderFailed:
		status = http.StatusBadGateway
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     pe.Message,
		Code:      string(pe.Kind),
		RequestID: requestIDFromContext(r.Context()),
	}
	if pe.Index >= 0 {
		idx := pe.Index
		resp.Index = &idx
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONStatus writes a JSON response with an explicit status code.
func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
