package server

import (
	"encoding/json"
	"errors"
	"net/http"

	oerrors "github.com/opmodel/mfe/internal/errors"
	"github.com/opmodel/mfe/internal/query"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	})
}

// writeErr maps err to a status and code.
func writeErr(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	msg := err.Error()
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		msg = detail.Message
	}
	writeError(w, r, msg, code, status)
}

func classify(err error) (int, string) {
	var statusErr *query.StatusError
	switch {
	case errors.As(err, &statusErr):
		return http.StatusBadGateway, "UPSTREAM_ERROR"
	case errors.Is(err, query.ErrNoBaseURL):
		return http.StatusUnprocessableEntity, "NO_BASE_URL"
	case errors.Is(err, oerrors.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, oerrors.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, oerrors.ErrConnectivity):
		return http.StatusBadGateway, "UPSTREAM_UNREACHABLE"
	case errors.Is(err, oerrors.ErrPermission):
		return http.StatusForbidden, "FORBIDDEN"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
