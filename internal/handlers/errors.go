package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/csg33k/roster-viewer/internal/domain"
	"github.com/csg33k/roster-viewer/internal/logger"
)

// Error codes of the JSON API.
const (
	codeBadRequest = "BAD_REQUEST"
	codeValidation = "VALIDATION_FAILED"
	codeNotFound   = "NOT_FOUND"
	codeInternal   = "INTERNAL_ERROR"
)

type errorResponse struct {
	Error     string             `json:"error"`
	Code      string             `json:"code"`
	RequestID string             `json:"request_id,omitempty"`
	Fields    domain.FieldErrors `json:"fields,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	writeErrorResponse(w, status, errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestID(w, r),
	})
}

// requestID prefers the context value; middleware outside RequestID only
// sees the response header.
func requestID(w http.ResponseWriter, r *http.Request) string {
	if id := requestIDFromContext(r.Context()); id != "" {
		return id
	}
	return w.Header().Get("X-Request-ID")
}

func writeErrorResponse(w http.ResponseWriter, status int, resp errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes v as JSON with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeStoreError maps a store error onto the JSON API: invalid fields are
// 422, a missing record 404, anything else 500.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if fe, ok := domain.AsFieldErrors(err); ok {
		writeErrorResponse(w, http.StatusUnprocessableEntity, errorResponse{
			Error:     "validation failed",
			Code:      codeValidation,
			RequestID: requestID(w, r),
			Fields:    fe,
		})
		return
	}
	if errors.Is(err, domain.ErrEmployeeNotFound) {
		writeError(w, r, "employee not found", codeNotFound, http.StatusNotFound)
		return
	}
	logger.ErrorLog(r.Context(), err, "store: %s %s", r.Method, r.URL.Path)
	writeError(w, r, "internal server error", codeInternal, http.StatusInternalServerError)
}

// serverError is the HTML-side 500: log with the request logger, answer
// with plain text.
func serverError(w http.ResponseWriter, r *http.Request, err error) {
	logger.ErrorLog(r.Context(), err, "%s %s", r.Method, r.URL.Path)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
