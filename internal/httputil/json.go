// Package httputil holds the JSON response helpers shared by handlers and middleware.
package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Error codes used in ErrorDetail.Code.
const (
	CodeBadRequest       = "bad_request"
	CodeValidation       = "validation_error"
	CodeNotFound         = "not_found"
	CodeConflict         = "conflict"
	CodeUnauthorized     = "unauthorized"
	CodeRateLimited      = "rate_limited"
	CodeTooLarge         = "request_too_large"
	CodeUpstream         = "upstream_error"
	CodeUnavailable      = "unavailable"
	CodeInternal         = "internal"
	CodeMethodNotAllowed = "method_not_allowed"
)

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Help    string `json:"help,omitempty"`
}

// ErrorResponse is the JSON envelope {"error": {...}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("httputil.JSON: encode response", "error", err)
	}
}

// Error writes an ErrorResponse with the given status, code and message.
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}
