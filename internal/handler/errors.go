package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/bizsite/internal/domain"
	"github.com/pkordes/bizsite/internal/httputil"
	"github.com/pkordes/bizsite/internal/places"
)

// writeError maps a service error to the JSON error envelope.
// notFound is the message used for domain.ErrNotFound, since the handler is
// the layer that knows what was being looked up.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		httputil.Error(w, http.StatusNotFound, httputil.CodeNotFound, notFound)
	case errors.Is(err, domain.ErrValidation):
		httputil.Error(w, http.StatusUnprocessableEntity, httputil.CodeValidation, unwrapMessage(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrConflict):
		httputil.Error(w, http.StatusConflict, httputil.CodeConflict, "subdomain is already taken")
	case errors.Is(err, domain.ErrUnavailable):
		httputil.Error(w, http.StatusServiceUnavailable, httputil.CodeUnavailable, unwrapMessage(err, domain.ErrUnavailable))
	case errors.Is(err, domain.ErrUpstream):
		detail := httputil.ErrorDetail{Code: httputil.CodeUpstream, Message: "upstream service failed"}
		if apiErr, ok := places.AsAPIError(err); ok {
			detail.Message = apiErr.Message
			detail.Help = apiErr.Help
		}
		s.log.WarnContext(r.Context(), "upstream request failed", "path", r.URL.Path, "error", err)
		httputil.JSON(w, http.StatusBadGateway, httputil.ErrorResponse{Error: detail})
	default:
		s.log.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		httputil.Error(w, http.StatusInternalServerError, httputil.CodeInternal, "internal server error")
	}
}

// requestError writes a 422 for input rejected before reaching the service
// layer (e.g. a missing or malformed body).
func requestError(w http.ResponseWriter, message string) {
	httputil.Error(w, http.StatusUnprocessableEntity, httputil.CodeValidation, message)
}

// badRequest writes a 400 for unparseable parameters.
func badRequest(w http.ResponseWriter, message string) {
	httputil.Error(w, http.StatusBadRequest, httputil.CodeBadRequest, message)
}

// unwrapMessage extracts the human-readable part after a wrapped sentinel.
// e.g. "service.BusinessService.Create: validation error: name is required" → "name is required"
func unwrapMessage(err, sentinel error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if idx := strings.LastIndex(msg, marker); idx != -1 {
		return msg[idx+len(marker):]
	}
	return sentinel.Error()
}
