package middleware

import (
	"fmt"
	"net/http"

	"github.com/pkordes/bizsite/internal/httputil"
)

// NewMaxBodySizeHandler returns a middleware that limits incoming request body
// sizes to limit bytes. Requests whose Content-Length exceeds the limit are
// rejected with 413 Request Entity Too Large before reaching the next handler;
// bodies without a declared length are wrapped in http.MaxBytesReader so reads
// past the limit fail.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				httputil.Error(w, http.StatusRequestEntityTooLarge, httputil.CodeTooLarge,
					fmt.Sprintf("request body must not exceed %d bytes", limit))
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
