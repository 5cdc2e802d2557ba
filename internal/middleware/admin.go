package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/pkordes/bizsite/internal/httputil"
)

// NewAdminAuth returns a middleware that admits only requests carrying
// "Authorization: Bearer <token>". An empty token switches the guarded routes
// off with 503.
func NewAdminAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				httputil.Error(w, http.StatusServiceUnavailable, httputil.CodeUnavailable, "admin API is disabled")
				return
			}
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
				httputil.Error(w, http.StatusUnauthorized, httputil.CodeUnauthorized, "missing or invalid admin token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
