package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/pkordes/bizsite/internal/httputil"
)

// NewRateLimiter returns an IP-based limiter allowing requests per window.
// A non-positive requests value disables limiting.
func NewRateLimiter(requests int, window time.Duration, log *slog.Logger) func(http.Handler) http.Handler {
	if requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			if log != nil {
				log.WarnContext(r.Context(), "rate limit exceeded",
					"ip", r.RemoteAddr,
					"path", r.URL.Path,
					"method", r.Method,
				)
			}
			httputil.Error(w, http.StatusTooManyRequests, httputil.CodeRateLimited, "rate limit exceeded, please try again later")
		}),
	)
}
