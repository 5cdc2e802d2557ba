package middleware

import (
	"net/http"
	"strings"
)

// DefaultContentSecurityPolicy allows the micro-site's inline styles and
// scripts, images from anywhere, and embedded maps and videos.
var DefaultContentSecurityPolicy = strings.Join([]string{
	"default-src 'self'",
	"style-src 'self' 'unsafe-inline' https://cdn.tailwindcss.com",
	"script-src 'self' 'unsafe-inline' https://cdn.tailwindcss.com",
	"img-src 'self' data: https: http:",
	"connect-src 'self'",
	"font-src 'self' data:",
	"object-src 'none'",
	"media-src 'self'",
	"frame-src 'self' https://www.youtube.com https://www.google.com https://maps.google.com",
}, "; ")

// NewSecurityHeaders returns a middleware that sets a content security policy
// and the usual hardening headers on every response. An empty csp uses
// DefaultContentSecurityPolicy.
func NewSecurityHeaders(csp string) func(http.Handler) http.Handler {
	if csp == "" {
		csp = DefaultContentSecurityPolicy
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Content-Security-Policy", csp)
			h.Set("Cross-Origin-Resource-Policy", "cross-origin")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "SAMEORIGIN")
			h.Set("Referrer-Policy", "no-referrer")
			next.ServeHTTP(w, r)
		})
	}
}
