package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler lets the builder dashboard, served from its own origin, call
// the API. Entries are full origins such as "https://app.example.com".
// Tenant micro-sites post analytics to their own host and need no entry here.
// Authorization is allowed for the admin bearer token.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         600,
	})
	return c.Handler
}
