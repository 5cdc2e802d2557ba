package middleware

import (
	"net/http"

	"github.com/pkordes/bizsite/internal/tenant"
)

// NewTenantClassifier returns a middleware that classifies every request by its
// Host header and stores the result in the request context, where handlers
// read it with tenant.FromContext.
func NewTenantClassifier(resolver *tenant.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := resolver.Resolve(r.Host)
			next.ServeHTTP(w, r.WithContext(tenant.WithClassification(r.Context(), c)))
		})
	}
}
