package handler

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/bizsite/internal/domain"
	"github.com/pkordes/bizsite/internal/tenant"
)

// TenantSite serves the micro-site for requests the tenant middleware
// classified as TenantSite. GET and HEAD on any path render the page; other
// methods fall through to next so same-origin API calls such as analytics
// beacons keep working on tenant hosts.
func (s *Server) TenantSite(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := tenant.FromContext(r.Context())
		if !c.IsTenant() || s.site == nil || s.businesses == nil ||
			(r.Method != http.MethodGet && r.Method != http.MethodHead) {
			next.ServeHTTP(w, r)
			return
		}
		s.renderSite(w, r, c.Slug)
	})
}

// GetBusinessSite handles GET /b/{slug}, the main-site preview of a micro-site.
func (s *Server) GetBusinessSite(w http.ResponseWriter, r *http.Request) {
	s.renderSite(w, r, chi.URLParam(r, "slug"))
}

func (s *Server) renderSite(w http.ResponseWriter, r *http.Request, label string) {
	var buf bytes.Buffer
	status := http.StatusOK

	b, err := s.businesses.PublishedBySlug(r.Context(), label)
	switch {
	case err == nil:
		err = s.site.Business(&buf, b)
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		err = s.site.NotFound(&buf, label)
	}
	if err != nil {
		s.log.ErrorContext(r.Context(), "render micro-site", "slug", label, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		_, _ = w.Write(buf.Bytes())
	}
}
