package handler

import (
	"net/http"
)

// GetSitemap handles GET /sitemap.xml.
func (s *Server) GetSitemap(w http.ResponseWriter, r *http.Request) {
	doc, err := s.sitemap.Build(r.Context())
	if err != nil {
		s.writeError(w, r, err, "sitemap not found")
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}
