package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/bizsite/internal/httputil"
	"github.com/pkordes/bizsite/internal/middleware"
	"github.com/pkordes/bizsite/internal/tenant"
)

// RouterConfig holds the settings of the middleware stack.
type RouterConfig struct {
	Resolver           *tenant.Resolver
	CORSOrigins        []string
	MaxBodyBytes       int64
	RateLimitPerMinute int
	AdminToken         string
	Logger             *slog.Logger
}

// NewRouter mounts every route of s on a chi router.
//
// Middleware is applied in order: RequestID → RealIP → tenant classification →
// Logger → Recoverer → security headers → CORS → body size cap. Requests for a
// tenant host are answered by the micro-site before reaching the API routes.
func NewRouter(s *Server, cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = s.log
	}
	if cfg.Resolver == nil {
		cfg.Resolver = tenant.NewResolver("", nil)
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewTenantClassifier(cfg.Resolver))
	r.Use(middleware.NewSlogLogger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewSecurityHeaders(""))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	}
	if cfg.MaxBodyBytes > 0 {
		r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	}
	r.Use(s.TenantSite)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.Error(w, http.StatusNotFound, httputil.CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.Error(w, http.StatusMethodNotAllowed, httputil.CodeMethodNotAllowed, "method not allowed")
	})

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/sitemap.xml", s.requires(s.sitemap != nil, s.GetSitemap))
	r.Get("/b/{slug}", s.requires(s.site != nil && s.businesses != nil, s.GetBusinessSite))

	limited := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute, cfg.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/businesses", func(r chi.Router) {
			r.Post("/", s.requires(s.businesses != nil, s.CreateBusiness))
			r.Get("/", s.requires(s.businesses != nil, s.ListBusinesses))
			r.Get("/check-subdomain", s.requires(s.businesses != nil, s.CheckSubdomain))
			r.Get("/{id}", s.requires(s.businesses != nil, s.GetBusiness))
			r.Put("/{id}/slug", s.requires(s.businesses != nil, s.UpdateSlug))
		})

		r.Get("/owners/businesses", s.requires(s.businesses != nil, s.ListOwnerBusinesses))
		r.Get("/owners/analytics", s.requires(s.analytics != nil, s.GetOwnerAnalytics))

		r.Route("/analytics", func(r chi.Router) {
			r.With(limited).Post("/track", s.requires(s.analytics != nil, s.TrackEvent))
			r.Get("/{businessId}", s.requires(s.analytics != nil, s.GetAnalytics))
		})

		r.Route("/google-places", func(r chi.Router) {
			r.Use(limited)
			r.Post("/autocomplete", s.requires(s.places != nil, s.PlacesAutocomplete))
			r.Post("/details", s.requires(s.places != nil, s.PlacesDetails))
			r.Post("/text-search", s.requires(s.places != nil, s.PlacesTextSearch))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.NewAdminAuth(cfg.AdminToken))
			r.Get("/pending", s.requires(s.businesses != nil, s.ListPending))
			r.Post("/businesses/{id}/approve", s.requires(s.businesses != nil, s.ApproveBusiness))
			r.Post("/businesses/{id}/reject", s.requires(s.businesses != nil, s.RejectBusiness))
			r.Post("/approve-all", s.requires(s.businesses != nil, s.ApproveAll))
		})
	})

	return r
}

// requires answers 503 instead of calling h when a dependency is missing.
func (s *Server) requires(present bool, h http.HandlerFunc) http.HandlerFunc {
	if present {
		return h
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		httputil.Error(w, http.StatusServiceUnavailable, httputil.CodeUnavailable, "feature is not configured")
	}
}
