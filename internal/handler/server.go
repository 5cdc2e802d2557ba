// Package handler implements the HTTP handlers for the business site builder API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (business.go, analytics.go, places.go, ...) but share the same Server
// struct so they can access its dependencies. NewRouter mounts them on chi.
package handler

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pkordes/bizsite/internal/domain"
	"github.com/pkordes/bizsite/internal/places"
)

// BusinessServicer defines the business operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type BusinessServicer interface {
	Create(ctx context.Context, b domain.Business) (domain.Business, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Business, error)
	PublishedBySlug(ctx context.Context, label string) (domain.Business, error)
	ListApproved(ctx context.Context, p domain.PaginationParams) ([]domain.Business, int64, error)
	ListPending(ctx context.Context, p domain.PaginationParams) ([]domain.Business, int64, error)
	ListByOwner(ctx context.Context, email string) ([]domain.Business, error)
	UpdateSlug(ctx context.Context, id uuid.UUID, newSlug string) (domain.Business, error)
	CheckSubdomain(ctx context.Context, raw string) (domain.SubdomainCheck, error)
	Approve(ctx context.Context, id uuid.UUID) (domain.Business, error)
	Reject(ctx context.Context, id uuid.UUID) (domain.Business, error)
	ApproveAllPending(ctx context.Context) ([]domain.Business, error)
}

// AnalyticsServicer defines the analytics operations the handlers depend on.
type AnalyticsServicer interface {
	Track(ctx context.Context, businessID, eventType string)
	Stats(ctx context.Context, businessID uuid.UUID, period domain.Period) (domain.AnalyticsReport, error)
	OwnerSummary(ctx context.Context, email string) ([]domain.BusinessAnalytics, error)
}

// PlacesServicer defines the places proxy operations the handlers depend on.
type PlacesServicer interface {
	Autocomplete(ctx context.Context, input string, loc *places.Location) ([]domain.PlacePrediction, error)
	Details(ctx context.Context, placeID string) (domain.PlaceProfile, error)
	TextSearch(ctx context.Context, query string, loc *places.Location) ([]domain.PlaceSearchResult, error)
}

// SitemapBuilder produces the XML sitemap document.
type SitemapBuilder interface {
	Build(ctx context.Context) ([]byte, error)
}

// SiteRenderer writes micro-site HTML pages.
type SiteRenderer interface {
	Business(w io.Writer, b domain.Business) error
	NotFound(w io.Writer, slug string) error
}

// Deps groups the dependencies of Server. Nil services leave their routes
// answering 503, which keeps single-feature tests small.
type Deps struct {
	Businesses BusinessServicer
	Analytics  AnalyticsServicer
	Places     PlacesServicer
	Sitemap    SitemapBuilder
	Site       SiteRenderer
	// OpenAPI is the raw document served at GET /openapi.yaml.
	OpenAPI []byte
	Logger  *slog.Logger
}

// Server holds the handler dependencies.
type Server struct {
	businesses BusinessServicer
	analytics  AnalyticsServicer
	places     PlacesServicer
	sitemap    SitemapBuilder
	site       SiteRenderer
	openAPI    []byte
	log        *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return &Server{
		businesses: d.Businesses,
		analytics:  d.Analytics,
		places:     d.Places,
		sitemap:    d.Sitemap,
		site:       d.Site,
		openAPI:    d.OpenAPI,
		log:        d.Logger,
	}
}
