package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/bizsite/internal/domain"
	"github.com/pkordes/bizsite/internal/handler"
	"github.com/pkordes/bizsite/internal/httputil"
	"github.com/pkordes/bizsite/internal/places"
	"github.com/pkordes/bizsite/internal/tenant"
)

// mockBusinessServicer is a test double for handler.BusinessServicer.
// Set only the method fields your test needs.
type mockBusinessServicer struct {
	create            func(ctx context.Context, b domain.Business) (domain.Business, error)
	getByID           func(ctx context.Context, id uuid.UUID) (domain.Business, error)
	publishedBySlug   func(ctx context.Context, label string) (domain.Business, error)
	listApproved      func(ctx context.Context, p domain.PaginationParams) ([]domain.Business, int64, error)
	listPending       func(ctx context.Context, p domain.PaginationParams) ([]domain.Business, int64, error)
	listByOwner       func(ctx context.Context, email string) ([]domain.Business, error)
	updateSlug        func(ctx context.Context, id uuid.UUID, newSlug string) (domain.Business, error)
	checkSubdomain    func(ctx context.Context, raw string) (domain.SubdomainCheck, error)
	approve           func(ctx context.Context, id uuid.UUID) (domain.Business, error)
	reject            func(ctx context.Context, id uuid.UUID) (domain.Business, error)
	approveAllPending func(ctx context.Context) ([]domain.Business, error)
}

func (m *mockBusinessServicer) Create(ctx context.Context, b domain.Business) (domain.Business, error) {
	return m.create(ctx, b)
}
func (m *mockBusinessServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Business, error) {
	return m.getByID(ctx, id)
}
func (m *mockBusinessServicer) PublishedBySlug(ctx context.Context, label string) (domain.Business, error) {
	return m.publishedBySlug(ctx, label)
}
func (m *mockBusinessServicer) ListApproved(ctx context.Context, p domain.PaginationParams) ([]domain.Business, int64, error) {
	return m.listApproved(ctx, p)
}
func (m *mockBusinessServicer) ListPending(ctx context.Context, p domain.PaginationParams) ([]domain.Business, int64, error) {
	return m.listPending(ctx, p)
}
func (m *mockBusinessServicer) ListByOwner(ctx context.Context, email string) ([]domain.Business, error) {
	return m.listByOwner(ctx, email)
}
func (m *mockBusinessServicer) UpdateSlug(ctx context.Context, id uuid.UUID, newSlug string) (domain.Business, error) {
	return m.updateSlug(ctx, id, newSlug)
}
func (m *mockBusinessServicer) CheckSubdomain(ctx context.Context, raw string) (domain.SubdomainCheck, error) {
	return m.checkSubdomain(ctx, raw)
}
func (m *mockBusinessServicer) Approve(ctx context.Context, id uuid.UUID) (domain.Business, error) {
	return m.approve(ctx, id)
}
func (m *mockBusinessServicer) Reject(ctx context.Context, id uuid.UUID) (domain.Business, error) {
	return m.reject(ctx, id)
}
func (m *mockBusinessServicer) ApproveAllPending(ctx context.Context) ([]domain.Business, error) {
	return m.approveAllPending(ctx)
}

// compile-time check: mockBusinessServicer must satisfy handler.BusinessServicer.
var _ handler.BusinessServicer = (*mockBusinessServicer)(nil)

// mockAnalyticsServicer is a test double for handler.AnalyticsServicer.
type mockAnalyticsServicer struct {
	track        func(ctx context.Context, businessID, eventType string)
	stats        func(ctx context.Context, businessID uuid.UUID, period domain.Period) (domain.AnalyticsReport, error)
	ownerSummary func(ctx context.Context, email string) ([]domain.BusinessAnalytics, error)
}

func (m *mockAnalyticsServicer) Track(ctx context.Context, businessID, eventType string) {
	m.track(ctx, businessID, eventType)
}
func (m *mockAnalyticsServicer) Stats(ctx context.Context, businessID uuid.UUID, period domain.Period) (domain.AnalyticsReport, error) {
	return m.stats(ctx, businessID, period)
}
func (m *mockAnalyticsServicer) OwnerSummary(ctx context.Context, email string) ([]domain.BusinessAnalytics, error) {
	return m.ownerSummary(ctx, email)
}

var _ handler.AnalyticsServicer = (*mockAnalyticsServicer)(nil)

// mockPlacesServicer is a test double for handler.PlacesServicer.
type mockPlacesServicer struct {
	autocomplete func(ctx context.Context, input string, loc *places.Location) ([]domain.PlacePrediction, error)
	details      func(ctx context.Context, placeID string) (domain.PlaceProfile, error)
	textSearch   func(ctx context.Context, query string, loc *places.Location) ([]domain.PlaceSearchResult, error)
}

func (m *mockPlacesServicer) Autocomplete(ctx context.Context, input string, loc *places.Location) ([]domain.PlacePrediction, error) {
	return m.autocomplete(ctx, input, loc)
}
func (m *mockPlacesServicer) Details(ctx context.Context, placeID string) (domain.PlaceProfile, error) {
	return m.details(ctx, placeID)
}
func (m *mockPlacesServicer) TextSearch(ctx context.Context, query string, loc *places.Location) ([]domain.PlaceSearchResult, error) {
	return m.textSearch(ctx, query, loc)
}

var _ handler.PlacesServicer = (*mockPlacesServicer)(nil)

// mockSitemap is a test double for handler.SitemapBuilder.
type mockSitemap struct {
	build func(ctx context.Context) ([]byte, error)
}

func (m *mockSitemap) Build(ctx context.Context) ([]byte, error) { return m.build(ctx) }

var _ handler.SitemapBuilder = (*mockSitemap)(nil)

// ---- helpers ---------------------------------------------------------------

const testAdminToken = "test-admin-token"

// newHTTPHandler wires a Server with the given dependencies into the chi
// router, mirroring how main.go wires it in production.
func newHTTPHandler(d handler.Deps) http.Handler {
	return handler.NewRouter(handler.NewServer(d), handler.RouterConfig{
		Resolver:           tenant.NewResolver("example.com", []string{"www", "api"}),
		MaxBodyBytes:       1 << 20,
		RateLimitPerMinute: 1000,
		AdminToken:         testAdminToken,
	})
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func jsonRequest(t *testing.T, method, target string, v any) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, jsonBody(t, v))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httputil.ErrorDetail {
	t.Helper()
	var body httputil.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func businessFixture() domain.Business {
	rating := 4.5
	now := time.Now().UTC()
	return domain.Business{
		ID:           uuid.New(),
		OwnerEmail:   "owner@example.com",
		BusinessName: "Joe's Pizza",
		Slug:         "joes-pizza",
		Category:     "Restaurant",
		Address:      "1 Main St",
		City:         "Springfield",
		PhoneNumber:  "+1 555 0100",
		Rating:       &rating,
		TotalRatings: 12,
		Hours:        domain.DefaultWeeklyHours(),
		Status:       domain.StatusApproved,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
