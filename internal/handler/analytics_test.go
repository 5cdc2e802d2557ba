package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/bizsite/internal/domain"
	"github.com/pkordes/bizsite/internal/handler"
)

func TestTrackEvent_AlwaysSucceeds(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantID   string
		wantType string
	}{
		{"valid event", `{"business_id":"` + "3f1c1f4e-0000-4000-8000-000000000001" + `","event_type":"call_click"}`, "3f1c1f4e-0000-4000-8000-000000000001", "call_click"},
		{"unknown type still 200", `{"business_id":"x","event_type":"bogus"}`, "x", "bogus"},
		{"malformed body still 200", `{not json`, "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotID, gotType string
			svc := &mockAnalyticsServicer{
				track: func(_ context.Context, id, eventType string) {
					gotID, gotType = id, eventType
				},
			}
			req := httptest.NewRequest(http.MethodPost, "/api/analytics/track", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rec := serve(newHTTPHandler(handler.Deps{Analytics: svc}), req)

			require.Equal(t, http.StatusOK, rec.Code)
			var resp handler.TrackResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.True(t, resp.Success)
			assert.Equal(t, tc.wantID, gotID)
			assert.Equal(t, tc.wantType, gotType)
		})
	}
}

func TestTrackEvent_FromTenantHost(t *testing.T) {
	called := false
	svc := &mockAnalyticsServicer{
		track: func(_ context.Context, _, _ string) { called = true },
	}
	req := httptest.NewRequest(http.MethodPost, "/api/analytics/track",
		strings.NewReader(`{"business_id":"x","event_type":"page_view"}`))
	req.Host = "joes-pizza.example.com"

	rec := serve(newHTTPHandler(handler.Deps{Analytics: svc, Businesses: &mockBusinessServicer{}}), req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestGetAnalytics_200(t *testing.T) {
	id := uuid.New()
	var gotPeriod domain.Period
	svc := &mockAnalyticsServicer{
		stats: func(_ context.Context, businessID uuid.UUID, period domain.Period) (domain.AnalyticsReport, error) {
			assert.Equal(t, id, businessID)
			gotPeriod = period
			return domain.AnalyticsReport{
				BusinessID:   businessID,
				BusinessName: "Joe's Pizza",
				Period:       period,
				Totals:       domain.ZeroFilled(map[string]int64{"page_view": 3}),
				Breakdown:    []domain.DailyCount{},
				Overall:      domain.ZeroFilled(map[string]int64{"page_view": 10}),
			}, nil
		},
	}

	rec := serve(newHTTPHandler(handler.Deps{Analytics: svc}),
		httptest.NewRequest(http.MethodGet, "/api/analytics/"+id.String()+"?period=week", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PeriodWeek, gotPeriod)

	var resp domain.AnalyticsReport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.EqualValues(t, 3, resp.Totals["page_view"])
	assert.EqualValues(t, 0, resp.Totals["call_click"])
	assert.EqualValues(t, 10, resp.Overall["page_view"])
}

func TestGetAnalytics_InvalidPeriodFallsBackToAll(t *testing.T) {
	var gotPeriod domain.Period
	svc := &mockAnalyticsServicer{
		stats: func(_ context.Context, _ uuid.UUID, period domain.Period) (domain.AnalyticsReport, error) {
			gotPeriod = period
			return domain.AnalyticsReport{}, nil
		},
	}
	rec := serve(newHTTPHandler(handler.Deps{Analytics: svc}),
		httptest.NewRequest(http.MethodGet, "/api/analytics/"+uuid.NewString()+"?period=decade", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PeriodAll, gotPeriod)
}

func TestGetAnalytics_404(t *testing.T) {
	svc := &mockAnalyticsServicer{
		stats: func(_ context.Context, _ uuid.UUID, _ domain.Period) (domain.AnalyticsReport, error) {
			return domain.AnalyticsReport{}, domain.ErrNotFound
		},
	}
	rec := serve(newHTTPHandler(handler.Deps{Analytics: svc}),
		httptest.NewRequest(http.MethodGet, "/api/analytics/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOwnerAnalytics_200(t *testing.T) {
	svc := &mockAnalyticsServicer{
		ownerSummary: func(_ context.Context, email string) ([]domain.BusinessAnalytics, error) {
			assert.Equal(t, "owner@example.com", email)
			return []domain.BusinessAnalytics{{BusinessID: uuid.New(), BusinessName: "A", Slug: "a-shop"}}, nil
		},
	}
	rec := serve(newHTTPHandler(handler.Deps{Analytics: svc}),
		httptest.NewRequest(http.MethodGet, "/api/owners/analytics?email=owner@example.com", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data []domain.BusinessAnalytics `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "a-shop", resp.Data[0].Slug)
}
