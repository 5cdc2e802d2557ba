package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkordes/bizsite/internal/domain"
	"github.com/pkordes/bizsite/internal/httputil"
)

type trackRequest struct {
	BusinessID string `json:"business_id"`
	EventType  string `json:"event_type"`
}

// TrackResponse is the constant answer of the tracking endpoint.
type TrackResponse struct {
	Success bool `json:"success"`
}

// TrackEvent handles POST /api/analytics/track.
// It always answers 200 {"success":true}; malformed or rejected events are
// dropped by the analytics service and never surface to the page.
func (s *Server) TrackEvent(w http.ResponseWriter, r *http.Request) {
	var req trackRequest
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.log.DebugContext(r.Context(), "analytics event body ignored", "error", err)
		}
	}
	s.analytics.Track(r.Context(), req.BusinessID, req.EventType)
	httputil.JSON(w, http.StatusOK, TrackResponse{Success: true})
}

// GetAnalytics handles GET /api/analytics/{businessId}?period=.
// Unknown periods fall back to "all".
func (s *Server) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "businessId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	period, err := queryString(r, "period", false)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	report, err := s.analytics.Stats(r.Context(), id, domain.ParsePeriod(period))
	if err != nil {
		s.writeError(w, r, err, businessNotFound)
		return
	}
	httputil.JSON(w, http.StatusOK, report)
}

// GetOwnerAnalytics handles GET /api/owners/analytics?email=.
func (s *Server) GetOwnerAnalytics(w http.ResponseWriter, r *http.Request) {
	email, err := queryString(r, "email", true)
	if err != nil {
		requestError(w, err.Error())
		return
	}
	summary, err := s.analytics.OwnerSummary(r.Context(), email)
	if err != nil {
		s.writeError(w, r, err, businessNotFound)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]any{"data": summary})
}
