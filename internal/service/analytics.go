package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/bizsite/internal/domain"
	"github.com/pkordes/bizsite/internal/repo"
)

// ownerSummaryConcurrency bounds the per-business queries of OwnerSummary.
const ownerSummaryConcurrency = 4

// AnalyticsService records micro-site interactions and builds reports.
// Tracking is best effort: a failure to record is logged, never surfaced.
type AnalyticsService struct {
	businesses repo.BusinessRepo
	events     repo.AnalyticsRepo
	log        *slog.Logger
	now        func() time.Time
}

// NewAnalyticsService constructs an AnalyticsService. A nil logger uses slog.Default().
func NewAnalyticsService(businesses repo.BusinessRepo, events repo.AnalyticsRepo, log *slog.Logger) *AnalyticsService {
	if log == nil {
		log = slog.Default()
	}
	return &AnalyticsService{businesses: businesses, events: events, log: log, now: time.Now}
}

// Track records one event. Unknown event types, malformed business IDs and
// storage failures are logged at warn level and dropped.
func (s *AnalyticsService) Track(ctx context.Context, businessID, eventType string) {
	id, err := uuid.Parse(businessID)
	if err != nil {
		s.log.WarnContext(ctx, "analytics event dropped", "reason", "invalid business id", "business_id", businessID)
		return
	}
	if !domain.KnownEventType(eventType) {
		s.log.WarnContext(ctx, "analytics event dropped", "reason", "unknown event type", "event_type", eventType)
		return
	}
	if err := s.events.Record(ctx, id, eventType); err != nil {
		s.log.WarnContext(ctx, "analytics event dropped", "reason", "record failed", "business_id", id, "error", err)
	}
}

// Stats builds the analytics report of one business for period.
// Returns domain.ErrNotFound if the business does not exist.
func (s *AnalyticsService) Stats(ctx context.Context, businessID uuid.UUID, period domain.Period) (domain.AnalyticsReport, error) {
	b, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		return domain.AnalyticsReport{}, fmt.Errorf("service.AnalyticsService.Stats: %w", err)
	}

	period = domain.ParsePeriod(string(period))
	since := period.Since(s.now())

	var (
		totals, overall map[string]int64
		breakdown       []domain.DailyCount
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.events.Totals(gctx, businessID, since)
		return err
	})
	g.Go(func() error {
		var err error
		breakdown, err = s.events.Daily(gctx, businessID, since)
		return err
	})
	g.Go(func() error {
		var err error
		overall, err = s.events.Totals(gctx, businessID, time.Time{})
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.AnalyticsReport{}, fmt.Errorf("service.AnalyticsService.Stats: %w", err)
	}
	if breakdown == nil {
		breakdown = []domain.DailyCount{}
	}

	return domain.AnalyticsReport{
		BusinessID:   b.ID,
		BusinessName: b.BusinessName,
		Period:       period,
		Totals:       domain.ZeroFilled(totals),
		Breakdown:    breakdown,
		Overall:      domain.ZeroFilled(overall),
	}, nil
}

// OwnerSummary returns all-time totals for every business of an owner.
// Per-business queries run concurrently; the first failure aborts the summary.
func (s *AnalyticsService) OwnerSummary(ctx context.Context, email string) ([]domain.BusinessAnalytics, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	businesses, err := s.businesses.ListByOwner(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("service.AnalyticsService.OwnerSummary: %w", err)
	}

	out := make([]domain.BusinessAnalytics, len(businesses))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ownerSummaryConcurrency)
	for i, b := range businesses {
		g.Go(func() error {
			totals, err := s.events.Totals(gctx, b.ID, time.Time{})
			if err != nil {
				return fmt.Errorf("business %s: %w", b.ID, err)
			}
			out[i] = domain.BusinessAnalytics{
				BusinessID:   b.ID,
				BusinessName: b.BusinessName,
				Slug:         b.Slug,
				Category:     b.Category,
				Totals:       domain.ZeroFilled(totals),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("service.AnalyticsService.OwnerSummary: %w", err)
	}
	return out, nil
}
