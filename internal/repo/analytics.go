package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/bizsite/internal/domain"
)

// AnalyticsRepo defines the persistence operations for analytics events.
type AnalyticsRepo interface {
	// Record inserts one event for a business.
	Record(ctx context.Context, businessID uuid.UUID, eventType string) error

	// Totals returns the number of events per event type recorded at or after since.
	// A zero since counts every event.
	Totals(ctx context.Context, businessID uuid.UUID, since time.Time) (map[string]int64, error)

	// Daily returns per-day, per-type counts at or after since, oldest day first.
	Daily(ctx context.Context, businessID uuid.UUID, since time.Time) ([]domain.DailyCount, error)

	// CountByBusiness returns the total number of events recorded for each business
	// that has at least one event.
	CountByBusiness(ctx context.Context) (map[uuid.UUID]int64, error)
}

// pgAnalyticsRepo is the Postgres implementation of AnalyticsRepo.
type pgAnalyticsRepo struct {
	db db
}

// NewAnalyticsRepo constructs an AnalyticsRepo backed by the provided db connection.
func NewAnalyticsRepo(db db) AnalyticsRepo {
	return &pgAnalyticsRepo{db: db}
}

// Record inserts a single analytics event.
// A business_id with no matching business fails the foreign key and is reported
// as domain.ErrNotFound.
func (r *pgAnalyticsRepo) Record(ctx context.Context, businessID uuid.UUID, eventType string) error {
	const q = `
		INSERT INTO analytics_events (business_id, event_type)
		VALUES (@business_id, @event_type)`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"business_id": businessID,
		"event_type":  eventType,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("repo.AnalyticsRepo.Record: business %s: %w", businessID, domain.ErrNotFound)
		}
		return fmt.Errorf("repo.AnalyticsRepo.Record: %w", err)
	}
	return nil
}

// Totals counts events by type.
func (r *pgAnalyticsRepo) Totals(ctx context.Context, businessID uuid.UUID, since time.Time) (map[string]int64, error) {
	const q = `
		SELECT event_type, count(*)
		FROM analytics_events
		WHERE business_id = @business_id
		  AND (@since::timestamptz IS NULL OR created_at >= @since)
		GROUP BY event_type`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"business_id": businessID,
		"since":       sinceArg(since),
	})
	if err != nil {
		return nil, fmt.Errorf("repo.AnalyticsRepo.Totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int64)
	for rows.Next() {
		var (
			eventType string
			n         int64
		)
		if err := rows.Scan(&eventType, &n); err != nil {
			return nil, fmt.Errorf("repo.AnalyticsRepo.Totals: scan: %w", err)
		}
		totals[eventType] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.AnalyticsRepo.Totals: rows: %w", err)
	}
	return totals, nil
}

// Daily counts events by UTC day and type.
func (r *pgAnalyticsRepo) Daily(ctx context.Context, businessID uuid.UUID, since time.Time) ([]domain.DailyCount, error) {
	const q = `
		SELECT (created_at AT TIME ZONE 'UTC')::date AS day, event_type, count(*)
		FROM analytics_events
		WHERE business_id = @business_id
		  AND (@since::timestamptz IS NULL OR created_at >= @since)
		GROUP BY day, event_type
		ORDER BY day, event_type`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"business_id": businessID,
		"since":       sinceArg(since),
	})
	if err != nil {
		return nil, fmt.Errorf("repo.AnalyticsRepo.Daily: %w", err)
	}
	defer rows.Close()

	counts := []domain.DailyCount{}
	for rows.Next() {
		var (
			day pgtype.Date
			c   domain.DailyCount
		)
		if err := rows.Scan(&day, &c.EventType, &c.Count); err != nil {
			return nil, fmt.Errorf("repo.AnalyticsRepo.Daily: scan: %w", err)
		}
		c.Day = day.Time
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.AnalyticsRepo.Daily: rows: %w", err)
	}
	return counts, nil
}

// CountByBusiness returns event totals keyed by business ID.
func (r *pgAnalyticsRepo) CountByBusiness(ctx context.Context) (map[uuid.UUID]int64, error) {
	const q = `
		SELECT business_id, count(*)
		FROM analytics_events
		GROUP BY business_id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.AnalyticsRepo.CountByBusiness: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int64)
	for rows.Next() {
		var (
			id pgtype.UUID
			n  int64
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("repo.AnalyticsRepo.CountByBusiness: scan: %w", err)
		}
		counts[uuid.UUID(id.Bytes)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.AnalyticsRepo.CountByBusiness: rows: %w", err)
	}
	return counts, nil
}

// sinceArg converts the "no lower bound" zero time into SQL NULL.
func sinceArg(since time.Time) *time.Time {
	if since.IsZero() {
		return nil
	}
	return &since
}
