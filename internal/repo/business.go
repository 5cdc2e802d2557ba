package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/bizsite/internal/domain"
)

// BusinessRepo defines the persistence operations for Businesses.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type BusinessRepo interface {
	// Create inserts a new business and returns the persisted record.
	// Returns domain.ErrConflict if the slug is already taken.
	Create(ctx context.Context, b domain.Business) (domain.Business, error)

	// GetByID retrieves a business by its UUID primary key.
	// Returns domain.ErrNotFound if no business with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Business, error)

	// GetBySlug retrieves a business by slug regardless of status.
	GetBySlug(ctx context.Context, slug string) (domain.Business, error)

	// GetApprovedBySlug retrieves an approved business by slug.
	// Pending and rejected businesses are reported as domain.ErrNotFound.
	GetApprovedBySlug(ctx context.Context, slug string) (domain.Business, error)

	// SlugExists reports whether any business already uses slug.
	SlugExists(ctx context.Context, slug string) (bool, error)

	// ListByStatus returns one page of businesses with the given status,
	// newest first, and the total number of businesses with that status.
	ListByStatus(ctx context.Context, status domain.BusinessStatus, p domain.PaginationParams) ([]domain.Business, int64, error)

	// ListByOwner returns all businesses owned by email (case-insensitive), newest first.
	ListByOwner(ctx context.Context, email string) ([]domain.Business, error)

	// UpdateSlug changes the slug of a business.
	// Returns domain.ErrNotFound or domain.ErrConflict.
	UpdateSlug(ctx context.Context, id uuid.UUID, slug string) (domain.Business, error)

	// UpdateStatus changes the approval status of a business.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BusinessStatus) (domain.Business, error)

	// ApproveAllPending approves every pending business and returns them.
	ApproveAllPending(ctx context.Context) ([]domain.Business, error)

	// ExistingNames returns the subset of names (compared lowercase) that are
	// already used as a business name. Keys of the result are lowercase.
	ExistingNames(ctx context.Context, names []string) (map[string]struct{}, error)
}

// pgBusinessRepo is the Postgres implementation of BusinessRepo.
type pgBusinessRepo struct {
	db db
}

// NewBusinessRepo constructs a BusinessRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewBusinessRepo(db db) BusinessRepo {
	return &pgBusinessRepo{db: db}
}

const businessSlugConstraint = "businesses_slug_key"

const businessColumns = `
	id, owner_email, business_name, slug, category, description, address, city, state,
	country, postal_code, phone_number, website, google_map_link, google_place_id,
	rating, total_ratings, business_hours, status, created_at, updated_at`

// Create inserts a new business row and returns the full persisted record.
func (r *pgBusinessRepo) Create(ctx context.Context, b domain.Business) (domain.Business, error) {
	q := `
		INSERT INTO businesses (
			owner_email, business_name, slug, category, description, address, city, state,
			country, postal_code, phone_number, website, google_map_link, google_place_id,
			rating, total_ratings, business_hours, status)
		VALUES (
			@owner_email, @business_name, @slug, @category, @description, @address, @city, @state,
			@country, @postal_code, @phone_number, @website, @google_map_link, @google_place_id,
			@rating, @total_ratings, @business_hours, @status)
		RETURNING` + businessColumns

	hours, err := marshalHours(b.Hours)
	if err != nil {
		return domain.Business{}, fmt.Errorf("repo.BusinessRepo.Create: %w", err)
	}
	status := b.Status
	if status == "" {
		status = domain.StatusPending
	}

	args := pgx.NamedArgs{
		"owner_email":     b.OwnerEmail,
		"business_name":   b.BusinessName,
		"slug":            b.Slug,
		"category":        b.Category,
		"description":     b.Description,
		"address":         b.Address,
		"city":            b.City,
		"state":           b.State,
		"country":         b.Country,
		"postal_code":     b.PostalCode,
		"phone_number":    b.PhoneNumber,
		"website":         b.Website,
		"google_map_link": b.GoogleMapLink,
		"google_place_id": b.GooglePlaceID,
		"rating":          b.Rating, // nil becomes NULL
		"total_ratings":   b.TotalRatings,
		"business_hours":  hours,
		"status":          string(status),
	}

	result, err := scanBusiness(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if isUniqueViolation(err, businessSlugConstraint) {
			return domain.Business{}, fmt.Errorf("repo.BusinessRepo.Create: slug %q: %w", b.Slug, domain.ErrConflict)
		}
		return domain.Business{}, fmt.Errorf("repo.BusinessRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a business by primary key.
func (r *pgBusinessRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Business, error) {
	q := `SELECT` + businessColumns + ` FROM businesses WHERE id = @id`

	result, err := scanBusiness(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Business{}, fmt.Errorf("repo.BusinessRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetBySlug retrieves a business by slug.
func (r *pgBusinessRepo) GetBySlug(ctx context.Context, slug string) (domain.Business, error) {
	q := `SELECT` + businessColumns + ` FROM businesses WHERE slug = @slug`

	result, err := scanBusiness(r.db.QueryRow(ctx, q, pgx.NamedArgs{"slug": slug}))
	if err != nil {
		return domain.Business{}, fmt.Errorf("repo.BusinessRepo.GetBySlug: %w", err)
	}
	return result, nil
}

// GetApprovedBySlug retrieves an approved business by slug.
func (r *pgBusinessRepo) GetApprovedBySlug(ctx context.Context, slug string) (domain.Business, error) {
	q := `SELECT` + businessColumns + ` FROM businesses WHERE slug = @slug AND status = 'approved'`

	result, err := scanBusiness(r.db.QueryRow(ctx, q, pgx.NamedArgs{"slug": slug}))
	if err != nil {
		return domain.Business{}, fmt.Errorf("repo.BusinessRepo.GetApprovedBySlug: %w", err)
	}
	return result, nil
}

// SlugExists reports whether slug is already in use.
func (r *pgBusinessRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM businesses WHERE slug = @slug)`

	var exists bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"slug": slug}).Scan(&exists); err != nil {
		return false, fmt.Errorf("repo.BusinessRepo.SlugExists: %w", err)
	}
	return exists, nil
}

// ListByStatus returns one page of businesses with the given status.
func (r *pgBusinessRepo) ListByStatus(ctx context.Context, status domain.BusinessStatus, p domain.PaginationParams) ([]domain.Business, int64, error) {
	const countQ = `SELECT count(*) FROM businesses WHERE status = @status`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"status": string(status)}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.BusinessRepo.ListByStatus: count: %w", err)
	}

	q := `SELECT` + businessColumns + `
		FROM businesses
		WHERE status = @status
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"status": string(status),
		"limit":  p.Limit,
		"offset": p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.BusinessRepo.ListByStatus: %w", err)
	}

	businesses, err := collectBusinesses(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.BusinessRepo.ListByStatus: %w", err)
	}
	return businesses, total, nil
}

// ListByOwner returns all businesses of an owner.
func (r *pgBusinessRepo) ListByOwner(ctx context.Context, email string) ([]domain.Business, error) {
	q := `SELECT` + businessColumns + `
		FROM businesses
		WHERE lower(owner_email) = lower(@email)
		ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"email": email})
	if err != nil {
		return nil, fmt.Errorf("repo.BusinessRepo.ListByOwner: %w", err)
	}

	businesses, err := collectBusinesses(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.BusinessRepo.ListByOwner: %w", err)
	}
	return businesses, nil
}

// UpdateSlug overwrites the slug of a business.
func (r *pgBusinessRepo) UpdateSlug(ctx context.Context, id uuid.UUID, slug string) (domain.Business, error) {
	q := `
		UPDATE businesses
		SET slug       = @slug,
		    updated_at = now()
		WHERE id = @id
		RETURNING` + businessColumns

	result, err := scanBusiness(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "slug": slug}))
	if err != nil {
		if isUniqueViolation(err, businessSlugConstraint) {
			return domain.Business{}, fmt.Errorf("repo.BusinessRepo.UpdateSlug: slug %q: %w", slug, domain.ErrConflict)
		}
		return domain.Business{}, fmt.Errorf("repo.BusinessRepo.UpdateSlug: %w", err)
	}
	return result, nil
}

// UpdateStatus overwrites the approval status of a business.
func (r *pgBusinessRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BusinessStatus) (domain.Business, error) {
	q := `
		UPDATE businesses
		SET status     = @status,
		    updated_at = now()
		WHERE id = @id
		RETURNING` + businessColumns

	result, err := scanBusiness(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "status": string(status)}))
	if err != nil {
		return domain.Business{}, fmt.Errorf("repo.BusinessRepo.UpdateStatus: %w", err)
	}
	return result, nil
}

// ApproveAllPending flips every pending business to approved.
func (r *pgBusinessRepo) ApproveAllPending(ctx context.Context) ([]domain.Business, error) {
	q := `
		UPDATE businesses
		SET status     = 'approved',
		    updated_at = now()
		WHERE status = 'pending'
		RETURNING` + businessColumns

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.BusinessRepo.ApproveAllPending: %w", err)
	}

	businesses, err := collectBusinesses(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.BusinessRepo.ApproveAllPending: %w", err)
	}
	return businesses, nil
}

// ExistingNames returns the lowercase names from names that match an existing business.
func (r *pgBusinessRepo) ExistingNames(ctx context.Context, names []string) (map[string]struct{}, error) {
	out := make(map[string]struct{})
	if len(names) == 0 {
		return out, nil
	}

	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(n)
	}

	const q = `
		SELECT DISTINCT lower(business_name)
		FROM businesses
		WHERE lower(business_name) = ANY(@names)`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"names": lowered})
	if err != nil {
		return nil, fmt.Errorf("repo.BusinessRepo.ExistingNames: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("repo.BusinessRepo.ExistingNames: scan: %w", err)
		}
		out[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.BusinessRepo.ExistingNames: rows: %w", err)
	}
	return out, nil
}

// collectBusinesses drains rows into a non-nil slice and closes them.
func collectBusinesses(rows pgx.Rows) ([]domain.Business, error) {
	defer rows.Close()

	businesses := []domain.Business{}
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		businesses = append(businesses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return businesses, nil
}

// scanBusiness maps a single database row into a domain.Business.
// It handles the UUID, nullable rating and JSONB hours conversions.
func scanBusiness(s scanner) (domain.Business, error) {
	var (
		b      domain.Business
		id     pgtype.UUID
		rating pgtype.Float8
		hours  []byte
		status string
	)

	err := s.Scan(
		&id, &b.OwnerEmail, &b.BusinessName, &b.Slug, &b.Category, &b.Description,
		&b.Address, &b.City, &b.State, &b.Country, &b.PostalCode, &b.PhoneNumber,
		&b.Website, &b.GoogleMapLink, &b.GooglePlaceID, &rating, &b.TotalRatings,
		&hours, &status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Business{}, domain.ErrNotFound
		}
		return domain.Business{}, err
	}

	b.ID = uuid.UUID(id.Bytes)
	b.Status = domain.BusinessStatus(status)
	if rating.Valid {
		v := rating.Float64
		b.Rating = &v
	}
	if len(hours) > 0 {
		if err := json.Unmarshal(hours, &b.Hours); err != nil {
			return domain.Business{}, fmt.Errorf("decode business_hours: %w", err)
		}
	}
	return b, nil
}

// marshalHours encodes hours for the JSONB column. Nil hours become NULL.
func marshalHours(h domain.WeeklyHours) ([]byte, error) {
	if h == nil {
		return nil, nil
	}
	b, err := json.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("encode business_hours: %w", err)
	}
	return b, nil
}
