// Package service contains the business logic for the business site builder.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/pkordes/bizsite/internal/domain"
	"github.com/pkordes/bizsite/internal/repo"
	"github.com/pkordes/bizsite/internal/slug"
)

const (
	// maxBusinessNameLength caps business names, counted in runes.
	maxBusinessNameLength = 200

	// createAttempts bounds how often Create retries after a slug collision.
	createAttempts = 5

	// fallbackSlugPrefix is used when a name has no usable characters.
	fallbackSlugPrefix = "business"
)

// BusinessService implements business logic for Business operations.
// Its main job is assigning each new business a unique slug, which doubles as
// the subdomain label of its micro-site.
type BusinessService struct {
	businesses repo.BusinessRepo
	reserved   map[string]struct{}
	retryDelay time.Duration
}

// NewBusinessService constructs a BusinessService backed by the provided BusinessRepo.
// Reserved labels address the main site and are never handed out as slugs;
// pass the same list the tenant resolver is built with.
func NewBusinessService(r repo.BusinessRepo, reserved ...string) *BusinessService {
	set := make(map[string]struct{}, len(reserved))
	for _, l := range reserved {
		if l = strings.ToLower(strings.TrimSpace(l)); l != "" {
			set[l] = struct{}{}
		}
	}
	return &BusinessService{businesses: r, reserved: set, retryDelay: 10 * time.Millisecond}
}

// Create validates a business, derives its slug from the business name, and
// persists it with status pending.
//
// A name that slugifies to nothing gets "business" plus a random suffix. A
// slug that is already taken or reserved gets a random suffix. If the insert still loses a
// race on the unique slug, a fresh suffix is tried, up to five attempts in total.
// Returns domain.ErrValidation if input violates business rules.
func (s *BusinessService) Create(ctx context.Context, b domain.Business) (domain.Business, error) {
	b.BusinessName = strings.TrimSpace(b.BusinessName)
	b.OwnerEmail = strings.TrimSpace(b.OwnerEmail)
	if err := validateBusiness(b); err != nil {
		return domain.Business{}, err
	}
	b.Status = domain.StatusPending

	base := baseSlug(b.BusinessName)
	candidate := base
	taken, err := s.taken(ctx, candidate)
	if err != nil {
		return domain.Business{}, fmt.Errorf("service.BusinessService.Create: %w", err)
	}
	if taken {
		candidate = slug.WithSuffix(base, slug.RandomSuffix())
	}

	backoff := retry.WithMaxRetries(createAttempts-1, retry.NewConstant(s.retryDelay))

	var created domain.Business
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		b.Slug = candidate
		result, err := s.businesses.Create(ctx, b)
		if errors.Is(err, domain.ErrConflict) {
			candidate = slug.WithSuffix(base, slug.RandomSuffix())
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}
		created = result
		return nil
	})
	if err != nil {
		return domain.Business{}, fmt.Errorf("service.BusinessService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single business by ID.
// Returns domain.ErrNotFound if no business with that ID exists.
func (s *BusinessService) GetByID(ctx context.Context, id uuid.UUID) (domain.Business, error) {
	result, err := s.businesses.GetByID(ctx, id)
	if err != nil {
		return domain.Business{}, fmt.Errorf("service.BusinessService.GetByID: %w", err)
	}
	return result, nil
}

// PublishedBySlug returns the approved business served under label.
// Pending, rejected and unknown slugs all report domain.ErrNotFound.
func (s *BusinessService) PublishedBySlug(ctx context.Context, label string) (domain.Business, error) {
	result, err := s.businesses.GetApprovedBySlug(ctx, strings.ToLower(label))
	if err != nil {
		return domain.Business{}, fmt.Errorf("service.BusinessService.PublishedBySlug: %w", err)
	}
	return result, nil
}

// ListApproved returns one page of approved businesses and the total count.
func (s *BusinessService) ListApproved(ctx context.Context, p domain.PaginationParams) ([]domain.Business, int64, error) {
	items, total, err := s.businesses.ListByStatus(ctx, domain.StatusApproved, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.BusinessService.ListApproved: %w", err)
	}
	return nonNilBusinesses(items), total, nil
}

// ListPending returns one page of businesses awaiting review and the total count.
func (s *BusinessService) ListPending(ctx context.Context, p domain.PaginationParams) ([]domain.Business, int64, error) {
	items, total, err := s.businesses.ListByStatus(ctx, domain.StatusPending, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.BusinessService.ListPending: %w", err)
	}
	return nonNilBusinesses(items), total, nil
}

// ListByOwner returns every business registered with the given owner email.
func (s *BusinessService) ListByOwner(ctx context.Context, email string) ([]domain.Business, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	items, err := s.businesses.ListByOwner(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("service.BusinessService.ListByOwner: %w", err)
	}
	return nonNilBusinesses(items), nil
}

// UpdateSlug lets an owner pick a custom subdomain. Surrounding whitespace is
// trimmed; uppercase letters are rejected, not folded.
// Returns domain.ErrValidation if newSlug is not a valid editable slug,
// domain.ErrConflict if it is taken or reserved, domain.ErrNotFound if the
// business is unknown.
func (s *BusinessService) UpdateSlug(ctx context.Context, id uuid.UUID, newSlug string) (domain.Business, error) {
	newSlug = strings.TrimSpace(newSlug)
	if !slug.ValidEditable(newSlug) {
		return domain.Business{}, fmt.Errorf("%w: slug must be 3-50 characters of a-z, 0-9 or hyphen", domain.ErrValidation)
	}
	if s.isReserved(newSlug) {
		return domain.Business{}, fmt.Errorf("service.BusinessService.UpdateSlug: slug %q is reserved: %w", newSlug, domain.ErrConflict)
	}
	result, err := s.businesses.UpdateSlug(ctx, id, newSlug)
	if err != nil {
		return domain.Business{}, fmt.Errorf("service.BusinessService.UpdateSlug: %w", err)
	}
	return result, nil
}

// CheckSubdomain reports whether raw is a valid editable slug that nobody uses.
// It applies the same rules as UpdateSlug, so "Joes-Pizza" is invalid and
// "joes-pizza" is offered instead. Reserved labels are reported as taken.
// When the candidate is not usable, a suggestion is offered if one can be found.
func (s *BusinessService) CheckSubdomain(ctx context.Context, raw string) (domain.SubdomainCheck, error) {
	candidate := strings.TrimSpace(raw)
	check := domain.SubdomainCheck{Slug: candidate}

	if !slug.ValidEditable(candidate) {
		if suggestion := slug.Suggest(raw); suggestion != "" {
			taken, err := s.taken(ctx, suggestion)
			if err != nil {
				return domain.SubdomainCheck{}, fmt.Errorf("service.BusinessService.CheckSubdomain: %w", err)
			}
			if !taken {
				check.Suggestion = suggestion
			}
		}
		return check, nil
	}
	check.Valid = true

	taken, err := s.taken(ctx, candidate)
	if err != nil {
		return domain.SubdomainCheck{}, fmt.Errorf("service.BusinessService.CheckSubdomain: %w", err)
	}
	if !taken {
		check.Available = true
		return check, nil
	}

	alt := slug.WithSuffix(candidate, slug.RandomSuffix())
	taken, err = s.taken(ctx, alt)
	if err != nil {
		return domain.SubdomainCheck{}, fmt.Errorf("service.BusinessService.CheckSubdomain: %w", err)
	}
	if !taken {
		check.Suggestion = alt
	}
	return check, nil
}

// Approve publishes a business on its subdomain.
func (s *BusinessService) Approve(ctx context.Context, id uuid.UUID) (domain.Business, error) {
	result, err := s.businesses.UpdateStatus(ctx, id, domain.StatusApproved)
	if err != nil {
		return domain.Business{}, fmt.Errorf("service.BusinessService.Approve: %w", err)
	}
	return result, nil
}

// Reject marks a business as rejected; it is never served.
func (s *BusinessService) Reject(ctx context.Context, id uuid.UUID) (domain.Business, error) {
	result, err := s.businesses.UpdateStatus(ctx, id, domain.StatusRejected)
	if err != nil {
		return domain.Business{}, fmt.Errorf("service.BusinessService.Reject: %w", err)
	}
	return result, nil
}

// ApproveAllPending approves every pending business and returns them.
func (s *BusinessService) ApproveAllPending(ctx context.Context) ([]domain.Business, error) {
	items, err := s.businesses.ApproveAllPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.BusinessService.ApproveAllPending: %w", err)
	}
	return nonNilBusinesses(items), nil
}

// taken reports whether candidate is reserved or already used by a business.
func (s *BusinessService) taken(ctx context.Context, candidate string) (bool, error) {
	if s.isReserved(candidate) {
		return true, nil
	}
	return s.businesses.SlugExists(ctx, candidate)
}

func (s *BusinessService) isReserved(label string) bool {
	_, ok := s.reserved[strings.ToLower(label)]
	return ok
}

// baseSlug derives the generated slug for a business name. Names without
// usable characters fall back to "business" plus a suffix; results shorter
// than three characters are padded with a suffix.
func baseSlug(name string) string {
	base := slug.Slugify(name)
	switch {
	case base == "":
		return fallbackSlugPrefix + slug.RandomSuffix()
	case len(base) < 3:
		return slug.WithSuffix(base, slug.RandomSuffix())
	}
	return base
}

// validateBusiness enforces the rules for a new business.
//   - BusinessName must be non-empty and at most 200 characters.
//   - OwnerEmail must be a bare, parseable email address.
func validateBusiness(b domain.Business) error {
	if b.BusinessName == "" {
		return fmt.Errorf("%w: business_name is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(b.BusinessName) > maxBusinessNameLength {
		return fmt.Errorf("%w: business_name must be at most %d characters", domain.ErrValidation, maxBusinessNameLength)
	}
	if b.OwnerEmail == "" {
		return fmt.Errorf("%w: owner_email is required", domain.ErrValidation)
	}
	addr, err := mail.ParseAddress(b.OwnerEmail)
	if err != nil || addr.Address != b.OwnerEmail {
		return fmt.Errorf("%w: owner_email is not a valid email address", domain.ErrValidation)
	}
	return nil
}

// nonNilBusinesses guarantees callers can range over and encode the result as [].
func nonNilBusinesses(items []domain.Business) []domain.Business {
	if items == nil {
		return []domain.Business{}
	}
	return items
}
