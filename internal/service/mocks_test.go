package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/bizsite/internal/domain"
	"github.com/pkordes/bizsite/internal/repo"
)

// mockBusinessRepo is a hand-written test double for repo.BusinessRepo.
// Each method is a function field; set only the ones your test needs.
type mockBusinessRepo struct {
	create            func(ctx context.Context, b domain.Business) (domain.Business, error)
	getByID           func(ctx context.Context, id uuid.UUID) (domain.Business, error)
	getBySlug         func(ctx context.Context, slug string) (domain.Business, error)
	getApprovedBySlug func(ctx context.Context, slug string) (domain.Business, error)
	slugExists        func(ctx context.Context, slug string) (bool, error)
	listByStatus      func(ctx context.Context, status domain.BusinessStatus, p domain.PaginationParams) ([]domain.Business, int64, error)
	listByOwner       func(ctx context.Context, email string) ([]domain.Business, error)
	updateSlug        func(ctx context.Context, id uuid.UUID, slug string) (domain.Business, error)
	updateStatus      func(ctx context.Context, id uuid.UUID, status domain.BusinessStatus) (domain.Business, error)
	approveAllPending func(ctx context.Context) ([]domain.Business, error)
	existingNames     func(ctx context.Context, names []string) (map[string]struct{}, error)
}

func (m *mockBusinessRepo) Create(ctx context.Context, b domain.Business) (domain.Business, error) {
	return m.create(ctx, b)
}
func (m *mockBusinessRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Business, error) {
	return m.getByID(ctx, id)
}
func (m *mockBusinessRepo) GetBySlug(ctx context.Context, slug string) (domain.Business, error) {
	return m.getBySlug(ctx, slug)
}
func (m *mockBusinessRepo) GetApprovedBySlug(ctx context.Context, slug string) (domain.Business, error) {
	return m.getApprovedBySlug(ctx, slug)
}
func (m *mockBusinessRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	return m.slugExists(ctx, slug)
}
func (m *mockBusinessRepo) ListByStatus(ctx context.Context, status domain.BusinessStatus, p domain.PaginationParams) ([]domain.Business, int64, error) {
	return m.listByStatus(ctx, status, p)
}
func (m *mockBusinessRepo) ListByOwner(ctx context.Context, email string) ([]domain.Business, error) {
	return m.listByOwner(ctx, email)
}
func (m *mockBusinessRepo) UpdateSlug(ctx context.Context, id uuid.UUID, slug string) (domain.Business, error) {
	return m.updateSlug(ctx, id, slug)
}
func (m *mockBusinessRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BusinessStatus) (domain.Business, error) {
	return m.updateStatus(ctx, id, status)
}
func (m *mockBusinessRepo) ApproveAllPending(ctx context.Context) ([]domain.Business, error) {
	return m.approveAllPending(ctx)
}
func (m *mockBusinessRepo) ExistingNames(ctx context.Context, names []string) (map[string]struct{}, error) {
	return m.existingNames(ctx, names)
}

// compile-time check: mockBusinessRepo must satisfy repo.BusinessRepo.
var _ repo.BusinessRepo = (*mockBusinessRepo)(nil)

// mockAnalyticsRepo is a hand-written test double for repo.AnalyticsRepo.
type mockAnalyticsRepo struct {
	record          func(ctx context.Context, businessID uuid.UUID, eventType string) error
	totals          func(ctx context.Context, businessID uuid.UUID, since time.Time) (map[string]int64, error)
	daily           func(ctx context.Context, businessID uuid.UUID, since time.Time) ([]domain.DailyCount, error)
	countByBusiness func(ctx context.Context) (map[uuid.UUID]int64, error)
}

func (m *mockAnalyticsRepo) Record(ctx context.Context, businessID uuid.UUID, eventType string) error {
	return m.record(ctx, businessID, eventType)
}
func (m *mockAnalyticsRepo) Totals(ctx context.Context, businessID uuid.UUID, since time.Time) (map[string]int64, error) {
	return m.totals(ctx, businessID, since)
}
func (m *mockAnalyticsRepo) Daily(ctx context.Context, businessID uuid.UUID, since time.Time) ([]domain.DailyCount, error) {
	return m.daily(ctx, businessID, since)
}
func (m *mockAnalyticsRepo) CountByBusiness(ctx context.Context) (map[uuid.UUID]int64, error) {
	return m.countByBusiness(ctx)
}

var _ repo.AnalyticsRepo = (*mockAnalyticsRepo)(nil)
