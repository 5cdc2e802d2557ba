package service_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/bizsite/internal/domain"
	"github.com/pkordes/bizsite/internal/service"
)

func validBusiness() domain.Business {
	return domain.Business{
		OwnerEmail:   "owner@example.com",
		BusinessName: "My Cool Shop 123",
		Category:     "retail",
	}
}

// echoCreate returns a create func that stores whatever it is given.
func echoCreate(got *[]string) func(context.Context, domain.Business) (domain.Business, error) {
	return func(_ context.Context, b domain.Business) (domain.Business, error) {
		*got = append(*got, b.Slug)
		b.ID = uuid.New()
		return b, nil
	}
}

// ---- Create ----------------------------------------------------------------

func TestBusinessService_Create_OK(t *testing.T) {
	var slugs []string
	svc := service.NewBusinessService(&mockBusinessRepo{
		slugExists: func(_ context.Context, _ string) (bool, error) { return false, nil },
		create:     echoCreate(&slugs),
	})

	got, err := svc.Create(context.Background(), validBusiness())

	require.NoError(t, err)
	assert.Equal(t, "mycoolshop123", got.Slug)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, []string{"mycoolshop123"}, slugs)
}

func TestBusinessService_Create_ForcesPending(t *testing.T) {
	var slugs []string
	svc := service.NewBusinessService(&mockBusinessRepo{
		slugExists: func(_ context.Context, _ string) (bool, error) { return false, nil },
		create:     echoCreate(&slugs),
	})

	input := validBusiness()
	input.Status = domain.StatusApproved

	got, err := svc.Create(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)
}

func TestBusinessService_Create_TakenSlugGetsSuffix(t *testing.T) {
	var slugs []string
	svc := service.NewBusinessService(&mockBusinessRepo{
		slugExists: func(_ context.Context, s string) (bool, error) { return s == "mycoolshop123", nil },
		create:     echoCreate(&slugs),
	})

	got, err := svc.Create(context.Background(), validBusiness())

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^mycoolshop123[0-9a-f]{4}$`), got.Slug)
}

func TestBusinessService_Create_ReservedNameGetsSuffix(t *testing.T) {
	var slugs []string
	svc := service.NewBusinessService(&mockBusinessRepo{
		slugExists: func(_ context.Context, _ string) (bool, error) { return false, nil },
		create:     echoCreate(&slugs),
	}, "www", "API")

	input := validBusiness()
	input.BusinessName = "API"

	got, err := svc.Create(context.Background(), input)

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^api[0-9a-f]{4}$`), got.Slug)
	assert.Equal(t, []string{got.Slug}, slugs)
}

func TestBusinessService_Create_EmptySlugFallback(t *testing.T) {
	var slugs []string
	svc := service.NewBusinessService(&mockBusinessRepo{
		slugExists: func(_ context.Context, _ string) (bool, error) { return false, nil },
		create:     echoCreate(&slugs),
	})

	input := validBusiness()
	input.BusinessName = "123 !!!"

	got, err := svc.Create(context.Background(), input)

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^business[0-9a-f]{4}$`), got.Slug)
}

func TestBusinessService_Create_ShortSlugPadded(t *testing.T) {
	var slugs []string
	svc := service.NewBusinessService(&mockBusinessRepo{
		slugExists: func(_ context.Context, _ string) (bool, error) { return false, nil },
		create:     echoCreate(&slugs),
	})

	input := validBusiness()
	input.BusinessName = "Ab"

	got, err := svc.Create(context.Background(), input)

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^ab[0-9a-f]{4}$`), got.Slug)
}

func TestBusinessService_Create_RetriesOnConflict(t *testing.T) {
	var slugs []string
	svc := service.NewBusinessService(&mockBusinessRepo{
		slugExists: func(_ context.Context, _ string) (bool, error) { return false, nil },
		create: func(_ context.Context, b domain.Business) (domain.Business, error) {
			slugs = append(slugs, b.Slug)
			if len(slugs) < 3 {
				return domain.Business{}, domain.ErrConflict
			}
			return b, nil
		},
	})

	got, err := svc.Create(context.Background(), validBusiness())

	require.NoError(t, err)
	require.Len(t, slugs, 3)
	assert.Equal(t, "mycoolshop123", slugs[0], "first attempt uses the bare slug")
	assert.True(t, strings.HasPrefix(slugs[1], "mycoolshop123"))
	assert.NotEqual(t, slugs[0], slugs[1])
	assert.Equal(t, slugs[2], got.Slug)
}

func TestBusinessService_Create_GivesUpAfterFiveConflicts(t *testing.T) {
	attempts := 0
	svc := service.NewBusinessService(&mockBusinessRepo{
		slugExists: func(_ context.Context, _ string) (bool, error) { return false, nil },
		create: func(_ context.Context, _ domain.Business) (domain.Business, error) {
			attempts++
			return domain.Business{}, domain.ErrConflict
		},
	})

	_, err := svc.Create(context.Background(), validBusiness())

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 5, attempts)
}

func TestBusinessService_Create_RepoError(t *testing.T) {
	dbErr := errors.New("connection refused")
	attempts := 0
	svc := service.NewBusinessService(&mockBusinessRepo{
		slugExists: func(_ context.Context, _ string) (bool, error) { return false, nil },
		create: func(_ context.Context, _ domain.Business) (domain.Business, error) {
			attempts++
			return domain.Business{}, dbErr
		},
	})

	_, err := svc.Create(context.Background(), validBusiness())

	assert.ErrorIs(t, err, dbErr)
	assert.Equal(t, 1, attempts, "non-conflict errors are not retried")
}

func TestBusinessService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *domain.Business)
	}{
		{"empty name", func(b *domain.Business) { b.BusinessName = "   " }},
		{"name too long", func(b *domain.Business) { b.BusinessName = strings.Repeat("a", 201) }},
		{"missing email", func(b *domain.Business) { b.OwnerEmail = "" }},
		{"bad email", func(b *domain.Business) { b.OwnerEmail = "not-an-email" }},
		{"display name email", func(b *domain.Business) { b.OwnerEmail = "Joe <joe@example.com>" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := service.NewBusinessService(&mockBusinessRepo{})
			input := validBusiness()
			tc.mutate(&input)

			_, err := svc.Create(context.Background(), input)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

// ---- UpdateSlug ------------------------------------------------------------

func TestBusinessService_UpdateSlug_OK(t *testing.T) {
	id := uuid.New()
	svc := service.NewBusinessService(&mockBusinessRepo{
		updateSlug: func(_ context.Context, gotID uuid.UUID, s string) (domain.Business, error) {
			assert.Equal(t, id, gotID)
			return domain.Business{ID: gotID, Slug: s}, nil
		},
	})

	got, err := svc.UpdateSlug(context.Background(), id, "  my-shop ")

	require.NoError(t, err)
	assert.Equal(t, "my-shop", got.Slug)
}

func TestBusinessService_UpdateSlug_RejectsUppercase(t *testing.T) {
	svc := service.NewBusinessService(&mockBusinessRepo{})

	_, err := svc.UpdateSlug(context.Background(), uuid.New(), "Aadarsh-Library")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBusinessService_UpdateSlug_Reserved(t *testing.T) {
	svc := service.NewBusinessService(&mockBusinessRepo{}, "www", "api")

	for _, s := range []string{"www", "api"} {
		_, err := svc.UpdateSlug(context.Background(), uuid.New(), s)
		assert.ErrorIs(t, err, domain.ErrConflict, "slug %q", s)
	}
}

func TestBusinessService_UpdateSlug_Invalid(t *testing.T) {
	svc := service.NewBusinessService(&mockBusinessRepo{})

	for _, s := range []string{"ab", "has space", "under_score", strings.Repeat("a", 51)} {
		_, err := svc.UpdateSlug(context.Background(), uuid.New(), s)
		assert.ErrorIs(t, err, domain.ErrValidation, "slug %q", s)
	}
}

func TestBusinessService_UpdateSlug_Conflict(t *testing.T) {
	svc := service.NewBusinessService(&mockBusinessRepo{
		updateSlug: func(_ context.Context, _ uuid.UUID, _ string) (domain.Business, error) {
			return domain.Business{}, domain.ErrConflict
		},
	})

	_, err := svc.UpdateSlug(context.Background(), uuid.New(), "taken-slug")

	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ---- CheckSubdomain --------------------------------------------------------

func TestBusinessService_CheckSubdomain_Available(t *testing.T) {
	svc := service.NewBusinessService(&mockBusinessRepo{
		slugExists: func(_ context.Context, _ string) (bool, error) { return false, nil },
	})

	got, err := svc.CheckSubdomain(context.Background(), " joes-pizza ")

	require.NoError(t, err)
	assert.Equal(t, domain.SubdomainCheck{Slug: "joes-pizza", Valid: true, Available: true}, got)
}

func TestBusinessService_CheckSubdomain_UppercaseIsInvalid(t *testing.T) {
	svc := service.NewBusinessService(&mockBusinessRepo{
		slugExists: func(_ context.Context, _ string) (bool, error) { return false, nil },
	})

	got, err := svc.CheckSubdomain(context.Background(), "Aadarsh-Library")

	require.NoError(t, err)
	assert.Equal(t, domain.SubdomainCheck{Slug: "Aadarsh-Library", Suggestion: "aadarsh-library"}, got)
}

func TestBusinessService_CheckSubdomain_Reserved(t *testing.T) {
	svc := service.NewBusinessService(&mockBusinessRepo{
		slugExists: func(_ context.Context, _ string) (bool, error) { return false, nil },
	}, "www", "api")

	got, err := svc.CheckSubdomain(context.Background(), "www")

	require.NoError(t, err)
	assert.True(t, got.Valid)
	assert.False(t, got.Available)
	assert.Regexp(t, regexp.MustCompile(`^www[0-9a-f]{4}$`), got.Suggestion)
}

func TestBusinessService_CheckSubdomain_TakenSuggestsAlternative(t *testing.T) {
	svc := service.NewBusinessService(&mockBusinessRepo{
		slugExists: func(_ context.Context, s string) (bool, error) { return s == "joes-pizza", nil },
	})

	got, err := svc.CheckSubdomain(context.Background(), "joes-pizza")

	require.NoError(t, err)
	assert.True(t, got.Valid)
	assert.False(t, got.Available)
	assert.Regexp(t, regexp.MustCompile(`^joes-pizza[0-9a-f]{4}$`), got.Suggestion)
}

func TestBusinessService_CheckSubdomain_InvalidSuggestsFix(t *testing.T) {
	svc := service.NewBusinessService(&mockBusinessRepo{
		slugExists: func(_ context.Context, _ string) (bool, error) { return false, nil },
	})

	got, err := svc.CheckSubdomain(context.Background(), "Joes Pizza!")

	require.NoError(t, err)
	assert.False(t, got.Valid)
	assert.False(t, got.Available)
	assert.Equal(t, "joes-pizza", got.Suggestion)
}

func TestBusinessService_CheckSubdomain_RepoError(t *testing.T) {
	dbErr := errors.New("boom")
	svc := service.NewBusinessService(&mockBusinessRepo{
		slugExists: func(_ context.Context, _ string) (bool, error) { return false, dbErr },
	})

	_, err := svc.CheckSubdomain(context.Background(), "valid-slug")

	assert.ErrorIs(t, err, dbErr)
}

// ---- Status transitions & listing ------------------------------------------

func TestBusinessService_ApproveReject(t *testing.T) {
	var got []domain.BusinessStatus
	svc := service.NewBusinessService(&mockBusinessRepo{
		updateStatus: func(_ context.Context, id uuid.UUID, s domain.BusinessStatus) (domain.Business, error) {
			got = append(got, s)
			return domain.Business{ID: id, Status: s}, nil
		},
	})

	_, err := svc.Approve(context.Background(), uuid.New())
	require.NoError(t, err)
	_, err = svc.Reject(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, []domain.BusinessStatus{domain.StatusApproved, domain.StatusRejected}, got)
}

func TestBusinessService_Approve_NotFound(t *testing.T) {
	svc := service.NewBusinessService(&mockBusinessRepo{
		updateStatus: func(_ context.Context, _ uuid.UUID, _ domain.BusinessStatus) (domain.Business, error) {
			return domain.Business{}, domain.ErrNotFound
		},
	})

	_, err := svc.Approve(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBusinessService_ListApproved_NilBecomesEmpty(t *testing.T) {
	svc := service.NewBusinessService(&mockBusinessRepo{
		listByStatus: func(_ context.Context, s domain.BusinessStatus, _ domain.PaginationParams) ([]domain.Business, int64, error) {
			assert.Equal(t, domain.StatusApproved, s)
			return nil, 0, nil
		},
	})

	got, total, err := svc.ListApproved(context.Background(), domain.PaginationParams{Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Zero(t, total)
}

func TestBusinessService_ListPending(t *testing.T) {
	svc := service.NewBusinessService(&mockBusinessRepo{
		listByStatus: func(_ context.Context, s domain.BusinessStatus, p domain.PaginationParams) ([]domain.Business, int64, error) {
			assert.Equal(t, domain.StatusPending, s)
			assert.Equal(t, 2, p.Page)
			return []domain.Business{{Slug: "a"}}, 21, nil
		},
	})

	got, total, err := svc.ListPending(context.Background(), domain.PaginationParams{Page: 2, Limit: 20})

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(21), total)
}

func TestBusinessService_ListByOwner_RequiresEmail(t *testing.T) {
	svc := service.NewBusinessService(&mockBusinessRepo{})

	_, err := svc.ListByOwner(context.Background(), " ")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBusinessService_PublishedBySlug_Lowercases(t *testing.T) {
	svc := service.NewBusinessService(&mockBusinessRepo{
		getApprovedBySlug: func(_ context.Context, s string) (domain.Business, error) {
			assert.Equal(t, "shop1", s)
			return domain.Business{Slug: s}, nil
		},
	})

	got, err := svc.PublishedBySlug(context.Background(), "SHOP1")

	require.NoError(t, err)
	assert.Equal(t, "shop1", got.Slug)
}

func TestBusinessService_ApproveAllPending(t *testing.T) {
	svc := service.NewBusinessService(&mockBusinessRepo{
		approveAllPending: func(_ context.Context) ([]domain.Business, error) { return nil, nil },
	})

	got, err := svc.ApproveAllPending(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.Business{}, got)
}
