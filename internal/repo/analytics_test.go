package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/bizsite/internal/domain"
)

func TestAnalyticsRepo_RecordAndTotals(t *testing.T) {
	br, ar := txRepos(t)
	ctx := context.Background()

	b, err := br.Create(ctx, businessFixture("analyticsshop"))
	require.NoError(t, err)

	require.NoError(t, ar.Record(ctx, b.ID, domain.EventPageView))
	require.NoError(t, ar.Record(ctx, b.ID, domain.EventPageView))
	require.NoError(t, ar.Record(ctx, b.ID, domain.EventCallClick))

	totals, err := ar.Totals(ctx, b.ID, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{domain.EventPageView: 2, domain.EventCallClick: 1}, totals)

	future, err := ar.Totals(ctx, b.ID, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, future)
}

func TestAnalyticsRepo_Record_UnknownBusiness(t *testing.T) {
	_, ar := txRepos(t)

	err := ar.Record(context.Background(), uuid.New(), domain.EventPageView)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnalyticsRepo_Daily(t *testing.T) {
	br, ar := txRepos(t)
	ctx := context.Background()

	b, err := br.Create(ctx, businessFixture("dailyshop"))
	require.NoError(t, err)
	require.NoError(t, ar.Record(ctx, b.ID, domain.EventShare))
	require.NoError(t, ar.Record(ctx, b.ID, domain.EventShare))

	got, err := ar.Daily(ctx, b.ID, time.Now().AddDate(0, 0, -7))

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.EventShare, got[0].EventType)
	assert.Equal(t, int64(2), got[0].Count)
	assert.False(t, got[0].Day.IsZero())
}

func TestAnalyticsRepo_CountByBusiness(t *testing.T) {
	br, ar := txRepos(t)
	ctx := context.Background()

	b, err := br.Create(ctx, businessFixture("countshop"))
	require.NoError(t, err)
	require.NoError(t, ar.Record(ctx, b.ID, domain.EventBusinessView))

	got, err := ar.CountByBusiness(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(1), got[b.ID])
}
