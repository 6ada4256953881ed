package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tiestyle-backend/internal/domain"
	"tiestyle-backend/internal/infrastructure/cache"
)

type fakeStatsRepo struct {
	summaryCalls int
}

func (r *fakeStatsRepo) Summary(ctx context.Context) (*domain.StatsSummary, error) {
	r.summaryCalls++
	return &domain.StatsSummary{TotalOrders: 42, Revenue: 12345.5}, nil
}

func (r *fakeStatsRepo) DailySales(ctx context.Context, start, end time.Time) ([]domain.DailySales, error) {
	return []domain.DailySales{{Orders: 3, Revenue: 900}}, nil
}

func (r *fakeStatsRepo) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]domain.TopProduct, error) {
	return []domain.TopProduct{{SKU: "tie-001", Units: 12}}, nil
}

func newStatsTestEnv() (*StatsUsecase, *fakeStatsRepo) {
	repo := &fakeStatsRepo{}
	memCache := cache.NewMemoryCache(time.Minute, time.Minute)
	return NewStatsUsecase(repo, memCache, testConfig()), repo
}

func TestGetSummary_Cached(t *testing.T) {
	uc, repo := newStatsTestEnv()

	first, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), first.TotalOrders)

	_, err = uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.summaryCalls)
}

func TestStatsDateRangeValidation(t *testing.T) {
	uc, _ := newStatsTestEnv()
	day := 24 * time.Hour
	now := time.Now()

	_, err := uc.GetDailySales(context.Background(), now, now.Add(-day))
	assert.ErrorContains(t, err, "after start")

	_, err = uc.GetDailySales(context.Background(), now.Add(-400*day), now)
	assert.ErrorContains(t, err, "exceed 1 year")

	rows, err := uc.GetDailySales(context.Background(), now.Add(-30*day), now)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = uc.GetTopProducts(context.Background(), now, now.Add(-day), 10)
	assert.ErrorContains(t, err, "after start")

	top, err := uc.GetTopProducts(context.Background(), now.Add(-30*day), now, 0)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}
