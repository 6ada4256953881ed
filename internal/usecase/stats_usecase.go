package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tiestyle-backend/config"
	"tiestyle-backend/internal/domain"
	"tiestyle-backend/pkg/cache"
)

// StatsUsecase validates inputs and caches; the aggregation itself lives in
// SQL. Revenue figures count confirmed payments only.
type StatsUsecase struct {
	repo  domain.StatsRepository
	cache cache.CacheService
	cfg   *config.Config
}

func NewStatsUsecase(repo domain.StatsRepository, cache cache.CacheService, cfg *config.Config) *StatsUsecase {
	return &StatsUsecase{
		repo:  repo,
		cache: cache,
		cfg:   cfg,
	}
}

func (uc *StatsUsecase) GetSummary(ctx context.Context) (*domain.StatsSummary, error) {
	key := "stats:summary"
	if val, found := uc.cache.Get(key); found {
		return val.(*domain.StatsSummary), nil
	}

	summary, err := uc.repo.Summary(ctx)
	if err != nil {
		return nil, err
	}

	uc.cache.Set(key, summary, uc.cfg.CacheStatsTTL)
	return summary, nil
}

func (uc *StatsUsecase) GetDailySales(ctx context.Context, start, end time.Time) ([]domain.DailySales, error) {
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("stats:daily_sales:%s:%s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	if val, found := uc.cache.Get(key); found {
		return val.([]domain.DailySales), nil
	}

	rows, err := uc.repo.DailySales(ctx, start, end)
	if err != nil {
		return nil, err
	}

	uc.cache.Set(key, rows, uc.cfg.CacheStatsTTL)
	return rows, nil
}

func (uc *StatsUsecase) GetTopProducts(ctx context.Context, start, end time.Time, limit int) ([]domain.TopProduct, error) {
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	key := fmt.Sprintf("stats:top_products:%s:%s:%d", start.Format("2006-01-02"), end.Format("2006-01-02"), limit)
	if val, found := uc.cache.Get(key); found {
		return val.([]domain.TopProduct), nil
	}

	products, err := uc.repo.TopProducts(ctx, start, end, limit)
	if err != nil {
		return nil, err
	}

	uc.cache.Set(key, products, uc.cfg.CacheStatsTTL)
	return products, nil
}

func validateDateRange(start, end time.Time) error {
	if end.Before(start) {
		return errors.New("end date must be after start date")
	}
	if end.Sub(start) > 365*24*time.Hour {
		return errors.New("date range cannot exceed 1 year")
	}
	return nil
}
