package usecase

import (
	"context"
	"fmt"
	"time"

	"tiestyle-backend/config"
	"tiestyle-backend/internal/domain"
	"tiestyle-backend/pkg/cache"
	"tiestyle-backend/pkg/utils"
)

// NewsUsecase manages storefront announcements. The public list shows
// active items only; the back office sees everything.
type NewsUsecase struct {
	repo  domain.NewsRepository
	cache cache.CacheService
	cfg   *config.Config
}

func NewNewsUsecase(repo domain.NewsRepository, cache cache.CacheService, cfg *config.Config) *NewsUsecase {
	return &NewsUsecase{
		repo:  repo,
		cache: cache,
		cfg:   cfg,
	}
}

const newsActiveCacheKey = "news:active"

func (u *NewsUsecase) GetActive(ctx context.Context) ([]domain.NewsItem, error) {
	if val, found := u.cache.Get(newsActiveCacheKey); found {
		return val.([]domain.NewsItem), nil
	}

	items, err := u.repo.GetAll(ctx, true)
	if err != nil {
		return nil, err
	}

	u.cache.Set(newsActiveCacheKey, items, u.cfg.CacheCatalogTTL)
	return items, nil
}

func (u *NewsUsecase) GetAll(ctx context.Context) ([]domain.NewsItem, error) {
	return u.repo.GetAll(ctx, false)
}

func (u *NewsUsecase) Get(ctx context.Context, id string) (*domain.NewsItem, error) {
	return u.repo.GetByID(ctx, id)
}

func (u *NewsUsecase) Create(ctx context.Context, item *domain.NewsItem) error {
	if item.Title == "" {
		return fmt.Errorf("news title is required")
	}
	if item.ID == "" {
		item.ID = utils.GenerateUUID()
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	u.cache.Delete(newsActiveCacheKey)
	return u.repo.Create(ctx, item)
}

func (u *NewsUsecase) Update(ctx context.Context, item *domain.NewsItem) error {
	if item.ID == "" {
		return fmt.Errorf("news ID required")
	}
	item.UpdatedAt = time.Now()

	u.cache.Delete(newsActiveCacheKey)
	return u.repo.Update(ctx, item)
}

func (u *NewsUsecase) Delete(ctx context.Context, id string) error {
	u.cache.Delete(newsActiveCacheKey)
	return u.repo.Delete(ctx, id)
}
