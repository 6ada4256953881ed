package usecase

import (
	"context"
	"fmt"
	"time"

	"tiestyle-backend/config"
	"tiestyle-backend/internal/domain"
	"tiestyle-backend/pkg/cache"
)

type SitemapItem struct {
	Loc        string
	LastMod    string
	ChangeFreq string
	Priority   float32
}

type SitemapUsecase struct {
	productRepo domain.ProductRepository
	baseURL     string
	cache       cache.CacheService
	cfg         *config.Config
}

func NewSitemapUsecase(repo domain.ProductRepository, baseURL string, cache cache.CacheService, cfg *config.Config) *SitemapUsecase {
	return &SitemapUsecase{
		productRepo: repo,
		baseURL:     baseURL,
		cache:       cache,
		cfg:         cfg,
	}
}

func (u *SitemapUsecase) GenerateSitemap(ctx context.Context) ([]SitemapItem, error) {
	key := "sitemap:items"
	if val, found := u.cache.Get(key); found {
		return val.([]SitemapItem), nil
	}

	var items []SitemapItem
	now := time.Now().Format("2006-01-02")

	// Static pages. Empty string is the root.
	statics := []string{"", "/shop", "/track", "/about", "/contact"}
	for _, s := range statics {
		items = append(items, SitemapItem{
			Loc:        u.baseURL + s,
			LastMod:    now,
			ChangeFreq: "daily",
			Priority:   0.8,
		})
	}
	items[0].Priority = 1.0

	filter := domain.ProductFilter{
		Limit:         2000,
		Offset:        0,
		AvailableOnly: true,
	}
	products, _, err := u.productRepo.GetProducts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	for _, p := range products {
		items = append(items, SitemapItem{
			Loc:        fmt.Sprintf("%s/product/%s", u.baseURL, p.Slug),
			LastMod:    p.UpdatedAt.Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   0.9,
		})
	}

	categories, err := u.productRepo.GetCategories(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	for _, c := range categories {
		items = append(items, SitemapItem{
			Loc:        fmt.Sprintf("%s/category/%s", u.baseURL, c.Slug),
			LastMod:    c.UpdatedAt.Format("2006-01-02"),
			ChangeFreq: "daily",
			Priority:   0.8,
		})
	}

	u.cache.Set(key, items, u.cfg.CacheSitemapTTL)
	return items, nil
}
