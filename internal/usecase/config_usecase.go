package usecase

import (
	"context"
	"fmt"
	"time"

	"tiestyle-backend/config"
	"tiestyle-backend/internal/domain"
	"tiestyle-backend/pkg/cache"
	"tiestyle-backend/pkg/logger"
)

// StoreConfigUsecase serves the tenant settings document. The database copy
// is authoritative; when it is missing or unreachable, the static file
// fallback keeps the storefront rendering with last-known-good settings.
type StoreConfigUsecase struct {
	primary  domain.StoreConfigRepository
	fallback domain.StoreConfigRepository
	cache    cache.CacheService
	cfg      *config.Config
}

func NewStoreConfigUsecase(primary, fallback domain.StoreConfigRepository, cache cache.CacheService, cfg *config.Config) *StoreConfigUsecase {
	return &StoreConfigUsecase{
		primary:  primary,
		fallback: fallback,
		cache:    cache,
		cfg:      cfg,
	}
}

const storeConfigCacheKey = "config:store"

func (u *StoreConfigUsecase) Get(ctx context.Context) (*domain.StoreConfig, error) {
	if val, found := u.cache.Get(storeConfigCacheKey); found {
		return val.(*domain.StoreConfig), nil
	}

	sc, err := u.primary.Get(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Store config unavailable in DB, using static fallback")
		if u.fallback == nil {
			return nil, fmt.Errorf("store config unavailable: %w", err)
		}
		sc, err = u.fallback.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("store config unavailable: %w", err)
		}
		// Cache the fallback copy briefly so an outage does not hammer disk.
		u.cache.Set(storeConfigCacheKey, sc, time.Minute)
		return sc, nil
	}

	u.cache.Set(storeConfigCacheKey, sc, u.cfg.CacheConfigTTL)
	return sc, nil
}

func (u *StoreConfigUsecase) Update(ctx context.Context, sc *domain.StoreConfig) error {
	if sc.Name == "" {
		return fmt.Errorf("store name is required")
	}
	sc.UpdatedAt = time.Now()

	if err := u.primary.Save(ctx, sc); err != nil {
		return err
	}
	u.cache.Delete(storeConfigCacheKey)
	return nil
}

// UpdateDeliveryRates replaces the per-state rate card without touching the
// rest of the settings document.
func (u *StoreConfigUsecase) UpdateDeliveryRates(ctx context.Context, rates []domain.DeliveryRate) (*domain.StoreConfig, error) {
	for _, r := range rates {
		if r.State == "" {
			return nil, fmt.Errorf("delivery rate entry missing state name")
		}
		if r.ChargeINR < 0 {
			return nil, fmt.Errorf("delivery charge for %s cannot be negative", r.State)
		}
	}

	sc, err := u.Get(ctx)
	if err != nil {
		return nil, err
	}

	sc.Delivery.Rates = rates
	if err := u.Update(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}
