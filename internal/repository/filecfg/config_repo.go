// Package filecfg serves the store settings document from a static JSON
// file. It is the read-only fallback tier behind the database-backed
// repository: deployments ship a baseline settings file so the storefront
// keeps rendering while the database is unreachable or not yet seeded.
package filecfg

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"tiestyle-backend/internal/domain"
)

type configRepository struct {
	path string
}

func NewStoreConfigRepository(path string) domain.StoreConfigRepository {
	return &configRepository{path: path}
}

func (r *configRepository) Get(ctx context.Context) (*domain.StoreConfig, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", r.path, err)
	}

	var cfg domain.StoreConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", r.path, err)
	}
	return &cfg, nil
}

func (r *configRepository) Save(ctx context.Context, cfg *domain.StoreConfig) error {
	return fmt.Errorf("static config file is read-only")
}
