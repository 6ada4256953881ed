package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tiestyle-backend/internal/domain"
)

// storeConfigRepository persists the tenant settings document as a single
// JSONB row. The document shape is owned by the application.
type storeConfigRepository struct {
	db *pgxpool.Pool
}

func NewStoreConfigRepository(db *pgxpool.Pool) domain.StoreConfigRepository {
	return &storeConfigRepository{db: db}
}

func (r *storeConfigRepository) Get(ctx context.Context) (*domain.StoreConfig, error) {
	var doc []byte
	var updatedAt time.Time

	err := queryer(ctx, r.db).QueryRow(ctx,
		`SELECT doc, updated_at FROM store_config WHERE id = 1`).Scan(&doc, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var cfg domain.StoreConfig
	if err := json.Unmarshal(doc, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode store config: %w", err)
	}
	cfg.UpdatedAt = updatedAt
	return &cfg, nil
}

func (r *storeConfigRepository) Save(ctx context.Context, cfg *domain.StoreConfig) error {
	cfg.UpdatedAt = time.Now()
	doc, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode store config: %w", err)
	}

	_, err = queryer(ctx, r.db).Exec(ctx, `
		INSERT INTO store_config (id, doc, updated_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`,
		doc, cfg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save store config: %w", err)
	}
	return nil
}
