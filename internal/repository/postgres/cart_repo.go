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

type cartRepository struct {
	db *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) domain.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	now := time.Now()
	cart.CreatedAt = now
	cart.UpdatedAt = now

	items, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to encode cart items: %w", err)
	}

	_, err = queryer(ctx, r.db).Exec(ctx, `
		INSERT INTO carts (id, items, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`,
		cart.ID, items, cart.CreatedAt, cart.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert cart: %w", err)
	}
	return nil
}

func (r *cartRepository) GetByID(ctx context.Context, id string) (*domain.Cart, error) {
	var c domain.Cart
	var items []byte

	err := queryer(ctx, r.db).QueryRow(ctx,
		`SELECT id, items, created_at, updated_at FROM carts WHERE id = $1`, id).
		Scan(&c.ID, &items, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(items, &c.Items); err != nil {
		return nil, fmt.Errorf("failed to decode cart items: %w", err)
	}
	return &c, nil
}

func (r *cartRepository) UpsertItem(ctx context.Context, cartID string, item domain.CartItem, replace bool) (*domain.Cart, error) {
	cart, err := r.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].SKU == item.SKU {
			if replace {
				cart.Items[i].Quantity = item.Quantity
			} else {
				cart.Items[i].Quantity += item.Quantity
			}
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, item)
	}

	if err := r.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *cartRepository) RemoveItem(ctx context.Context, cartID, sku string) (*domain.Cart, error) {
	cart, err := r.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	for _, it := range cart.Items {
		if it.SKU != sku {
			kept = append(kept, it)
		}
	}
	cart.Items = kept

	if err := r.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *cartRepository) Clear(ctx context.Context, cartID string) error {
	tag, err := queryer(ctx, r.db).Exec(ctx,
		`UPDATE carts SET items = '[]'::jsonb, updated_at = $2 WHERE id = $1`,
		cartID, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *cartRepository) save(ctx context.Context, cart *domain.Cart) error {
	cart.UpdatedAt = time.Now()
	items, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to encode cart items: %w", err)
	}
	_, err = queryer(ctx, r.db).Exec(ctx,
		`UPDATE carts SET items = $2, updated_at = $3 WHERE id = $1`,
		cart.ID, items, cart.UpdatedAt)
	return err
}
