// Package memory provides in-process repository implementations. The cart
// backend here serves single-node deployments and tests; it is swappable
// with the Postgres implementation behind the same interface.
package memory

import (
	"context"
	"sync"
	"time"

	"tiestyle-backend/internal/domain"
)

type cartRepository struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

func NewCartRepository() domain.CartRepository {
	return &cartRepository{carts: make(map[string]*domain.Cart)}
}

func (r *cartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	cart.CreatedAt = now
	cart.UpdatedAt = now
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	r.carts[cart.ID] = cloneCart(cart)
	return nil
}

func (r *cartRepository) GetByID(ctx context.Context, id string) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneCart(cart), nil
}

func (r *cartRepository) UpsertItem(ctx context.Context, cartID string, item domain.CartItem, replace bool) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[cartID]
	if !ok {
		return nil, domain.ErrNotFound
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
	cart.UpdatedAt = time.Now()
	return cloneCart(cart), nil
}

func (r *cartRepository) RemoveItem(ctx context.Context, cartID, sku string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[cartID]
	if !ok {
		return nil, domain.ErrNotFound
	}

	kept := cart.Items[:0]
	for _, it := range cart.Items {
		if it.SKU != sku {
			kept = append(kept, it)
		}
	}
	cart.Items = kept
	cart.UpdatedAt = time.Now()
	return cloneCart(cart), nil
}

func (r *cartRepository) Clear(ctx context.Context, cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[cartID]
	if !ok {
		return domain.ErrNotFound
	}
	cart.Items = []domain.CartItem{}
	cart.UpdatedAt = time.Now()
	return nil
}

// cloneCart guards callers against mutating shared state.
func cloneCart(c *domain.Cart) *domain.Cart {
	out := *c
	out.Items = append([]domain.CartItem(nil), c.Items...)
	return &out
}
