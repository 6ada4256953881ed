package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tiestyle-backend/internal/domain"
)

func TestCartLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository()

	cart := &domain.Cart{ID: "cart-1"}
	require.NoError(t, repo.Create(ctx, cart))

	got, err := repo.GetByID(ctx, "cart-1")
	require.NoError(t, err)
	assert.Empty(t, got.Items)

	// Add a line, then add the same SKU again: quantities accumulate.
	item := domain.CartItem{SKU: "tie-001-navy", Title: "Silk Tie", UnitPrice: 499, Quantity: 1, Color: "navy"}
	got, err = repo.UpsertItem(ctx, "cart-1", item, false)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)

	got, err = repo.UpsertItem(ctx, "cart-1", item, false)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Items[0].Quantity)

	// Replace mode pins the quantity.
	item.Quantity = 5
	got, err = repo.UpsertItem(ctx, "cart-1", item, true)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Items[0].Quantity)

	// A different option combination is a separate line.
	abroad := domain.CartItem{SKU: "tie-001-navy-abroad", Title: "Silk Tie", UnitPrice: 499, Quantity: 1, IsAbroadOrder: true}
	got, err = repo.UpsertItem(ctx, "cart-1", abroad, false)
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)

	got, err = repo.RemoveItem(ctx, "cart-1", "tie-001-navy")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "tie-001-navy-abroad", got.Items[0].SKU)

	require.NoError(t, repo.Clear(ctx, "cart-1"))
	got, err = repo.GetByID(ctx, "cart-1")
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestCartNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository()

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.UpsertItem(ctx, "missing", domain.CartItem{SKU: "x"}, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, repo.Clear(ctx, "missing"), domain.ErrNotFound)
}

func TestCartReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository()

	require.NoError(t, repo.Create(ctx, &domain.Cart{ID: "cart-1"}))
	got, err := repo.UpsertItem(ctx, "cart-1", domain.CartItem{SKU: "tie-001", Quantity: 1}, false)
	require.NoError(t, err)

	got.Items[0].Quantity = 99

	fresh, err := repo.GetByID(ctx, "cart-1")
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.Items[0].Quantity)
}
