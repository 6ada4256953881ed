package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tiestyle-backend/internal/domain"
	"tiestyle-backend/internal/pricing"
	"tiestyle-backend/internal/repository/memory"
)

func newCartTestEnv(products ...*domain.Product) (*CartUsecase, domain.CartRepository) {
	cartRepo := memory.NewCartRepository()
	productRepo := newFakeProductRepo(products...)
	uc := NewCartUsecase(cartRepo, productRepo, newTestConfigUC(testStoreConfig()), 10)
	return uc, cartRepo
}

func TestAddItem_SnapshotsProduct(t *testing.T) {
	uc, _ := newCartTestEnv(&domain.Product{
		ID:        "prod-1",
		SKU:       "tie-001",
		Title:     "Silk Tie",
		Price:     450,
		Images:    []string{"https://cdn.example.com/tie.webp"},
		Colors:    []string{"Navy", "Maroon"},
		Available: true,
	})

	cart, err := uc.CreateCart(context.Background())
	require.NoError(t, err)

	cart, err = uc.AddItem(context.Background(), cart.ID, "prod-1", "Navy", false, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	line := cart.Items[0]
	assert.Equal(t, "tie-001-navy", line.SKU)
	assert.Equal(t, "Silk Tie", line.Title)
	assert.Equal(t, 450.0, line.UnitPrice)
	assert.Equal(t, "https://cdn.example.com/tie.webp", line.Image)
	assert.Equal(t, 2, line.Quantity)

	// Same SKU accumulates; a different color lands on its own line.
	cart, err = uc.AddItem(context.Background(), cart.ID, "prod-1", "Navy", false, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	cart, err = uc.AddItem(context.Background(), cart.ID, "prod-1", "Maroon", false, 1)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
	assert.Equal(t, "tie-001-maroon", cart.Items[1].SKU)
}

func TestAddItem_Rejections(t *testing.T) {
	uc, _ := newCartTestEnv(
		&domain.Product{ID: "prod-1", SKU: "tie-001", Title: "Silk Tie", Price: 450, Colors: []string{"Navy"}, Available: true},
		&domain.Product{ID: "prod-2", SKU: "tie-002", Title: "Retired Tie", Price: 300, Available: false},
	)

	cart, err := uc.CreateCart(context.Background())
	require.NoError(t, err)

	_, err = uc.AddItem(context.Background(), cart.ID, "prod-1", "", false, 0)
	assert.ErrorContains(t, err, "at least 1")

	_, err = uc.AddItem(context.Background(), cart.ID, "prod-1", "", false, 11)
	assert.ErrorContains(t, err, "maximum")

	_, err = uc.AddItem(context.Background(), cart.ID, "prod-missing", "", false, 1)
	assert.ErrorContains(t, err, "not found")

	_, err = uc.AddItem(context.Background(), cart.ID, "prod-2", "", false, 1)
	assert.ErrorContains(t, err, "not available")

	_, err = uc.AddItem(context.Background(), cart.ID, "prod-1", "Chartreuse", false, 1)
	assert.ErrorContains(t, err, "not offered")
}

func TestSetQuantity(t *testing.T) {
	uc, _ := newCartTestEnv(&domain.Product{
		ID: "prod-1", SKU: "tie-001", Title: "Silk Tie", Price: 450, Available: true,
	})

	cart, err := uc.CreateCart(context.Background())
	require.NoError(t, err)
	cart, err = uc.AddItem(context.Background(), cart.ID, "prod-1", "", false, 2)
	require.NoError(t, err)

	cart, err = uc.SetQuantity(context.Background(), cart.ID, "tie-001", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	_, err = uc.SetQuantity(context.Background(), cart.ID, "tie-999", 1)
	assert.ErrorContains(t, err, "not in cart")

	// Zero removes the line.
	cart, err = uc.SetQuantity(context.Background(), cart.ID, "tie-001", 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestGetOrCreateCart(t *testing.T) {
	uc, _ := newCartTestEnv()

	// Unknown token gets a fresh cart rather than an error.
	cart, err := uc.GetOrCreateCart(context.Background(), "gone")
	require.NoError(t, err)
	assert.NotEqual(t, "gone", cart.ID)

	same, err := uc.GetOrCreateCart(context.Background(), cart.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, same.ID)
}

func TestQuote(t *testing.T) {
	uc, _ := newCartTestEnv(&domain.Product{
		ID: "prod-1", SKU: "tie-001", Title: "Silk Tie", Price: 450, Available: true,
	})

	cart, err := uc.CreateCart(context.Background())
	require.NoError(t, err)
	_, err = uc.AddItem(context.Background(), cart.ID, "prod-1", "", false, 2)
	require.NoError(t, err)

	_, totals, err := uc.Quote(context.Background(), cart.ID, "Kerala")
	require.NoError(t, err)
	assert.Equal(t, 900.0, totals.Subtotal)
	assert.Equal(t, 90.0, totals.Shipping)
	assert.Equal(t, pricing.ModeCharged, totals.Mode)

	// Unserviced destination quotes as pending rather than failing.
	_, totals, err = uc.Quote(context.Background(), cart.ID, "Atlantis")
	require.NoError(t, err)
	assert.Equal(t, pricing.ModePending, totals.Mode)
	assert.Equal(t, 0.0, totals.Shipping)
}
