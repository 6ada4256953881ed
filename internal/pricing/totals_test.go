package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tiestyle-backend/internal/domain"
)

func testConfig() *domain.StoreConfig {
	return &domain.StoreConfig{
		Pricing: domain.PricingConfig{FreeShippingMin: 999},
		Delivery: domain.DeliveryConfig{
			Rates: []domain.DeliveryRate{
				{State: "Karnataka", Region: "South", ChargeINR: 60},
				{State: "Maharashtra", Region: "West", ChargeINR: 80},
			},
		},
	}
}

func item(price float64, qty int) domain.CartItem {
	return domain.CartItem{SKU: "tie-001", UnitPrice: price, Quantity: qty}
}

func TestComputeTotals_StateCharge(t *testing.T) {
	got := ComputeTotals([]domain.CartItem{item(250, 2)}, "Karnataka", testConfig())

	assert.Equal(t, 500.0, got.Subtotal)
	assert.Equal(t, 60.0, got.Shipping)
	assert.Equal(t, ModeCharged, got.Mode)
	assert.Equal(t, 560.0, got.Total)
	assert.Equal(t, 0.0, got.Tax)
}

func TestComputeTotals_StateMatchIsCaseInsensitive(t *testing.T) {
	got := ComputeTotals([]domain.CartItem{item(250, 2)}, "kArNaTaKa", testConfig())

	assert.Equal(t, ModeCharged, got.Mode)
	assert.Equal(t, 60.0, got.Shipping)
}

func TestComputeTotals_FreeShippingAtThreshold(t *testing.T) {
	got := ComputeTotals([]domain.CartItem{item(999, 1)}, "Karnataka", testConfig())

	assert.Equal(t, ModeFree, got.Mode)
	assert.Equal(t, 0.0, got.Shipping)
	assert.Equal(t, 999.0, got.Total)
}

func TestComputeTotals_UnknownStateIsPendingNotFree(t *testing.T) {
	// Subtotal is above the free-shipping threshold, but the state is not
	// serviced. Pending must win over free.
	got := ComputeTotals([]domain.CartItem{item(1500, 1)}, "Atlantis", testConfig())

	assert.Equal(t, ModePending, got.Mode)
	assert.Equal(t, 0.0, got.Shipping)
	assert.Equal(t, 1500.0, got.Total)
}

func TestComputeTotals_EmptyStateIsPending(t *testing.T) {
	got := ComputeTotals([]domain.CartItem{item(100, 1)}, "  ", testConfig())

	assert.Equal(t, ModePending, got.Mode)
}

func TestComputeTotals_BulkRateBeatsStateRules(t *testing.T) {
	got := ComputeTotals([]domain.CartItem{item(200, 15)}, "Karnataka", testConfig())

	assert.Equal(t, ModeBulk, got.Mode)
	assert.Equal(t, BulkOrderRate, got.Shipping)
	assert.Equal(t, 3100.0, got.Total)
}

func TestComputeTotals_BulkBelowThresholdUsesState(t *testing.T) {
	got := ComputeTotals([]domain.CartItem{item(50, 14)}, "Maharashtra", testConfig())

	assert.Equal(t, ModeCharged, got.Mode)
	assert.Equal(t, 80.0, got.Shipping)
}

func TestComputeTotals_AbroadDefersShipping(t *testing.T) {
	items := []domain.CartItem{
		item(400, 1),
		{SKU: "tie-002-abroad", UnitPrice: 600, Quantity: 20, IsAbroadOrder: true},
	}
	// Abroad wins even over the bulk threshold and a serviced state.
	got := ComputeTotals(items, "Karnataka", testConfig())

	assert.Equal(t, ModeDeferred, got.Mode)
	assert.Equal(t, 0.0, got.Shipping)
	assert.Equal(t, 12400.0, got.Total)
	assert.Equal(t, 21, got.TotalItems)
}

func TestComputeTotals_DefaultFreeShippingMin(t *testing.T) {
	cfg := testConfig()
	cfg.Pricing.FreeShippingMin = 0

	got := ComputeTotals([]domain.CartItem{item(999, 1)}, "Karnataka", cfg)
	assert.Equal(t, ModeFree, got.Mode)

	got = ComputeTotals([]domain.CartItem{item(998, 1)}, "Karnataka", cfg)
	assert.Equal(t, ModeCharged, got.Mode)
}

func TestComputeTotals_Rounding(t *testing.T) {
	got := ComputeTotals([]domain.CartItem{item(33.33, 3)}, "Karnataka", testConfig())

	assert.InDelta(t, 99.99, got.Subtotal, 0.001)
	assert.InDelta(t, 159.99, got.Total, 0.001)
}
