package pricing

import (
	"math"
	"strings"

	"tiestyle-backend/internal/domain"
)

// Shipping modes. A shipping amount of zero means three different things
// depending on the mode, so the mode travels with the totals everywhere.
const (
	ModeDeferred = "deferred" // abroad order, charge set by the operator later
	ModeBulk     = "bulk"     // flat bulk rate applied
	ModePending  = "pending"  // destination unknown or not serviced yet
	ModeFree     = "free"     // threshold reached for a serviced state
	ModeCharged  = "charged"  // serviced state below the threshold
)

const (
	// BulkOrderThreshold is the item count at which the flat bulk rate
	// replaces per-state shipping.
	BulkOrderThreshold = 15
	BulkOrderRate      = 100.0
)

// ComputeTotals prices a cart against a destination state and the store
// settings. Precedence: any abroad line defers shipping entirely; a bulk
// order takes the flat rate; otherwise the destination state decides.
// Tax is always zero; the field exists so stored totals keep their shape
// if a rate is ever introduced.
func ComputeTotals(items []domain.CartItem, destinationState string, cfg *domain.StoreConfig) domain.Totals {
	t := domain.Totals{}

	for _, item := range items {
		t.Subtotal += item.UnitPrice * float64(item.Quantity)
		t.TotalItems += item.Quantity
		if item.IsAbroadOrder {
			t.Mode = ModeDeferred
		}
	}
	t.Subtotal = round2(t.Subtotal)

	switch {
	case t.Mode == ModeDeferred:
		t.Shipping = 0
	case t.TotalItems >= BulkOrderThreshold:
		t.Mode = ModeBulk
		t.Shipping = BulkOrderRate
	default:
		t.Mode, t.Shipping = stateShipping(t.Subtotal, destinationState, cfg)
	}

	t.Tax = 0
	t.Total = round2(t.Subtotal + t.Shipping + t.Tax)
	return t
}

func stateShipping(subtotal float64, state string, cfg *domain.StoreConfig) (string, float64) {
	if strings.TrimSpace(state) == "" {
		return ModePending, 0
	}
	rate := cfg.RateForState(state)
	if rate == nil {
		return ModePending, 0
	}
	if subtotal >= cfg.FreeShippingMin() {
		return ModeFree, 0
	}
	return ModeCharged, rate.ChargeINR
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
