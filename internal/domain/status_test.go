package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusRank(t *testing.T) {
	assert.Equal(t, 0, StatusRank(OrderStatusPending))
	assert.Equal(t, 3, StatusRank(OrderStatusDispatched))
	assert.Equal(t, 6, StatusRank(OrderStatusDelivered))
	assert.Equal(t, -1, StatusRank(OrderStatusCancelled))
	assert.Equal(t, -1, StatusRank("shipped"))
}

func TestIsKnownStatus(t *testing.T) {
	for _, s := range OrderStatuses {
		assert.True(t, IsKnownStatus(s), s)
	}
	assert.False(t, IsKnownStatus("refunded"))
}

func TestIsTerminalStatus(t *testing.T) {
	assert.True(t, IsTerminalStatus(OrderStatusDelivered))
	assert.True(t, IsTerminalStatus(OrderStatusCancelled))
	assert.False(t, IsTerminalStatus(OrderStatusOutForDelivery))
}

func TestBuildTimeline_MidPipeline(t *testing.T) {
	steps := BuildTimeline(OrderStatusDispatched)
	assert.Len(t, steps, len(Pipeline))

	for i, step := range steps {
		switch {
		case i < 3:
			assert.True(t, step.Completed, step.Status)
			assert.False(t, step.Active, step.Status)
		case i == 3:
			assert.True(t, step.Active)
			assert.False(t, step.Completed)
		default:
			assert.False(t, step.Completed, step.Status)
			assert.False(t, step.Active, step.Status)
		}
	}
}

func TestBuildTimeline_Delivered(t *testing.T) {
	steps := BuildTimeline(OrderStatusDelivered)
	last := steps[len(steps)-1]
	assert.True(t, last.Active)
	assert.False(t, last.Completed)
	for _, step := range steps[:len(steps)-1] {
		assert.True(t, step.Completed, step.Status)
	}
}

func TestBuildTimeline_Cancelled(t *testing.T) {
	steps := BuildTimeline(OrderStatusCancelled)
	assert.Len(t, steps, len(Pipeline)+1)

	// No pipeline progress is shown for a cancelled order.
	for _, step := range steps[:len(steps)-1] {
		assert.False(t, step.Completed, step.Status)
		assert.False(t, step.Active, step.Status)
	}
	last := steps[len(steps)-1]
	assert.Equal(t, OrderStatusCancelled, last.Status)
	assert.True(t, last.Cancelled)
	assert.True(t, last.Active)
}

func TestBuildSKU(t *testing.T) {
	assert.Equal(t, "tie-001", BuildSKU("tie-001", "", false))
	assert.Equal(t, "tie-001-navy", BuildSKU("tie-001", "Navy", false))
	assert.Equal(t, "tie-001-navy-abroad", BuildSKU("tie-001", "Navy", true))
	assert.Equal(t, "tie-001-abroad", BuildSKU("tie-001", "", true))
}

func TestOrderEffectiveTotal(t *testing.T) {
	charge := 1450.0
	abroad := &Order{
		IsAbroadOrder:  true,
		Totals:         Totals{Subtotal: 2000, Shipping: 0, Total: 2000},
		DeliveryCharge: &charge,
	}
	assert.Equal(t, 3450.0, abroad.EffectiveTotal())

	// Until the operator prices it, the stored total stands.
	abroad.DeliveryCharge = nil
	assert.Equal(t, 2000.0, abroad.EffectiveTotal())

	domestic := &Order{Totals: Totals{Subtotal: 500, Shipping: 60, Total: 560}}
	assert.Equal(t, 560.0, domestic.EffectiveTotal())
}

func TestRateForState(t *testing.T) {
	cfg := &StoreConfig{Delivery: DeliveryConfig{Rates: []DeliveryRate{
		{State: "Tamil Nadu", ChargeINR: 70},
	}}}

	rate := cfg.RateForState("tamil nadu")
	if assert.NotNil(t, rate) {
		assert.Equal(t, 70.0, rate.ChargeINR)
	}
	assert.Nil(t, cfg.RateForState("Kerala"))
	assert.Nil(t, cfg.RateForState(""))
}
