package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tiestyle-backend/internal/domain"
	"tiestyle-backend/internal/pricing"
	"tiestyle-backend/internal/repository/memory"
)

func testCustomer() domain.Customer {
	return domain.Customer{
		Name:    "Arjun Mehta",
		Phone:   "+919876543210",
		Address: "12 Marine Drive",
		City:    "Chennai",
		State:   "Tamil Nadu",
	}
}

func seedCart(t *testing.T, cartRepo domain.CartRepository, items ...domain.CartItem) *domain.Cart {
	t.Helper()
	cart := &domain.Cart{ID: "cart-1", Items: items}
	require.NoError(t, cartRepo.Create(context.Background(), cart))
	return cart
}

func newOrderTestEnv(products ...*domain.Product) (*OrderUsecase, *fakeOrderRepo, domain.CartRepository, *fakeProductRepo) {
	orderRepo := newFakeOrderRepo()
	cartRepo := memory.NewCartRepository()
	productRepo := newFakeProductRepo(products...)
	uc := NewOrderUsecase(orderRepo, cartRepo, productRepo, newTestConfigUC(testStoreConfig()), nopTxManager{})
	return uc, orderRepo, cartRepo, productRepo
}

func TestCheckout(t *testing.T) {
	uc, _, cartRepo, productRepo := newOrderTestEnv(
		&domain.Product{ID: "prod-1", SKU: "tie-001", Title: "Silk Tie", Price: 450, Stock: 10, Available: true},
	)
	seedCart(t, cartRepo,
		domain.CartItem{SKU: "tie-001", ProductID: "prod-1", Title: "Silk Tie", UnitPrice: 450, Quantity: 2},
	)

	order, err := uc.Checkout(context.Background(), CheckoutReq{
		CartID:        "cart-1",
		Customer:      testCustomer(),
		PaymentMethod: domain.PaymentMethodCOD,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderID, "ORD-"), order.OrderID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, domain.PaymentStatusPending, order.PaymentStatus)
	assert.False(t, order.IsAbroadOrder)

	// Totals are recomputed server-side: 900 subtotal is below the free
	// shipping threshold, so Tamil Nadu's rate applies.
	assert.Equal(t, 900.0, order.Totals.Subtotal)
	assert.Equal(t, 70.0, order.Totals.Shipping)
	assert.Equal(t, 970.0, order.Totals.Total)
	assert.Equal(t, pricing.ModeCharged, order.Totals.Mode)

	// Cart is emptied and stock decremented.
	cart, err := cartRepo.GetByID(context.Background(), "cart-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 2, productRepo.decrements["prod-1"])
}

func TestCheckout_Validation(t *testing.T) {
	uc, _, cartRepo, _ := newOrderTestEnv()
	seedCart(t, cartRepo)

	_, err := uc.Checkout(context.Background(), CheckoutReq{
		CartID:        "cart-1",
		Customer:      domain.Customer{Phone: "123", Address: "x"},
		PaymentMethod: domain.PaymentMethodCOD,
	})
	assert.ErrorContains(t, err, "name is required")

	_, err = uc.Checkout(context.Background(), CheckoutReq{
		CartID:        "cart-1",
		Customer:      domain.Customer{Name: "A", Address: "x"},
		PaymentMethod: domain.PaymentMethodCOD,
	})
	assert.ErrorContains(t, err, "phone or email")

	_, err = uc.Checkout(context.Background(), CheckoutReq{
		CartID:        "cart-1",
		Customer:      testCustomer(),
		PaymentMethod: "bitcoin",
	})
	assert.ErrorContains(t, err, "unknown payment method")

	// Empty cart cannot be checked out.
	_, err = uc.Checkout(context.Background(), CheckoutReq{
		CartID:        "cart-1",
		Customer:      testCustomer(),
		PaymentMethod: domain.PaymentMethodCOD,
	})
	assert.ErrorContains(t, err, "cart is empty")
}

func TestCheckout_AbroadDeferred(t *testing.T) {
	uc, _, cartRepo, _ := newOrderTestEnv(
		&domain.Product{ID: "prod-1", SKU: "tie-001", Title: "Silk Tie", Price: 2000, Stock: 5, Available: true},
	)
	seedCart(t, cartRepo,
		domain.CartItem{SKU: "tie-001-abroad", ProductID: "prod-1", UnitPrice: 2000, Quantity: 1, IsAbroadOrder: true},
	)

	order, err := uc.Checkout(context.Background(), CheckoutReq{
		CartID:        "cart-1",
		Customer:      testCustomer(),
		PaymentMethod: domain.PaymentMethodRazorpay,
	})
	require.NoError(t, err)

	assert.True(t, order.IsAbroadOrder)
	assert.Equal(t, pricing.ModeDeferred, order.Totals.Mode)
	assert.Equal(t, 0.0, order.Totals.Shipping)
	assert.Nil(t, order.DeliveryCharge)
}

func TestCheckout_AbroadDisabled(t *testing.T) {
	sc := testStoreConfig()
	sc.Abroad.Enabled = false

	orderRepo := newFakeOrderRepo()
	cartRepo := memory.NewCartRepository()
	productRepo := newFakeProductRepo()
	uc := NewOrderUsecase(orderRepo, cartRepo, productRepo, newTestConfigUC(sc), nopTxManager{})

	seedCart(t, cartRepo,
		domain.CartItem{SKU: "tie-001-abroad", ProductID: "prod-1", UnitPrice: 2000, Quantity: 1, IsAbroadOrder: true},
	)

	_, err := uc.Checkout(context.Background(), CheckoutReq{
		CartID:        "cart-1",
		Customer:      testCustomer(),
		PaymentMethod: domain.PaymentMethodRazorpay,
	})
	assert.ErrorContains(t, err, "not accepted")
}

func TestTrack(t *testing.T) {
	uc, orderRepo, _, _ := newOrderTestEnv()
	orderRepo.orders["id-1"] = &domain.Order{
		ID:      "id-1",
		OrderID: "ORD-1700000000000",
		Status:  domain.OrderStatusDispatched,
	}

	resp, err := uc.Track(context.Background(), " ORD-1700000000000 ")
	require.NoError(t, err)
	assert.Equal(t, "ORD-1700000000000", resp.Order.OrderID)
	assert.Len(t, resp.Timeline, len(domain.Pipeline))

	_, err = uc.Track(context.Background(), "ORD-nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMyOrders_RequiresContact(t *testing.T) {
	uc, _, _, _ := newOrderTestEnv()
	_, err := uc.MyOrders(context.Background(), "", "  ")
	assert.ErrorContains(t, err, "email or phone")
}

func TestUpdateStatus(t *testing.T) {
	uc, orderRepo, _, _ := newOrderTestEnv()
	orderRepo.orders["id-1"] = &domain.Order{
		ID:      "id-1",
		OrderID: "ORD-1",
		Status:  domain.OrderStatusPending,
	}

	order, err := uc.UpdateStatus(context.Background(), "ORD-1", domain.OrderStatusDispatched, "", "admin-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDispatched, order.Status)

	require.Len(t, orderRepo.history, 1)
	h := orderRepo.history[0]
	assert.Equal(t, "id-1", h.OrderID)
	assert.Equal(t, domain.OrderStatusDispatched, h.NewStatus)
	assert.Equal(t, domain.OrderStatusPending, *h.PreviousStatus)
	assert.Equal(t, "admin-1", *h.CreatedBy)

	// Backward moves are allowed; operators correct mistakes.
	order, err = uc.UpdateStatus(context.Background(), "ORD-1", domain.OrderStatusProcessing, "mis-scanned", "admin-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, order.Status)
	assert.Equal(t, "mis-scanned", *orderRepo.history[1].Reason)

	// Unknown statuses are rejected.
	_, err = uc.UpdateStatus(context.Background(), "ORD-1", "shipped", "", "admin-1")
	assert.ErrorContains(t, err, "unknown order status")

	// Same status is a no-op: no new history entry.
	_, err = uc.UpdateStatus(context.Background(), "ORD-1", domain.OrderStatusProcessing, "", "admin-1")
	require.NoError(t, err)
	assert.Len(t, orderRepo.history, 2)
}

func TestUpdatePaymentStatus_LeavesFulfillmentAlone(t *testing.T) {
	uc, orderRepo, _, _ := newOrderTestEnv()
	orderRepo.orders["id-1"] = &domain.Order{
		ID:            "id-1",
		OrderID:       "ORD-1",
		Status:        domain.OrderStatusPacked,
		PaymentStatus: domain.PaymentStatusPending,
	}

	order, err := uc.UpdatePaymentStatus(context.Background(), "ORD-1", domain.PaymentStatusConfirmed, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusConfirmed, order.PaymentStatus)
	assert.Equal(t, domain.OrderStatusPacked, order.Status)

	_, err = uc.UpdatePaymentStatus(context.Background(), "ORD-1", "refunded", "admin-1")
	assert.ErrorContains(t, err, "unknown payment status")
}

func TestSetDeliveryCharge(t *testing.T) {
	uc, orderRepo, _, _ := newOrderTestEnv()
	orderRepo.orders["abroad"] = &domain.Order{
		ID:            "abroad",
		OrderID:       "ORD-A",
		IsAbroadOrder: true,
		Totals:        domain.Totals{Subtotal: 2000, Total: 2000},
	}
	orderRepo.orders["domestic"] = &domain.Order{
		ID:      "domestic",
		OrderID: "ORD-D",
		Totals:  domain.Totals{Subtotal: 500, Shipping: 70, Total: 570},
	}

	order, err := uc.SetDeliveryCharge(context.Background(), "ORD-A", 1450, "admin-1")
	require.NoError(t, err)
	require.NotNil(t, order.DeliveryCharge)
	assert.Equal(t, 1450.0, *order.DeliveryCharge)
	assert.Equal(t, 3450.0, order.EffectiveTotal())

	_, err = uc.SetDeliveryCharge(context.Background(), "ORD-D", 100, "admin-1")
	assert.ErrorContains(t, err, "international orders")

	_, err = uc.SetDeliveryCharge(context.Background(), "ORD-A", -5, "admin-1")
	assert.ErrorContains(t, err, "negative")
}
