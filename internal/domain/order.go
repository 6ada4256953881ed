package domain

import (
	"context"
	"time"
)

type OrderFilter struct {
	Page          int
	Limit         int
	Status        string
	PaymentStatus string
	IsAbroad      *bool
	Search        string
}

// Customer is the contact and destination block captured at checkout.
type Customer struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	Country  string `json:"country,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Totals is the priced summary of an order, computed once at placement and
// stored verbatim. Shipping of zero is ambiguous on its own; Mode records
// whether it is free, still pending a serviceability decision, or deferred
// for an abroad order.
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	Shipping   float64 `json:"shipping"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
	TotalItems int     `json:"totalItems"`
	Mode       string  `json:"shippingMode"`
}

// Order is the placed-order aggregate. OrderID is the public tracking
// reference ("ORD-<unix ms>"); ID is the internal storage key. Items and
// Totals are snapshots and never re-derived after placement.
type Order struct {
	ID             string     `json:"id"`
	OrderID        string     `json:"orderId"`
	Customer       Customer   `json:"customer"`
	Items          []CartItem `json:"items"`
	Totals         Totals     `json:"totals"`
	Status         string     `json:"status"`
	PaymentStatus  string     `json:"paymentStatus"`
	PaymentMethod  string     `json:"paymentMethod"`
	PaymentRef     string     `json:"paymentRef,omitempty"`
	IsAbroadOrder  bool       `json:"isAbroadOrder"`
	DeliveryCharge *float64   `json:"deliveryCharge"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// EffectiveTotal returns the amount the customer owes. For abroad orders the
// shipping charge is priced after placement; once set, the effective total is
// subtotal plus that charge (tax is not applied to abroad orders).
func (o *Order) EffectiveTotal() float64 {
	if o.IsAbroadOrder && o.DeliveryCharge != nil {
		return o.Totals.Subtotal + *o.DeliveryCharge
	}
	return o.Totals.Total
}

type OrderHistory struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"orderId"`
	PreviousStatus *string   `json:"previousStatus"`
	NewStatus      string    `json:"newStatus"`
	Reason         *string   `json:"reason"`
	CreatedBy      *string   `json:"createdBy"`
	CreatedAt      time.Time `json:"createdAt"`
}

type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	// GetByOrderID resolves the public tracking reference. Implementations
	// also accept the internal key so old tracking links keep working.
	GetByOrderID(ctx context.Context, orderID string) (*Order, error)
	GetByCustomer(ctx context.Context, email, phone string) ([]Order, error)
	GetAll(ctx context.Context, filter OrderFilter) ([]Order, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdatePaymentStatus(ctx context.Context, id, status string) error
	UpdatePaymentRef(ctx context.Context, id, ref string) error
	UpdateDeliveryCharge(ctx context.Context, id string, charge float64) error

	CreateHistory(ctx context.Context, history *OrderHistory) error
	GetHistory(ctx context.Context, orderID string) ([]OrderHistory, error)
}
