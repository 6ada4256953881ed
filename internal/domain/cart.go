package domain

import (
	"context"
	"strings"
	"time"
)

// --- Cart Entities ---

// CartItem is a single line of a cart. The same struct is snapshotted into
// orders at checkout, so price and title are captured here rather than
// joined from the catalog at read time.
type CartItem struct {
	SKU           string  `json:"sku"`
	ProductID     string  `json:"productId"`
	Title         string  `json:"title"`
	UnitPrice     float64 `json:"unitPrice"`
	Image         string  `json:"image"`
	Quantity      int     `json:"quantity"`
	Color         string  `json:"color,omitempty"`
	IsAbroadOrder bool    `json:"isAbroadOrder,omitempty"`
}

type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TotalItems sums the quantities of all lines.
func (c *Cart) TotalItems() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// BuildSKU derives the cart line SKU from the catalog SKU and the chosen
// options. A color choice and the abroad flag each extend the base SKU so
// that distinct option combinations land on distinct cart lines.
func BuildSKU(baseSKU, color string, abroad bool) string {
	parts := []string{baseSKU}
	if color != "" {
		parts = append(parts, strings.ToLower(color))
	}
	if abroad {
		parts = append(parts, "abroad")
	}
	return strings.Join(parts, "-")
}

// CartRepository abstracts cart storage. Carts are keyed by a server-issued
// token; the storefront holds the token, not the cart contents.
type CartRepository interface {
	Create(ctx context.Context, cart *Cart) error
	GetByID(ctx context.Context, id string) (*Cart, error)
	// UpsertItem adds quantity to an existing line with the same SKU or
	// appends a new line. quantity replaces the line count when replace is true.
	UpsertItem(ctx context.Context, cartID string, item CartItem, replace bool) (*Cart, error)
	RemoveItem(ctx context.Context, cartID, sku string) (*Cart, error)
	Clear(ctx context.Context, cartID string) error
}
