package domain

import (
	"context"
	"time"
)

// --- Interfaces ---

type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Category struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Image      string    `json:"image"`
	OrderIndex int       `json:"orderIndex"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Subcategory struct {
	ID         string    `json:"id"`
	CategoryID string    `json:"categoryId"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	OrderIndex int       `json:"orderIndex"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Product struct {
	ID            string    `json:"id"`
	SKU           string    `json:"sku"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Images        []string  `json:"images"`
	Colors        []string  `json:"colors"`
	CategoryIDs   []string  `json:"categoryIds"`
	SubcategoryID string    `json:"subcategoryId,omitempty"`
	Stock         int       `json:"stock"`
	Available     bool      `json:"available"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type ProductFilter struct {
	CategoryID    string
	SubcategoryID string
	Query         string
	AvailableOnly bool
	Sort          string // newest, price_asc, price_desc
	Limit         int
	Offset        int
}

type ProductRepository interface {
	GetProducts(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	GetProductByID(ctx context.Context, id string) (*Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*Product, error)
	GetProductBySKU(ctx context.Context, sku string) (*Product, error)
	SearchProducts(ctx context.Context, query string, limit, offset int) ([]Product, int64, error)
	CreateProduct(ctx context.Context, product *Product) error
	UpdateProduct(ctx context.Context, product *Product) error
	DeleteProduct(ctx context.Context, id string) error
	// DecrementStock reduces a product's stock by quantity, floored at zero.
	DecrementStock(ctx context.Context, productID string, quantity int) error
	AdjustStock(ctx context.Context, productID string, delta int) (int, error)

	// Categories
	GetCategories(ctx context.Context, activeOnly bool) ([]Category, error)
	CreateCategory(ctx context.Context, category *Category) error
	UpdateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, id string) error

	// Subcategories
	GetSubcategories(ctx context.Context, categoryID string) ([]Subcategory, error)
	CreateSubcategory(ctx context.Context, sub *Subcategory) error
	UpdateSubcategory(ctx context.Context, sub *Subcategory) error
	DeleteSubcategory(ctx context.Context, id string) error
}
