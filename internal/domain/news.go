package domain

import (
	"context"
	"time"
)

// NewsItem is a storefront announcement (launches, offers, notices).
type NewsItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Image     string    `json:"image,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type NewsRepository interface {
	GetAll(ctx context.Context, activeOnly bool) ([]NewsItem, error)
	GetByID(ctx context.Context, id string) (*NewsItem, error)
	Create(ctx context.Context, item *NewsItem) error
	Update(ctx context.Context, item *NewsItem) error
	Delete(ctx context.Context, id string) error
}
