package domain

import (
	"context"
	"time"
)

// StatsSummary is the back-office dashboard KPI block. Revenue counts
// orders with a confirmed payment only.
type StatsSummary struct {
	TotalOrders     int64   `json:"totalOrders"`
	Revenue         float64 `json:"revenue"`
	PendingOrders   int64   `json:"pendingOrders"`
	DeliveredOrders int64   `json:"deliveredOrders"`
	CancelledOrders int64   `json:"cancelledOrders"`
	AbroadOrders    int64   `json:"abroadOrders"`
}

type DailySales struct {
	Day     time.Time `json:"day"`
	Orders  int64     `json:"orders"`
	Revenue float64   `json:"revenue"`
}

type TopProduct struct {
	SKU    string  `json:"sku"`
	Title  string  `json:"title"`
	Units  int64   `json:"units"`
	Amount float64 `json:"amount"`
}

type StatsRepository interface {
	Summary(ctx context.Context) (*StatsSummary, error)
	DailySales(ctx context.Context, start, end time.Time) ([]DailySales, error)
	TopProducts(ctx context.Context, start, end time.Time, limit int) ([]TopProduct, error)
}
