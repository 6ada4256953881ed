package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tiestyle-backend/internal/domain"
)

// StatsRepository runs back-office aggregation queries directly against
// the orders table.
type StatsRepository struct {
	db *pgxpool.Pool
}

func NewStatsRepository(db *pgxpool.Pool) domain.StatsRepository {
	return &StatsRepository{db: db}
}

// Summary returns the dashboard KPI block. Revenue counts confirmed
// payments only; unconfirmed or failed orders contribute zero.
func (r *StatsRepository) Summary(ctx context.Context) (*domain.StatsSummary, error) {
	var s domain.StatsSummary
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM((totals->>'total')::numeric) FILTER (WHERE payment_status = 'confirmed'), 0),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'delivered'),
			COUNT(*) FILTER (WHERE status = 'cancelled'),
			COUNT(*) FILTER (WHERE is_abroad)
		FROM orders`).
		Scan(&s.TotalOrders, &s.Revenue, &s.PendingOrders, &s.DeliveredOrders,
			&s.CancelledOrders, &s.AbroadOrders)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DailySales buckets confirmed revenue and order counts per calendar day.
func (r *StatsRepository) DailySales(ctx context.Context, start, end time.Time) ([]domain.DailySales, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			date_trunc('day', created_at)::date AS day,
			COUNT(*),
			COALESCE(SUM((totals->>'total')::numeric) FILTER (WHERE payment_status = 'confirmed'), 0)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY day
		ORDER BY day ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DailySales
	for rows.Next() {
		var d domain.DailySales
		if err := rows.Scan(&d.Day, &d.Orders, &d.Revenue); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// TopProducts unnests order line items and ranks by units sold.
func (r *StatsRepository) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]domain.TopProduct, error) {
	if limit < 1 {
		limit = 10
	}
	rows, err := r.db.Query(ctx, `
		SELECT
			item->>'sku',
			MAX(item->>'title'),
			SUM((item->>'quantity')::int) AS units,
			SUM((item->>'quantity')::int * (item->>'unitPrice')::numeric) AS amount
		FROM orders, jsonb_array_elements(items) AS item
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY item->>'sku'
		ORDER BY units DESC
		LIMIT $3`, start, end, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TopProduct
	for rows.Next() {
		var t domain.TopProduct
		if err := rows.Scan(&t.SKU, &t.Title, &t.Units, &t.Amount); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
