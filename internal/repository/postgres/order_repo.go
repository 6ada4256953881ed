package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tiestyle-backend/internal/domain"
	"tiestyle-backend/pkg/utils"
)

type orderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) domain.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, order_id, customer, items, totals, status, payment_status,
	payment_method, payment_ref, is_abroad, delivery_charge, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	q := queryer(ctx, r.db)

	customer, err := json.Marshal(order.Customer)
	if err != nil {
		return fmt.Errorf("failed to encode customer: %w", err)
	}
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}
	totals, err := json.Marshal(order.Totals)
	if err != nil {
		return fmt.Errorf("failed to encode totals: %w", err)
	}

	_, err = q.Exec(ctx, `
		INSERT INTO orders (id, order_id, customer, items, totals, status, payment_status,
			payment_method, payment_ref, is_abroad, delivery_charge, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		order.ID, order.OrderID, customer, items, totals,
		order.Status, order.PaymentStatus, order.PaymentMethod, order.PaymentRef,
		order.IsAbroadOrder, order.DeliveryCharge, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	row := queryer(ctx, r.db).QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	return scanOrder(row)
}

func (r *orderRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	// Tracking links may carry either the public reference or the internal key.
	row := queryer(ctx, r.db).QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE order_id = $1 OR id = $1`, orderID)
	return scanOrder(row)
}

func (r *orderRepository) GetByCustomer(ctx context.Context, email, phone string) ([]domain.Order, error) {
	rows, err := queryer(ctx, r.db).Query(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE ($1 <> '' AND lower(customer->>'email') = lower($1))
		   OR ($2 <> '' AND customer->>'phone' = $2)
		ORDER BY created_at DESC`, email, phone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *orderRepository) GetAll(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int64, error) {
	where := []string{"TRUE"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != "" {
		where = append(where, "status = "+arg(filter.Status))
	}
	if filter.PaymentStatus != "" {
		where = append(where, "payment_status = "+arg(filter.PaymentStatus))
	}
	if filter.IsAbroad != nil {
		where = append(where, "is_abroad = "+arg(*filter.IsAbroad))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		where = append(where, fmt.Sprintf(
			"(order_id ILIKE %s OR customer->>'name' ILIKE %s OR customer->>'phone' ILIKE %s OR customer->>'email' ILIKE %s)",
			p, p, p, p))
	}

	cond := strings.Join(where, " AND ")
	q := queryer(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM orders WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}

	query := "SELECT " + orderColumns + " FROM orders WHERE " + cond +
		" ORDER BY created_at DESC LIMIT " + arg(limit) + " OFFSET " + arg(offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.touch(ctx, id, "status", status)
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, id, status string) error {
	return r.touch(ctx, id, "payment_status", status)
}

func (r *orderRepository) UpdatePaymentRef(ctx context.Context, id, ref string) error {
	return r.touch(ctx, id, "payment_ref", ref)
}

func (r *orderRepository) UpdateDeliveryCharge(ctx context.Context, id string, charge float64) error {
	tag, err := queryer(ctx, r.db).Exec(ctx,
		`UPDATE orders SET delivery_charge = $2, updated_at = $3 WHERE id = $1 OR order_id = $1`,
		id, charge, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// touch updates a single column and re-stamps updated_at.
func (r *orderRepository) touch(ctx context.Context, id, column, value string) error {
	tag, err := queryer(ctx, r.db).Exec(ctx,
		`UPDATE orders SET `+column+` = $2, updated_at = $3 WHERE id = $1 OR order_id = $1`,
		id, value, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *orderRepository) CreateHistory(ctx context.Context, h *domain.OrderHistory) error {
	if h.ID == "" {
		h.ID = utils.GenerateUUID()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
	_, err := queryer(ctx, r.db).Exec(ctx, `
		INSERT INTO order_history (id, order_id, previous_status, new_status, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		h.ID, h.OrderID, h.PreviousStatus, h.NewStatus, h.Reason, h.CreatedBy, h.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order history: %w", err)
	}
	return nil
}

func (r *orderRepository) GetHistory(ctx context.Context, orderID string) ([]domain.OrderHistory, error) {
	rows, err := queryer(ctx, r.db).Query(ctx, `
		SELECT id, order_id, previous_status, new_status, reason, created_by, created_at
		FROM order_history WHERE order_id = $1 ORDER BY created_at ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []domain.OrderHistory
	for rows.Next() {
		var h domain.OrderHistory
		if err := rows.Scan(&h.ID, &h.OrderID, &h.PreviousStatus, &h.NewStatus, &h.Reason, &h.CreatedBy, &h.CreatedAt); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

// --- scanning helpers ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	var customer, items, totals []byte

	err := row.Scan(&o.ID, &o.OrderID, &customer, &items, &totals,
		&o.Status, &o.PaymentStatus, &o.PaymentMethod, &o.PaymentRef,
		&o.IsAbroadOrder, &o.DeliveryCharge, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(customer, &o.Customer); err != nil {
		return nil, fmt.Errorf("failed to decode customer: %w", err)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	if err := json.Unmarshal(totals, &o.Totals); err != nil {
		return nil, fmt.Errorf("failed to decode totals: %w", err)
	}
	return &o, nil
}

func scanOrders(rows pgx.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}
