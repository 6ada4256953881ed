package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tiestyle-backend/internal/domain"
)

type newsRepository struct {
	db *pgxpool.Pool
}

func NewNewsRepository(db *pgxpool.Pool) domain.NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) GetAll(ctx context.Context, activeOnly bool) ([]domain.NewsItem, error) {
	query := `SELECT id, title, body, image, is_active, created_at, updated_at FROM news`
	if activeOnly {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY created_at DESC"

	rows, err := queryer(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.NewsItem
	for rows.Next() {
		var n domain.NewsItem
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.Image, &n.IsActive,
			&n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

func (r *newsRepository) GetByID(ctx context.Context, id string) (*domain.NewsItem, error) {
	var n domain.NewsItem
	err := queryer(ctx, r.db).QueryRow(ctx,
		`SELECT id, title, body, image, is_active, created_at, updated_at FROM news WHERE id = $1`, id).
		Scan(&n.ID, &n.Title, &n.Body, &n.Image, &n.IsActive, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *newsRepository) Create(ctx context.Context, item *domain.NewsItem) error {
	_, err := queryer(ctx, r.db).Exec(ctx, `
		INSERT INTO news (id, title, body, image, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, item.Title, item.Body, item.Image, item.IsActive, item.CreatedAt, item.UpdatedAt)
	return err
}

func (r *newsRepository) Update(ctx context.Context, item *domain.NewsItem) error {
	tag, err := queryer(ctx, r.db).Exec(ctx, `
		UPDATE news SET title = $2, body = $3, image = $4, is_active = $5, updated_at = $6
		WHERE id = $1`,
		item.ID, item.Title, item.Body, item.Image, item.IsActive, item.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *newsRepository) Delete(ctx context.Context, id string) error {
	tag, err := queryer(ctx, r.db).Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
