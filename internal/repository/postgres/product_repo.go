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
)

type productRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) domain.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, sku, title, slug, description, price, images, colors,
	category_ids, subcategory_id, stock, available, created_at, updated_at`

func (r *productRepository) GetProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	where := []string{"TRUE"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.AvailableOnly {
		where = append(where, "available = TRUE")
	}
	if filter.CategoryID != "" {
		where = append(where, "category_ids ? "+arg(filter.CategoryID))
	}
	if filter.SubcategoryID != "" {
		where = append(where, "subcategory_id = "+arg(filter.SubcategoryID))
	}
	if filter.Query != "" {
		p := arg("%" + filter.Query + "%")
		where = append(where, fmt.Sprintf("(title ILIKE %s OR sku ILIKE %s)", p, p))
	}

	order := "created_at DESC"
	switch filter.Sort {
	case "price_asc":
		order = "price ASC"
	case "price_desc":
		order = "price DESC"
	}

	cond := strings.Join(where, " AND ")
	q := queryer(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM products WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit < 1 {
		limit = 50
	}
	query := "SELECT " + productColumns + " FROM products WHERE " + cond +
		" ORDER BY " + order + " LIMIT " + arg(limit) + " OFFSET " + arg(filter.Offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.getProduct(ctx, "id", id)
}

func (r *productRepository) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return r.getProduct(ctx, "slug", slug)
}

func (r *productRepository) GetProductBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return r.getProduct(ctx, "sku", sku)
}

func (r *productRepository) getProduct(ctx context.Context, column, value string) (*domain.Product, error) {
	row := queryer(ctx, r.db).QueryRow(ctx,
		"SELECT "+productColumns+" FROM products WHERE "+column+" = $1", value)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *productRepository) SearchProducts(ctx context.Context, query string, limit, offset int) ([]domain.Product, int64, error) {
	return r.GetProducts(ctx, domain.ProductFilter{
		Query:         query,
		AvailableOnly: true,
		Limit:         limit,
		Offset:        offset,
	})
}

func (r *productRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	images, colors, catIDs, err := encodeProductLists(p)
	if err != nil {
		return err
	}
	_, err = queryer(ctx, r.db).Exec(ctx, `
		INSERT INTO products (id, sku, title, slug, description, price, images, colors,
			category_ids, subcategory_id, stock, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		p.ID, p.SKU, p.Title, p.Slug, p.Description, p.Price, images, colors,
		catIDs, p.SubcategoryID, p.Stock, p.Available, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	images, colors, catIDs, err := encodeProductLists(p)
	if err != nil {
		return err
	}
	tag, err := queryer(ctx, r.db).Exec(ctx, `
		UPDATE products SET sku = $2, title = $3, slug = $4, description = $5, price = $6,
			images = $7, colors = $8, category_ids = $9, subcategory_id = $10,
			stock = $11, available = $12, updated_at = $13
		WHERE id = $1`,
		p.ID, p.SKU, p.Title, p.Slug, p.Description, p.Price, images, colors,
		catIDs, p.SubcategoryID, p.Stock, p.Available, p.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id string) error {
	tag, err := queryer(ctx, r.db).Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepository) DecrementStock(ctx context.Context, productID string, quantity int) error {
	tag, err := queryer(ctx, r.db).Exec(ctx, `
		UPDATE products SET stock = GREATEST(stock - $2, 0), updated_at = $3
		WHERE id = $1`,
		productID, quantity, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepository) AdjustStock(ctx context.Context, productID string, delta int) (int, error) {
	var stock int
	err := queryer(ctx, r.db).QueryRow(ctx, `
		UPDATE products SET stock = GREATEST(stock + $2, 0), updated_at = $3
		WHERE id = $1 RETURNING stock`,
		productID, delta, time.Now()).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return stock, nil
}

// --- Categories ---

func (r *productRepository) GetCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	query := `SELECT id, name, slug, image, order_index, is_active, created_at, updated_at
		FROM categories`
	if activeOnly {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY order_index ASC, name ASC"

	rows, err := queryer(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Image, &c.OrderIndex,
			&c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *productRepository) CreateCategory(ctx context.Context, c *domain.Category) error {
	_, err := queryer(ctx, r.db).Exec(ctx, `
		INSERT INTO categories (id, name, slug, image, order_index, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.Name, c.Slug, c.Image, c.OrderIndex, c.IsActive, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *productRepository) UpdateCategory(ctx context.Context, c *domain.Category) error {
	tag, err := queryer(ctx, r.db).Exec(ctx, `
		UPDATE categories SET name = $2, slug = $3, image = $4, order_index = $5,
			is_active = $6, updated_at = $7
		WHERE id = $1`,
		c.ID, c.Name, c.Slug, c.Image, c.OrderIndex, c.IsActive, c.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepository) DeleteCategory(ctx context.Context, id string) error {
	tag, err := queryer(ctx, r.db).Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --- Subcategories ---

func (r *productRepository) GetSubcategories(ctx context.Context, categoryID string) ([]domain.Subcategory, error) {
	query := `SELECT id, category_id, name, slug, order_index, is_active, created_at, updated_at
		FROM subcategories`
	args := []any{}
	if categoryID != "" {
		query += " WHERE category_id = $1"
		args = append(args, categoryID)
	}
	query += " ORDER BY order_index ASC, name ASC"

	rows, err := queryer(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []domain.Subcategory
	for rows.Next() {
		var s domain.Subcategory
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.Slug, &s.OrderIndex,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (r *productRepository) CreateSubcategory(ctx context.Context, s *domain.Subcategory) error {
	_, err := queryer(ctx, r.db).Exec(ctx, `
		INSERT INTO subcategories (id, category_id, name, slug, order_index, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.CategoryID, s.Name, s.Slug, s.OrderIndex, s.IsActive, s.CreatedAt, s.UpdatedAt)
	return err
}

func (r *productRepository) UpdateSubcategory(ctx context.Context, s *domain.Subcategory) error {
	tag, err := queryer(ctx, r.db).Exec(ctx, `
		UPDATE subcategories SET category_id = $2, name = $3, slug = $4, order_index = $5,
			is_active = $6, updated_at = $7
		WHERE id = $1`,
		s.ID, s.CategoryID, s.Name, s.Slug, s.OrderIndex, s.IsActive, s.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepository) DeleteSubcategory(ctx context.Context, id string) error {
	tag, err := queryer(ctx, r.db).Exec(ctx, `DELETE FROM subcategories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --- scanning helpers ---

func encodeProductLists(p *domain.Product) (images, colors, catIDs []byte, err error) {
	if images, err = json.Marshal(orEmpty(p.Images)); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode images: %w", err)
	}
	if colors, err = json.Marshal(orEmpty(p.Colors)); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode colors: %w", err)
	}
	if catIDs, err = json.Marshal(orEmpty(p.CategoryIDs)); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode category ids: %w", err)
	}
	return images, colors, catIDs, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var images, colors, catIDs []byte

	err := row.Scan(&p.ID, &p.SKU, &p.Title, &p.Slug, &p.Description, &p.Price,
		&images, &colors, &catIDs, &p.SubcategoryID, &p.Stock, &p.Available,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(images, &p.Images); err != nil {
		return nil, fmt.Errorf("failed to decode images: %w", err)
	}
	if err := json.Unmarshal(colors, &p.Colors); err != nil {
		return nil, fmt.Errorf("failed to decode colors: %w", err)
	}
	if err := json.Unmarshal(catIDs, &p.CategoryIDs); err != nil {
		return nil, fmt.Errorf("failed to decode category ids: %w", err)
	}
	return &p, nil
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}
