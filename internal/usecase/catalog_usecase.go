package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tiestyle-backend/config"
	"tiestyle-backend/internal/domain"
	"tiestyle-backend/pkg/cache"
	"tiestyle-backend/pkg/utils"
)

type CatalogUsecase struct {
	repo  domain.ProductRepository
	cache cache.CacheService
	cfg   *config.Config
}

func NewCatalogUsecase(repo domain.ProductRepository, cache cache.CacheService, cfg *config.Config) *CatalogUsecase {
	return &CatalogUsecase{
		repo:  repo,
		cache: cache,
		cfg:   cfg,
	}
}

// --- Products ---

func (u *CatalogUsecase) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 24
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return u.repo.GetProducts(ctx, filter)
}

// GetProductDetails resolves a storefront product reference. Slugs are the
// canonical form; old links carrying the product ID or catalog SKU still work.
func (u *CatalogUsecase) GetProductDetails(ctx context.Context, ref string) (*domain.Product, error) {
	key := fmt.Sprintf("product:slug:%s", ref)
	if val, found := u.cache.Get(key); found {
		return val.(*domain.Product), nil
	}

	product, err := u.repo.GetProductBySlug(ctx, ref)
	if errors.Is(err, domain.ErrNotFound) {
		product, err = u.repo.GetProductByID(ctx, ref)
	}
	if errors.Is(err, domain.ErrNotFound) {
		product, err = u.repo.GetProductBySKU(ctx, ref)
	}
	if err != nil {
		return nil, err
	}

	u.cache.Set(key, product, u.cfg.CacheCatalogTTL)
	return product, nil
}

func (u *CatalogUsecase) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	return u.repo.GetProductByID(ctx, id)
}

func (u *CatalogUsecase) Search(ctx context.Context, query string, page, limit int) ([]domain.Product, domain.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	products, total, err := u.repo.SearchProducts(ctx, query, limit, offset)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	pagination := domain.Pagination{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}
	return products, pagination, nil
}

func (u *CatalogUsecase) CreateProduct(ctx context.Context, product *domain.Product) error {
	if product.Title == "" {
		return fmt.Errorf("product title is required")
	}
	if product.Price < 0 {
		return fmt.Errorf("product price cannot be negative")
	}
	if product.ID == "" {
		product.ID = utils.GenerateTimeID("prod")
	}
	if product.Slug == "" {
		product.Slug = utils.GenerateSlug(product.Title)
	}
	if product.SKU == "" {
		product.SKU = product.ID
	}

	// Slug collisions surface as a duplicate-key error; check first for a
	// friendlier message.
	if existing, err := u.repo.GetProductBySlug(ctx, product.Slug); err == nil && existing != nil {
		return fmt.Errorf("slug %q is already taken", product.Slug)
	}

	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	product.Available = true

	return u.repo.CreateProduct(ctx, product)
}

func (u *CatalogUsecase) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		return fmt.Errorf("product ID required")
	}
	product.UpdatedAt = time.Now()

	u.cache.Delete(fmt.Sprintf("product:slug:%s", product.Slug))
	return u.repo.UpdateProduct(ctx, product)
}

func (u *CatalogUsecase) DeleteProduct(ctx context.Context, id string) error {
	if product, err := u.repo.GetProductByID(ctx, id); err == nil {
		u.cache.Delete(fmt.Sprintf("product:slug:%s", product.Slug))
	}
	return u.repo.DeleteProduct(ctx, id)
}

// AdjustStock applies a signed delta to a product's stock and returns the
// new level. The repository floors the result at zero.
func (u *CatalogUsecase) AdjustStock(ctx context.Context, productID string, delta int) (int, error) {
	if delta == 0 {
		return 0, fmt.Errorf("stock adjustment cannot be zero")
	}
	return u.repo.AdjustStock(ctx, productID, delta)
}

// --- Categories ---

func (u *CatalogUsecase) GetCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	key := "category:all"
	if activeOnly {
		key = "category:active"
	}
	if val, found := u.cache.Get(key); found {
		return val.([]domain.Category), nil
	}

	cats, err := u.repo.GetCategories(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	u.cache.Set(key, cats, u.cfg.CacheCatalogTTL)
	return cats, nil
}

func (u *CatalogUsecase) CreateCategory(ctx context.Context, category *domain.Category) error {
	if category.Name == "" {
		return fmt.Errorf("category name is required")
	}
	if category.Slug == "" {
		category.Slug = utils.GenerateSlug(category.Name)
	}
	if category.ID == "" {
		category.ID = utils.GenerateUUID()
	}
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()

	u.invalidateCategoryCache()
	return u.repo.CreateCategory(ctx, category)
}

func (u *CatalogUsecase) UpdateCategory(ctx context.Context, category *domain.Category) error {
	if category.ID == "" {
		return fmt.Errorf("category ID required")
	}
	category.UpdatedAt = time.Now()

	u.invalidateCategoryCache()
	return u.repo.UpdateCategory(ctx, category)
}

func (u *CatalogUsecase) DeleteCategory(ctx context.Context, id string) error {
	u.invalidateCategoryCache()
	return u.repo.DeleteCategory(ctx, id)
}

// --- Subcategories ---

func (u *CatalogUsecase) GetSubcategories(ctx context.Context, categoryID string) ([]domain.Subcategory, error) {
	return u.repo.GetSubcategories(ctx, categoryID)
}

func (u *CatalogUsecase) CreateSubcategory(ctx context.Context, sub *domain.Subcategory) error {
	if sub.Name == "" {
		return fmt.Errorf("subcategory name is required")
	}
	if sub.CategoryID == "" {
		return fmt.Errorf("parent category is required")
	}
	if sub.Slug == "" {
		sub.Slug = utils.GenerateSlug(sub.Name)
	}
	if sub.ID == "" {
		sub.ID = utils.GenerateUUID()
	}
	sub.CreatedAt = time.Now()
	sub.UpdatedAt = time.Now()

	return u.repo.CreateSubcategory(ctx, sub)
}

func (u *CatalogUsecase) UpdateSubcategory(ctx context.Context, sub *domain.Subcategory) error {
	if sub.ID == "" {
		return fmt.Errorf("subcategory ID required")
	}
	sub.UpdatedAt = time.Now()
	return u.repo.UpdateSubcategory(ctx, sub)
}

func (u *CatalogUsecase) DeleteSubcategory(ctx context.Context, id string) error {
	return u.repo.DeleteSubcategory(ctx, id)
}

func (u *CatalogUsecase) invalidateCategoryCache() {
	u.cache.Delete("category:all")
	u.cache.Delete("category:active")
}
