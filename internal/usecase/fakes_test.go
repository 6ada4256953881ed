package usecase

import (
	"context"
	"fmt"
	"time"

	"tiestyle-backend/config"
	"tiestyle-backend/internal/domain"
	"tiestyle-backend/internal/infrastructure/cache"
)

// --- Shared test doubles ---

type fakeStoreConfigRepo struct {
	sc  *domain.StoreConfig
	err error
}

func (r *fakeStoreConfigRepo) Get(ctx context.Context) (*domain.StoreConfig, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.sc == nil {
		return nil, domain.ErrNotFound
	}
	return r.sc, nil
}

func (r *fakeStoreConfigRepo) Save(ctx context.Context, sc *domain.StoreConfig) error {
	if r.err != nil {
		return r.err
	}
	r.sc = sc
	return nil
}

type nopTxManager struct{}

func (nopTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeOrderRepo struct {
	orders  map[string]*domain.Order
	history []domain.OrderHistory
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if o, ok := r.orders[id]; ok {
		return o, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeOrderRepo) GetByOrderID(ctx context.Context, ref string) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.OrderID == ref || o.ID == ref {
			return o, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeOrderRepo) GetByCustomer(ctx context.Context, email, phone string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.orders {
		if (email != "" && o.Customer.Email == email) || (phone != "" && o.Customer.Phone == phone) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) GetAll(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int64, error) {
	var out []domain.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

func (r *fakeOrderRepo) UpdatePaymentStatus(ctx context.Context, id, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.PaymentStatus = status
	return nil
}

func (r *fakeOrderRepo) UpdatePaymentRef(ctx context.Context, id, ref string) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.PaymentRef = ref
	return nil
}

func (r *fakeOrderRepo) UpdateDeliveryCharge(ctx context.Context, id string, charge float64) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.DeliveryCharge = &charge
	return nil
}

func (r *fakeOrderRepo) CreateHistory(ctx context.Context, h *domain.OrderHistory) error {
	h.CreatedAt = time.Now()
	r.history = append(r.history, *h)
	return nil
}

func (r *fakeOrderRepo) GetHistory(ctx context.Context, orderID string) ([]domain.OrderHistory, error) {
	var out []domain.OrderHistory
	for _, h := range r.history {
		if h.OrderID == orderID {
			out = append(out, h)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	products   map[string]*domain.Product
	decrements map[string]int
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	r := &fakeProductRepo{
		products:   make(map[string]*domain.Product),
		decrements: make(map[string]int),
	}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) GetProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	var out []domain.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	if p, ok := r.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeProductRepo) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeProductRepo) GetProductBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeProductRepo) SearchProducts(ctx context.Context, query string, limit, offset int) ([]domain.Product, int64, error) {
	return nil, 0, nil
}

func (r *fakeProductRepo) CreateProduct(ctx context.Context, p *domain.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) DeleteProduct(ctx context.Context, id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) DecrementStock(ctx context.Context, productID string, quantity int) error {
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock -= quantity
	if p.Stock < 0 {
		p.Stock = 0
	}
	r.decrements[productID] += quantity
	return nil
}

func (r *fakeProductRepo) AdjustStock(ctx context.Context, productID string, delta int) (int, error) {
	p, ok := r.products[productID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if p.Stock+delta < 0 {
		return 0, fmt.Errorf("stock cannot go negative")
	}
	p.Stock += delta
	return p.Stock, nil
}

func (r *fakeProductRepo) GetCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	return nil, nil
}

func (r *fakeProductRepo) CreateCategory(ctx context.Context, c *domain.Category) error { return nil }
func (r *fakeProductRepo) UpdateCategory(ctx context.Context, c *domain.Category) error { return nil }
func (r *fakeProductRepo) DeleteCategory(ctx context.Context, id string) error          { return nil }

func (r *fakeProductRepo) GetSubcategories(ctx context.Context, categoryID string) ([]domain.Subcategory, error) {
	return nil, nil
}

func (r *fakeProductRepo) CreateSubcategory(ctx context.Context, s *domain.Subcategory) error {
	return nil
}
func (r *fakeProductRepo) UpdateSubcategory(ctx context.Context, s *domain.Subcategory) error {
	return nil
}
func (r *fakeProductRepo) DeleteSubcategory(ctx context.Context, id string) error { return nil }

// --- Helpers ---

func testConfig() *config.Config {
	return &config.Config{
		CacheCatalogTTL: time.Minute,
		CacheConfigTTL:  time.Minute,
		CacheStatsTTL:   time.Minute,
		CacheSitemapTTL: time.Minute,
	}
}

func testStoreConfig() *domain.StoreConfig {
	return &domain.StoreConfig{
		Name: "Tie Style",
		Delivery: domain.DeliveryConfig{Rates: []domain.DeliveryRate{
			{State: "Tamil Nadu", ChargeINR: 70},
			{State: "Kerala", ChargeINR: 90},
		}},
		Abroad: domain.AbroadConfig{Enabled: true},
	}
}

func newTestConfigUC(sc *domain.StoreConfig) *StoreConfigUsecase {
	primary := &fakeStoreConfigRepo{sc: sc}
	memCache := cache.NewMemoryCache(time.Minute, time.Minute)
	return NewStoreConfigUsecase(primary, nil, memCache, testConfig())
}
