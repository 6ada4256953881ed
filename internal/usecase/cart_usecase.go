package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tiestyle-backend/internal/domain"
	"tiestyle-backend/internal/pricing"
	"tiestyle-backend/pkg/utils"
)

// CartUsecase manages server-side carts. A cart line is keyed by its derived
// SKU, so the same product in two colors (or one marked for abroad shipping)
// occupies two lines.
type CartUsecase struct {
	cartRepo    domain.CartRepository
	productRepo domain.ProductRepository
	configUC    *StoreConfigUsecase
	maxQuantity int
}

func NewCartUsecase(cartRepo domain.CartRepository, productRepo domain.ProductRepository, configUC *StoreConfigUsecase, maxQuantity int) *CartUsecase {
	return &CartUsecase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		configUC:    configUC,
		maxQuantity: maxQuantity,
	}
}

func (u *CartUsecase) CreateCart(ctx context.Context) (*domain.Cart, error) {
	cart := &domain.Cart{
		ID:        utils.GenerateUUID(),
		Items:     []domain.CartItem{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := u.cartRepo.Create(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (u *CartUsecase) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	return u.cartRepo.GetByID(ctx, cartID)
}

// GetOrCreateCart resolves an existing cart token, issuing a fresh cart when
// the token is empty or no longer resolves (expired backend, wiped table).
func (u *CartUsecase) GetOrCreateCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	if cartID != "" {
		cart, err := u.cartRepo.GetByID(ctx, cartID)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	return u.CreateCart(ctx)
}

// AddItem snapshots the product into the cart. The price, title and image
// are captured here; later catalog edits do not reprice lines already in a
// cart.
func (u *CartUsecase) AddItem(ctx context.Context, cartID, productID, color string, abroad bool, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}
	if quantity > u.maxQuantity {
		return nil, fmt.Errorf("quantity exceeds maximum of %d", u.maxQuantity)
	}

	product, err := u.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	if !product.Available {
		return nil, fmt.Errorf("product %s is not available", product.Title)
	}
	if color != "" && !hasColor(product.Colors, color) {
		return nil, fmt.Errorf("color %q is not offered for %s", color, product.Title)
	}

	item := domain.CartItem{
		SKU:           domain.BuildSKU(product.SKU, color, abroad),
		ProductID:     product.ID,
		Title:         product.Title,
		UnitPrice:     product.Price,
		Quantity:      quantity,
		Color:         color,
		IsAbroadOrder: abroad,
	}
	if len(product.Images) > 0 {
		item.Image = product.Images[0]
	}

	return u.cartRepo.UpsertItem(ctx, cartID, item, false)
}

// SetQuantity replaces a line's count. A quantity of zero removes the line.
func (u *CartUsecase) SetQuantity(ctx context.Context, cartID, sku string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return u.cartRepo.RemoveItem(ctx, cartID, sku)
	}
	if quantity > u.maxQuantity {
		return nil, fmt.Errorf("quantity exceeds maximum of %d", u.maxQuantity)
	}

	cart, err := u.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	for _, line := range cart.Items {
		if line.SKU == sku {
			line.Quantity = quantity
			return u.cartRepo.UpsertItem(ctx, cartID, line, true)
		}
	}
	return nil, fmt.Errorf("item %s not in cart", sku)
}

func (u *CartUsecase) RemoveItem(ctx context.Context, cartID, sku string) (*domain.Cart, error) {
	return u.cartRepo.RemoveItem(ctx, cartID, sku)
}

func (u *CartUsecase) ClearCart(ctx context.Context, cartID string) error {
	return u.cartRepo.Clear(ctx, cartID)
}

// Quote prices the cart against a destination state using the live store
// settings. This is the same computation checkout runs, exposed so the
// storefront can show shipping before the customer commits.
func (u *CartUsecase) Quote(ctx context.Context, cartID, destinationState string) (*domain.Cart, domain.Totals, error) {
	cart, err := u.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		return nil, domain.Totals{}, err
	}

	sc, err := u.configUC.Get(ctx)
	if err != nil {
		return nil, domain.Totals{}, err
	}

	return cart, pricing.ComputeTotals(cart.Items, destinationState, sc), nil
}

func hasColor(colors []string, color string) bool {
	for _, c := range colors {
		if c == color {
			return true
		}
	}
	return false
}
