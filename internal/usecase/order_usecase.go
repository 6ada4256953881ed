package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tiestyle-backend/internal/domain"
	"tiestyle-backend/internal/pricing"
	"tiestyle-backend/pkg/logger"
	"tiestyle-backend/pkg/utils"
)

type OrderUsecase struct {
	orderRepo   domain.OrderRepository
	cartRepo    domain.CartRepository
	productRepo domain.ProductRepository
	configUC    *StoreConfigUsecase
	txManager   domain.TransactionManager
}

func NewOrderUsecase(orderRepo domain.OrderRepository, cartRepo domain.CartRepository, productRepo domain.ProductRepository, configUC *StoreConfigUsecase, txManager domain.TransactionManager) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		configUC:    configUC,
		txManager:   txManager,
	}
}

type CheckoutReq struct {
	CartID        string          `json:"cartId"`
	Customer      domain.Customer `json:"customer"`
	PaymentMethod string          `json:"paymentMethod"`
}

// Checkout turns a cart into a placed order. Totals are always recomputed
// server-side from the cart lines and the live rate card; whatever the
// storefront displayed is advisory only.
func (u *OrderUsecase) Checkout(ctx context.Context, req CheckoutReq) (*domain.Order, error) {
	if err := validateCustomer(req.Customer); err != nil {
		return nil, err
	}
	if !isKnownPaymentMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("unknown payment method: %s", req.PaymentMethod)
	}

	cart, err := u.cartRepo.GetByID(ctx, req.CartID)
	if err != nil {
		return nil, fmt.Errorf("cart not found: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	sc, err := u.configUC.Get(ctx)
	if err != nil {
		return nil, err
	}

	totals := pricing.ComputeTotals(cart.Items, req.Customer.State, sc)

	isAbroad := false
	for _, item := range cart.Items {
		if item.IsAbroadOrder {
			isAbroad = true
			break
		}
	}
	if isAbroad && !sc.Abroad.Enabled {
		return nil, fmt.Errorf("international orders are not accepted right now")
	}

	now := time.Now()
	order := &domain.Order{
		ID:            utils.GenerateUUID(),
		OrderID:       utils.GenerateTimeID("ORD"),
		Customer:      req.Customer,
		Items:         cart.Items,
		Totals:        totals,
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		PaymentMethod: req.PaymentMethod,
		IsAbroadOrder: isAbroad,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = u.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := u.orderRepo.Create(txCtx, order); err != nil {
			return err
		}
		return u.cartRepo.Clear(txCtx, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	// Stock decrements are best-effort and never fail the placed order;
	// oversell is reconciled by the operator.
	for _, item := range order.Items {
		if err := u.productRepo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			logger.Warn().Err(err).
				Str("order_id", order.OrderID).
				Str("product_id", item.ProductID).
				Msg("Stock decrement failed after checkout")
		}
	}

	return order, nil
}

// TrackResp is the public tracking view: the order plus the rendered
// fulfillment pipeline.
type TrackResp struct {
	Order    *domain.Order         `json:"order"`
	Timeline []domain.TimelineStep `json:"timeline"`
}

// Track resolves a public tracking reference (the internal key is accepted
// too, for old links).
func (u *OrderUsecase) Track(ctx context.Context, ref string) (*TrackResp, error) {
	order, err := u.orderRepo.GetByOrderID(ctx, strings.TrimSpace(ref))
	if err != nil {
		return nil, err
	}
	return &TrackResp{
		Order:    order,
		Timeline: domain.BuildTimeline(order.Status),
	}, nil
}

// MyOrders lists a customer's orders by the contact details captured at
// checkout. Either field alone is enough.
func (u *OrderUsecase) MyOrders(ctx context.Context, email, phone string) ([]domain.Order, error) {
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if email == "" && phone == "" {
		return nil, fmt.Errorf("email or phone is required")
	}
	return u.orderRepo.GetByCustomer(ctx, email, phone)
}

// --- Admin ---

func (u *OrderUsecase) GetAllOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 20
	}
	return u.orderRepo.GetAll(ctx, filter)
}

func (u *OrderUsecase) GetOrder(ctx context.Context, ref string) (*domain.Order, error) {
	return u.orderRepo.GetByOrderID(ctx, ref)
}

// UpdateStatus moves an order to any known fulfillment status. Transitions
// are advisory: operators correct mistakes, so backward moves are allowed
// and only unknown statuses are rejected.
func (u *OrderUsecase) UpdateStatus(ctx context.Context, ref, newStatus, note, actorID string) (*domain.Order, error) {
	if !domain.IsKnownStatus(newStatus) {
		return nil, fmt.Errorf("unknown order status: %s", newStatus)
	}

	order, err := u.orderRepo.GetByOrderID(ctx, ref)
	if err != nil {
		return nil, err
	}

	oldStatus := order.Status
	if oldStatus == newStatus {
		return order, nil
	}

	err = u.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := u.orderRepo.UpdateStatus(txCtx, order.ID, newStatus); err != nil {
			return err
		}

		reason := note
		if reason == "" {
			reason = fmt.Sprintf("Status changed from %s to %s", oldStatus, newStatus)
		}
		history := &domain.OrderHistory{
			OrderID:        order.ID,
			PreviousStatus: &oldStatus,
			NewStatus:      newStatus,
			Reason:         &reason,
			CreatedBy:      &actorID,
		}
		return u.orderRepo.CreateHistory(txCtx, history)
	})
	if err != nil {
		return nil, err
	}

	order.Status = newStatus
	order.UpdatedAt = time.Now()
	return order, nil
}

// UpdatePaymentStatus moves the payment axis only; fulfillment status is
// untouched. Revenue reporting counts confirmed payments.
func (u *OrderUsecase) UpdatePaymentStatus(ctx context.Context, ref, newStatus, actorID string) (*domain.Order, error) {
	if !isKnownPaymentStatus(newStatus) {
		return nil, fmt.Errorf("unknown payment status: %s", newStatus)
	}

	order, err := u.orderRepo.GetByOrderID(ctx, ref)
	if err != nil {
		return nil, err
	}

	oldPaymentStatus := order.PaymentStatus
	if oldPaymentStatus == newStatus {
		return order, nil
	}

	err = u.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := u.orderRepo.UpdatePaymentStatus(txCtx, order.ID, newStatus); err != nil {
			return err
		}

		reason := fmt.Sprintf("Payment status changed: %s -> %s", oldPaymentStatus, newStatus)
		history := &domain.OrderHistory{
			OrderID:        order.ID,
			PreviousStatus: &order.Status,
			NewStatus:      order.Status,
			Reason:         &reason,
			CreatedBy:      &actorID,
		}
		return u.orderRepo.CreateHistory(txCtx, history)
	})
	if err != nil {
		return nil, err
	}

	order.PaymentStatus = newStatus
	order.UpdatedAt = time.Now()
	return order, nil
}

// SetDeliveryCharge prices an abroad order after placement. Domestic orders
// carry their charge in the stored totals and cannot be repriced here.
func (u *OrderUsecase) SetDeliveryCharge(ctx context.Context, ref string, charge float64, actorID string) (*domain.Order, error) {
	if charge < 0 {
		return nil, fmt.Errorf("delivery charge cannot be negative")
	}

	order, err := u.orderRepo.GetByOrderID(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !order.IsAbroadOrder {
		return nil, fmt.Errorf("delivery charge can only be set on international orders")
	}

	err = u.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := u.orderRepo.UpdateDeliveryCharge(txCtx, order.ID, charge); err != nil {
			return err
		}

		reason := fmt.Sprintf("Delivery charge set to %.2f", charge)
		history := &domain.OrderHistory{
			OrderID:        order.ID,
			PreviousStatus: &order.Status,
			NewStatus:      order.Status,
			Reason:         &reason,
			CreatedBy:      &actorID,
		}
		return u.orderRepo.CreateHistory(txCtx, history)
	})
	if err != nil {
		return nil, err
	}

	order.DeliveryCharge = &charge
	order.UpdatedAt = time.Now()
	return order, nil
}

func (u *OrderUsecase) GetOrderHistory(ctx context.Context, ref string) ([]domain.OrderHistory, error) {
	order, err := u.orderRepo.GetByOrderID(ctx, ref)
	if err != nil {
		return nil, err
	}
	return u.orderRepo.GetHistory(ctx, order.ID)
}

func validateCustomer(c domain.Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("customer name is required")
	}
	if strings.TrimSpace(c.Phone) == "" && strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("customer phone or email is required")
	}
	if strings.TrimSpace(c.Address) == "" {
		return fmt.Errorf("delivery address is required")
	}
	return nil
}

func isKnownPaymentMethod(method string) bool {
	for _, m := range domain.PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

func isKnownPaymentStatus(status string) bool {
	for _, s := range domain.PaymentStatuses {
		if s == status {
			return true
		}
	}
	return false
}
