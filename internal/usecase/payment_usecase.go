package usecase

import (
	"context"
	"fmt"

	"tiestyle-backend/internal/domain"
	"tiestyle-backend/internal/payment/razorpay"
	"tiestyle-backend/pkg/logger"
)

// PaymentUsecase drives the online payment flow. It only ever moves the
// payment axis of an order; fulfillment status belongs to the operator.
type PaymentUsecase struct {
	gateway   *razorpay.Client
	orderRepo domain.OrderRepository
}

func NewPaymentUsecase(gateway *razorpay.Client, orderRepo domain.OrderRepository) *PaymentUsecase {
	return &PaymentUsecase{
		gateway:   gateway,
		orderRepo: orderRepo,
	}
}

// CreateGatewayOrder registers the order's amount with the gateway and
// returns what the storefront widget needs to open.
func (u *PaymentUsecase) CreateGatewayOrder(ctx context.Context, ref string) (*razorpay.GatewayOrder, error) {
	order, err := u.orderRepo.GetByOrderID(ctx, ref)
	if err != nil {
		return nil, err
	}

	if order.PaymentStatus == domain.PaymentStatusConfirmed {
		return nil, fmt.Errorf("order %s is already paid", order.OrderID)
	}
	if order.IsAbroadOrder && order.DeliveryCharge == nil {
		return nil, fmt.Errorf("delivery charge for this order has not been set yet")
	}

	amount := order.EffectiveTotal()
	if amount <= 0 {
		return nil, fmt.Errorf("order amount must be positive")
	}

	gw, err := u.gateway.CreateOrder(ctx, amount, order.OrderID)
	if err != nil {
		return nil, err
	}

	// Remember the gateway order so the verify step can bind the callback
	// to this order.
	if err := u.orderRepo.UpdatePaymentRef(ctx, order.ID, gw.OrderID); err != nil {
		logger.Error().Err(err).Str("order_id", order.OrderID).Msg("Failed to store gateway order reference")
		return nil, err
	}

	return gw, nil
}

type VerifyPaymentReq struct {
	OrderRef          string `json:"orderId"`
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpaySignature string `json:"razorpaySignature"`
}

// VerifyPayment checks the widget's post-payment signature and confirms the
// order's payment on success. A bad signature marks the payment failed and
// is reported as an error; fulfillment status is never touched either way.
func (u *PaymentUsecase) VerifyPayment(ctx context.Context, req VerifyPaymentReq) (*domain.Order, error) {
	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
		return nil, fmt.Errorf("gateway order, payment and signature are all required")
	}

	order, err := u.orderRepo.GetByOrderID(ctx, req.OrderRef)
	if err != nil {
		return nil, err
	}

	if order.PaymentRef != "" && order.PaymentRef != req.RazorpayOrderID {
		return nil, fmt.Errorf("gateway order does not match this order")
	}

	if !u.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		logger.Warn().
			Str("order_id", order.OrderID).
			Str("gateway_order", req.RazorpayOrderID).
			Msg("Payment signature verification failed")
		if err := u.orderRepo.UpdatePaymentStatus(ctx, order.ID, domain.PaymentStatusFailed); err != nil {
			logger.Error().Err(err).Str("order_id", order.OrderID).Msg("Failed to record failed payment")
		}
		return nil, fmt.Errorf("payment signature verification failed")
	}

	if err := u.orderRepo.UpdatePaymentStatus(ctx, order.ID, domain.PaymentStatusConfirmed); err != nil {
		return nil, err
	}
	if err := u.orderRepo.UpdatePaymentRef(ctx, order.ID, req.RazorpayPaymentID); err != nil {
		logger.Error().Err(err).Str("order_id", order.OrderID).Msg("Failed to store payment reference")
	}

	order.PaymentStatus = domain.PaymentStatusConfirmed
	order.PaymentRef = req.RazorpayPaymentID
	return order, nil
}

// GatewayKeyID exposes the publishable key for the storefront widget.
func (u *PaymentUsecase) GatewayKeyID() string {
	return u.gateway.KeyID()
}
