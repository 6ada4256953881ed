package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tiestyle-backend/internal/domain"
	"tiestyle-backend/internal/payment/razorpay"
)

const testGatewaySecret = "test_secret"

func signPayment(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testGatewaySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func newPaymentTestEnv() (*PaymentUsecase, *fakeOrderRepo) {
	orderRepo := newFakeOrderRepo()
	gateway := razorpay.NewClient("rzp_test_key", testGatewaySecret, "")
	return NewPaymentUsecase(gateway, orderRepo), orderRepo
}

func TestCreateGatewayOrder_Rejections(t *testing.T) {
	uc, orderRepo := newPaymentTestEnv()

	orderRepo.orders["paid"] = &domain.Order{
		ID:            "paid",
		OrderID:       "ORD-PAID",
		PaymentStatus: domain.PaymentStatusConfirmed,
		Totals:        domain.Totals{Total: 500},
	}
	_, err := uc.CreateGatewayOrder(context.Background(), "ORD-PAID")
	assert.ErrorContains(t, err, "already paid")

	// Abroad orders cannot open the widget until the operator prices them.
	orderRepo.orders["abroad"] = &domain.Order{
		ID:            "abroad",
		OrderID:       "ORD-A",
		PaymentStatus: domain.PaymentStatusPending,
		IsAbroadOrder: true,
		Totals:        domain.Totals{Subtotal: 2000, Total: 2000},
	}
	_, err = uc.CreateGatewayOrder(context.Background(), "ORD-A")
	assert.ErrorContains(t, err, "not been set")

	orderRepo.orders["zero"] = &domain.Order{
		ID:            "zero",
		OrderID:       "ORD-Z",
		PaymentStatus: domain.PaymentStatusPending,
	}
	_, err = uc.CreateGatewayOrder(context.Background(), "ORD-Z")
	assert.ErrorContains(t, err, "must be positive")

	_, err = uc.CreateGatewayOrder(context.Background(), "ORD-NOPE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVerifyPayment_Success(t *testing.T) {
	uc, orderRepo := newPaymentTestEnv()
	orderRepo.orders["id-1"] = &domain.Order{
		ID:            "id-1",
		OrderID:       "ORD-1",
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		PaymentRef:    "order_rzp1",
	}

	order, err := uc.VerifyPayment(context.Background(), VerifyPaymentReq{
		OrderRef:          "ORD-1",
		RazorpayOrderID:   "order_rzp1",
		RazorpayPaymentID: "pay_abc",
		RazorpaySignature: signPayment("order_rzp1", "pay_abc"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentStatusConfirmed, order.PaymentStatus)
	assert.Equal(t, "pay_abc", order.PaymentRef)
	// Fulfillment is an operator concern; a confirmed payment never moves it.
	assert.Equal(t, domain.OrderStatusPending, order.Status)
}

func TestVerifyPayment_BadSignature(t *testing.T) {
	uc, orderRepo := newPaymentTestEnv()
	orderRepo.orders["id-1"] = &domain.Order{
		ID:            "id-1",
		OrderID:       "ORD-1",
		Status:        domain.OrderStatusProcessing,
		PaymentStatus: domain.PaymentStatusPending,
		PaymentRef:    "order_rzp1",
	}

	_, err := uc.VerifyPayment(context.Background(), VerifyPaymentReq{
		OrderRef:          "ORD-1",
		RazorpayOrderID:   "order_rzp1",
		RazorpayPaymentID: "pay_abc",
		RazorpaySignature: "deadbeef",
	})
	assert.ErrorContains(t, err, "signature verification failed")

	stored := orderRepo.orders["id-1"]
	assert.Equal(t, domain.PaymentStatusFailed, stored.PaymentStatus)
	assert.Equal(t, domain.OrderStatusProcessing, stored.Status)
}

func TestVerifyPayment_GatewayOrderMismatch(t *testing.T) {
	uc, orderRepo := newPaymentTestEnv()
	orderRepo.orders["id-1"] = &domain.Order{
		ID:         "id-1",
		OrderID:    "ORD-1",
		PaymentRef: "order_rzp1",
	}

	_, err := uc.VerifyPayment(context.Background(), VerifyPaymentReq{
		OrderRef:          "ORD-1",
		RazorpayOrderID:   "order_other",
		RazorpayPaymentID: "pay_abc",
		RazorpaySignature: signPayment("order_other", "pay_abc"),
	})
	assert.ErrorContains(t, err, "does not match")
}

func TestVerifyPayment_MissingFields(t *testing.T) {
	uc, _ := newPaymentTestEnv()
	_, err := uc.VerifyPayment(context.Background(), VerifyPaymentReq{
		OrderRef:        "ORD-1",
		RazorpayOrderID: "order_rzp1",
	})
	assert.ErrorContains(t, err, "required")
}
