package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"tiestyle-backend/internal/domain"
	"tiestyle-backend/internal/usecase"
	"tiestyle-backend/pkg/logger"
	"tiestyle-backend/pkg/utils"
)

type PaymentHandler struct {
	paymentUC *usecase.PaymentUsecase
}

func NewPaymentHandler(uc *usecase.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{paymentUC: uc}
}

type createGatewayOrderReq struct {
	OrderID string `json:"orderId"`
}

// CreateGatewayOrder registers the order amount with the gateway and hands
// the storefront what the payment widget needs.
func (h *PaymentHandler) CreateGatewayOrder(w http.ResponseWriter, r *http.Request) {
	var req createGatewayOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.OrderID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Order ID required")
		return
	}

	gw, err := h.paymentUC.CreateGatewayOrder(r.Context(), req.OrderID)
	if err != nil {
		logger.Warn().Err(err).Str("order_id", req.OrderID).Msg("Gateway order creation failed")

		status := http.StatusInternalServerError
		msg := err.Error()
		if errors.Is(err, domain.ErrNotFound) {
			status = http.StatusNotFound
		} else if strings.Contains(msg, "already paid") ||
			strings.Contains(msg, "not been set") ||
			strings.Contains(msg, "must be positive") {
			status = http.StatusBadRequest
		}
		utils.WriteError(w, status, msg)
		return
	}

	utils.WriteJSON(w, http.StatusOK, gw)
}

// VerifyPayment confirms or fails the order's payment based on the widget's
// signature callback.
func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req usecase.VerifyPaymentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.paymentUC.VerifyPayment(r.Context(), req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrNotFound) {
			status = http.StatusNotFound
		}
		utils.WriteError(w, status, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"verified": true,
		"order":    order,
	})
}
