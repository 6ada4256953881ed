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

type OrderHandler struct {
	orderUC *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{orderUC: uc}
}

func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req usecase.CheckoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderUC.Checkout(r.Context(), req)
	if err != nil {
		logger.Warn().Err(err).Str("cart_id", req.CartID).Msg("Checkout failed")

		status := http.StatusInternalServerError
		msg := err.Error()
		if strings.Contains(msg, "required") ||
			strings.Contains(msg, "cart is empty") ||
			strings.Contains(msg, "not found") ||
			strings.Contains(msg, "unknown payment method") ||
			strings.Contains(msg, "not accepted") {
			status = http.StatusBadRequest
		}
		utils.WriteError(w, status, msg)
		return
	}

	logger.Info().
		Str("order_id", order.OrderID).
		Float64("total", order.Totals.Total).
		Str("shipping_mode", order.Totals.Mode).
		Bool("abroad", order.IsAbroadOrder).
		Msg("Order placed")

	utils.WriteJSON(w, http.StatusCreated, order)
}

// Track serves the public tracking page. Accepts the public reference or
// the internal key, so old links keep working.
func (h *OrderHandler) Track(w http.ResponseWriter, r *http.Request) {
	ref := r.PathValue("ref")
	if ref == "" {
		utils.WriteError(w, http.StatusBadRequest, "Order reference required")
		return
	}

	resp, err := h.orderUC.Track(r.Context(), ref)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Order not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// MyOrders lists orders by the contact details used at checkout.
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	phone := r.URL.Query().Get("phone")

	orders, err := h.orderUC.MyOrders(r.Context(), email, phone)
	if err != nil {
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "required") {
			status = http.StatusBadRequest
		}
		utils.WriteError(w, status, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}
