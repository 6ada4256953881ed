package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"tiestyle-backend/internal/domain"
	"tiestyle-backend/internal/usecase"
	"tiestyle-backend/pkg/utils"
)

type AdminOrderHandler struct {
	orderUC *usecase.OrderUsecase
}

func NewAdminOrderHandler(uc *usecase.OrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{orderUC: uc}
}

func (h *AdminOrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}

	filter := domain.OrderFilter{
		Page:          page,
		Limit:         limit,
		Status:        r.URL.Query().Get("status"),
		PaymentStatus: r.URL.Query().Get("payment_status"),
		Search:        r.URL.Query().Get("search"),
	}

	if val := r.URL.Query().Get("is_abroad"); val != "" {
		if boolVal, err := strconv.ParseBool(val); err == nil {
			filter.IsAbroad = &boolVal
		}
	}

	orders, total, err := h.orderUC.GetAllOrders(r.Context(), filter)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

func (h *AdminOrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	order, err := h.orderUC.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Order not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, order)
}

func (h *AdminOrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		Status string `json:"status"`
		Note   string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok || user == nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	order, err := h.orderUC.UpdateStatus(r.Context(), id, req.Status, req.Note, user.ID)
	if err != nil {
		utils.WriteError(w, adminOrderErrStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, order)
}

func (h *AdminOrderHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok || user == nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	order, err := h.orderUC.UpdatePaymentStatus(r.Context(), id, req.Status, user.ID)
	if err != nil {
		utils.WriteError(w, adminOrderErrStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, order)
}

// SetDeliveryCharge prices an abroad order after the operator quotes the
// courier.
func (h *AdminOrderHandler) SetDeliveryCharge(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		Charge float64 `json:"charge"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok || user == nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	order, err := h.orderUC.SetDeliveryCharge(r.Context(), id, req.Charge, user.ID)
	if err != nil {
		utils.WriteError(w, adminOrderErrStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, order)
}

func (h *AdminOrderHandler) GetOrderHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	history, err := h.orderUC.GetOrderHistory(r.Context(), id)
	if err != nil {
		utils.WriteError(w, adminOrderErrStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, history)
}

func adminOrderErrStatus(err error) int {
	if errors.Is(err, domain.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
