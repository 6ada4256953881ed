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

// CartHandler serves the anonymous cart API. The storefront holds a cart
// token; no login is required to shop.
type CartHandler struct {
	cartUC *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{cartUC: uc}
}

func (h *CartHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartUC.CreateCart(r.Context())
	if err != nil {
		logger.Error().Err(err).Msg("CreateCart failed")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create cart")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, cart)
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	cart, err := h.cartUC.GetCart(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Cart not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}
	utils.WriteJSON(w, http.StatusOK, cart)
}

type addItemReq struct {
	ProductID string `json:"productId"`
	Color     string `json:"color"`
	Abroad    bool   `json:"abroad"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req addItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.cartUC.AddItem(r.Context(), id, req.ProductID, req.Color, req.Abroad, req.Quantity)
	if err != nil {
		logger.Warn().Err(err).Str("cart_id", id).Str("product_id", req.ProductID).Msg("AddItem failed")
		utils.WriteError(w, cartErrStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, cart)
}

type setQuantityReq struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sku := r.PathValue("sku")

	var req setQuantityReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cart, err := h.cartUC.SetQuantity(r.Context(), id, sku, req.Quantity)
	if err != nil {
		utils.WriteError(w, cartErrStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sku := r.PathValue("sku")

	cart, err := h.cartUC.RemoveItem(r.Context(), id, sku)
	if err != nil {
		utils.WriteError(w, cartErrStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.cartUC.ClearCart(r.Context(), id); err != nil {
		utils.WriteError(w, cartErrStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Quote prices the cart for a destination state so the storefront can show
// shipping before checkout.
func (h *CartHandler) Quote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	state := r.URL.Query().Get("state")

	cart, totals, err := h.cartUC.Quote(r.Context(), id, state)
	if err != nil {
		utils.WriteError(w, cartErrStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"cart":   cart,
		"totals": totals,
	})
}

func cartErrStatus(err error) int {
	if errors.Is(err, domain.ErrNotFound) {
		return http.StatusNotFound
	}
	msg := err.Error()
	if strings.Contains(msg, "not available") ||
		strings.Contains(msg, "not offered") ||
		strings.Contains(msg, "quantity") ||
		strings.Contains(msg, "not in cart") ||
		strings.Contains(msg, "not found") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
