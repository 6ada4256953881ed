package v1

import (
	"net/http"

	"github.com/goccy/go-json"

	"tiestyle-backend/internal/domain"
	"tiestyle-backend/internal/usecase"
	"tiestyle-backend/pkg/utils"
)

// AdminConfigHandler is the back-office side of the store settings: the
// whole document, or just the delivery rate card.
type AdminConfigHandler struct {
	configUC *usecase.StoreConfigUsecase
}

func NewAdminConfigHandler(uc *usecase.StoreConfigUsecase) *AdminConfigHandler {
	return &AdminConfigHandler{configUC: uc}
}

func (h *AdminConfigHandler) GetStoreConfig(w http.ResponseWriter, r *http.Request) {
	sc, err := h.configUC.Get(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, sc)
}

func (h *AdminConfigHandler) UpdateStoreConfig(w http.ResponseWriter, r *http.Request) {
	var req domain.StoreConfig
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.configUC.Update(r.Context(), &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, req)
}

func (h *AdminConfigHandler) UpdateDeliveryRates(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rates []domain.DeliveryRate `json:"rates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sc, err := h.configUC.UpdateDeliveryRates(r.Context(), req.Rates)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, sc.Delivery)
}
