package v1

import (
	"net/http"

	"tiestyle-backend/internal/domain"
	"tiestyle-backend/internal/usecase"
	"tiestyle-backend/pkg/utils"
)

// ConfigHandler serves the public store settings. What the storefront gets
// is the settings document itself; tenant secrets are deployment config and
// never appear in it.
type ConfigHandler struct {
	configUC *usecase.StoreConfigUsecase
}

func NewConfigHandler(uc *usecase.StoreConfigUsecase) *ConfigHandler {
	return &ConfigHandler{configUC: uc}
}

// GET /api/v1/config
func (h *ConfigHandler) GetStoreConfig(w http.ResponseWriter, r *http.Request) {
	sc, err := h.configUC.Get(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusServiceUnavailable, "Store configuration unavailable")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	utils.WriteJSON(w, http.StatusOK, sc)
}

// GET /api/v1/config/enums
func (h *ConfigHandler) GetEnums(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"orderStatuses":   domain.OrderStatuses,
		"paymentStatuses": domain.PaymentStatuses,
		"paymentMethods":  domain.PaymentMethods,
	})
}
