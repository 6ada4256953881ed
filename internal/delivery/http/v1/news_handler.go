package v1

import (
	"net/http"

	"tiestyle-backend/internal/usecase"
	"tiestyle-backend/pkg/utils"
)

type NewsHandler struct {
	newsUC *usecase.NewsUsecase
}

func NewNewsHandler(uc *usecase.NewsUsecase) *NewsHandler {
	return &NewsHandler{newsUC: uc}
}

// GET /api/v1/news - active announcements for the storefront.
func (h *NewsHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	items, err := h.newsUC.GetActive(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch news")
		return
	}
	utils.WriteJSON(w, http.StatusOK, items)
}
