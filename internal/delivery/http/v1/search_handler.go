package v1

import (
	"net/http"
	"strconv"

	"tiestyle-backend/internal/domain"
	"tiestyle-backend/internal/usecase"
	"tiestyle-backend/pkg/utils"
)

type SearchHandler struct {
	catalogUC *usecase.CatalogUsecase
}

func NewSearchHandler(uc *usecase.CatalogUsecase) *SearchHandler {
	return &SearchHandler{catalogUC: uc}
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	if query == "" {
		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"products": []domain.Product{},
			"meta":     domain.Pagination{Page: 1, Limit: limit},
		})
		return
	}

	products, pagination, err := h.catalogUC.Search(r.Context(), query, page, limit)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"meta":     pagination,
	})
}
