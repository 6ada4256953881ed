package v1

import (
	"errors"
	"net/http"
	"strconv"

	"tiestyle-backend/internal/domain"
	"tiestyle-backend/internal/usecase"
	"tiestyle-backend/pkg/utils"
)

type CatalogHandler struct {
	catalogUC *usecase.CatalogUsecase
}

func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUC: uc}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 24
	}

	filter := domain.ProductFilter{
		CategoryID:    q.Get("category"),
		SubcategoryID: q.Get("subcategory"),
		Query:         q.Get("q"),
		AvailableOnly: q.Get("all") != "true",
		Sort:          q.Get("sort"),
		Limit:         limit,
		Offset:        (page - 1) * limit,
	}

	products, total, err := h.catalogUC.ListProducts(r.Context(), filter)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	product, err := h.catalogUC.GetProductDetails(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Product not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.catalogUC.GetCategories(r.Context(), true)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	utils.WriteJSON(w, http.StatusOK, cats)
}

func (h *CatalogHandler) GetSubcategories(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("category")
	subs, err := h.catalogUC.GetSubcategories(r.Context(), categoryID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch subcategories")
		return
	}
	utils.WriteJSON(w, http.StatusOK, subs)
}
