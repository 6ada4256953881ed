package v1

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"tiestyle-backend/internal/domain"
	"tiestyle-backend/internal/usecase"
	"tiestyle-backend/pkg/utils"
)

type AdminCatalogHandler struct {
	catalogUC *usecase.CatalogUsecase
}

func NewAdminCatalogHandler(uc *usecase.CatalogUsecase) *AdminCatalogHandler {
	return &AdminCatalogHandler{catalogUC: uc}
}

// --- Products ---

func (h *AdminCatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req domain.Product
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.catalogUC.CreateProduct(r.Context(), &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusCreated, req)
}

func (h *AdminCatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req domain.Product
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.ID = id

	if err := h.catalogUC.UpdateProduct(r.Context(), &req); err != nil {
		utils.WriteError(w, adminErrStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, req)
}

func (h *AdminCatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.catalogUC.DeleteProduct(r.Context(), id); err != nil {
		utils.WriteError(w, adminErrStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type adjustStockReq struct {
	Delta int `json:"delta"`
}

func (h *AdminCatalogHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req adjustStockReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	newStock, err := h.catalogUC.AdjustStock(r.Context(), id, req.Delta)
	if err != nil {
		utils.WriteError(w, adminErrStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]int{"stock": newStock})
}

// --- Categories ---

// ListCategories returns all categories, inactive included, for the back
// office.
func (h *AdminCatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.catalogUC.GetCategories(r.Context(), false)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, cats)
}

func (h *AdminCatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req domain.Category
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.catalogUC.CreateCategory(r.Context(), &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusCreated, req)
}

func (h *AdminCatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req domain.Category
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.ID = id

	if err := h.catalogUC.UpdateCategory(r.Context(), &req); err != nil {
		utils.WriteError(w, adminErrStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, req)
}

func (h *AdminCatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.catalogUC.DeleteCategory(r.Context(), id); err != nil {
		utils.WriteError(w, adminErrStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Subcategories ---

func (h *AdminCatalogHandler) CreateSubcategory(w http.ResponseWriter, r *http.Request) {
	var req domain.Subcategory
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.catalogUC.CreateSubcategory(r.Context(), &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusCreated, req)
}

func (h *AdminCatalogHandler) UpdateSubcategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req domain.Subcategory
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.ID = id

	if err := h.catalogUC.UpdateSubcategory(r.Context(), &req); err != nil {
		utils.WriteError(w, adminErrStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, req)
}

func (h *AdminCatalogHandler) DeleteSubcategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.catalogUC.DeleteSubcategory(r.Context(), id); err != nil {
		utils.WriteError(w, adminErrStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func adminErrStatus(err error) int {
	if errors.Is(err, domain.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
