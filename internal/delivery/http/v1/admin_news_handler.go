package v1

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"tiestyle-backend/internal/domain"
	"tiestyle-backend/internal/usecase"
	"tiestyle-backend/pkg/utils"
)

type AdminNewsHandler struct {
	newsUC *usecase.NewsUsecase
}

func NewAdminNewsHandler(uc *usecase.NewsUsecase) *AdminNewsHandler {
	return &AdminNewsHandler{newsUC: uc}
}

func (h *AdminNewsHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.newsUC.GetAll(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, items)
}

func (h *AdminNewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	item, err := h.newsUC.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "News item not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, item)
}

func (h *AdminNewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.NewsItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.newsUC.Create(r.Context(), &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusCreated, req)
}

func (h *AdminNewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req domain.NewsItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.ID = id

	if err := h.newsUC.Update(r.Context(), &req); err != nil {
		utils.WriteError(w, adminErrStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, req)
}

func (h *AdminNewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.newsUC.Delete(r.Context(), id); err != nil {
		utils.WriteError(w, adminErrStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
