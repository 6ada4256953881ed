package v1

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"tiestyle-backend/internal/usecase"
	"tiestyle-backend/pkg/utils"
)

type AdminStatsHandler struct {
	statsUC *usecase.StatsUsecase
}

func NewAdminStatsHandler(uc *usecase.StatsUsecase) *AdminStatsHandler {
	return &AdminStatsHandler{statsUC: uc}
}

func parseRequiredDate(r *http.Request, param string) (time.Time, error) {
	str := r.URL.Query().Get(param)
	if str == "" {
		return time.Time{}, fmt.Errorf("%s parameter is required", param)
	}
	return time.Parse("2006-01-02", str)
}

// GET /admin/stats/summary
func (h *AdminStatsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.statsUC.GetSummary(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}

// GET /admin/stats/daily-sales?start=2026-01-01&end=2026-01-31
func (h *AdminStatsHandler) GetDailySales(w http.ResponseWriter, r *http.Request) {
	start, err := parseRequiredDate(r, "start")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "start date required (format: YYYY-MM-DD)")
		return
	}
	end, err := parseRequiredDate(r, "end")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "end date required (format: YYYY-MM-DD)")
		return
	}

	sales, err := h.statsUC.GetDailySales(r.Context(), start, end)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, sales)
}

// GET /admin/stats/top-products?start=2026-01-01&end=2026-01-31&limit=10
func (h *AdminStatsHandler) GetTopProducts(w http.ResponseWriter, r *http.Request) {
	start, err := parseRequiredDate(r, "start")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "start date required (format: YYYY-MM-DD)")
		return
	}
	end, err := parseRequiredDate(r, "end")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "end date required (format: YYYY-MM-DD)")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	products, err := h.statsUC.GetTopProducts(r.Context(), start, end, limit)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, products)
}
