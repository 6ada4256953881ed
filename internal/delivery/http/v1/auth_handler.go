package v1

import (
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"tiestyle-backend/internal/domain"
	"tiestyle-backend/internal/usecase"
	"tiestyle-backend/pkg/logger"
	"tiestyle-backend/pkg/utils"
)

type AuthHandler struct {
	authUC *usecase.AuthUsecase
}

func NewAuthHandler(authUC *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.authUC.Register(r.Context(), req.Email, req.Password, req.Name, req.Phone)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusCreated, user)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	accessToken, refreshToken, user, err := h.authUC.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, err.Error())
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   7 * 24 * 60 * 60,
	})

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"accessToken": accessToken,
		"user":        user,
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Refresh token missing")
		return
	}

	newAccessToken, err := h.authUC.RefreshAccessToken(r.Context(), cookie.Value)
	if err != nil {
		// Clear the cookie so the client stops retrying a dead token.
		http.SetCookie(w, &http.Cookie{Name: "refresh_token", MaxAge: -1, Path: "/"})
		utils.WriteError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"accessToken": newAccessToken,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err == nil && cookie.Value != "" {
		if err := h.authUC.RevokeToken(r.Context(), cookie.Value); err != nil {
			logger.Error().Err(err).Msg("Failed to revoke token on logout")
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
	})
	http.SetCookie(w, &http.Cookie{
		Name:   "refresh_token",
		MaxAge: -1,
		Path:   "/",
	})
	w.WriteHeader(http.StatusOK)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.authUC.GetUserByID(r.Context(), userCtx.ID)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	utils.WriteJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.authUC.UpdateProfile(r.Context(), user.ID, req.Name, req.Phone)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, updated)
}

// ListUsers is the back-office account listing.
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}

	offset := (page - 1) * limit
	users, count, err := h.authUC.GetAllUsers(r.Context(), limit, offset)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list users")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	totalPages := 0
	if count > 0 {
		totalPages = int((count + int64(limit) - 1) / int64(limit))
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"meta": domain.Pagination{
			Page:       page,
			Limit:      limit,
			TotalItems: count,
			TotalPages: totalPages,
		},
	})
}
