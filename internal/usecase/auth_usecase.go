package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tiestyle-backend/internal/domain"
	"tiestyle-backend/pkg/logger"
	"tiestyle-backend/pkg/utils"
)

type AuthUsecase struct {
	userRepo           domain.UserRepository
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
}

func NewAuthUsecase(userRepo domain.UserRepository, atExpiry, rtExpiry time.Duration) *AuthUsecase {
	return &AuthUsecase{
		userRepo:           userRepo,
		accessTokenExpiry:  atExpiry,
		refreshTokenExpiry: rtExpiry,
	}
}

// Register creates a customer account. Admin accounts are provisioned out of
// band, not through this endpoint.
func (u *AuthUsecase) Register(ctx context.Context, email, password, name, phone string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}

	existing, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("an account with this email already exists")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           utils.GenerateUUID(),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
		Name:         name,
		Phone:        phone,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Str("user_id", user.ID).Msg("New account registered")
	return user, nil
}

// Login verifies credentials and issues an access token plus a stored
// refresh token. The same error is returned for unknown email and wrong
// password.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (string, string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", "", nil, fmt.Errorf("invalid email or password")
		}
		return "", "", nil, err
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return "", "", nil, fmt.Errorf("invalid email or password")
	}

	accessToken, err := utils.GenerateJWT(user.ID, user.Email, user.Role, u.accessTokenExpiry)
	if err != nil {
		return "", "", nil, err
	}

	refreshTokenStr := utils.GenerateUUID()
	refreshToken := &domain.RefreshToken{
		Token:     refreshTokenStr,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(u.refreshTokenExpiry),
		CreatedAt: time.Now(),
	}
	if err := u.userRepo.SaveRefreshToken(ctx, refreshToken); err != nil {
		return "", "", nil, err
	}

	return accessToken, refreshTokenStr, user, nil
}

func (u *AuthUsecase) RefreshAccessToken(ctx context.Context, refreshTokenStr string) (string, error) {
	rt, err := u.userRepo.GetRefreshToken(ctx, refreshTokenStr)
	if err != nil {
		return "", fmt.Errorf("invalid refresh token")
	}
	if rt.Revoked {
		return "", fmt.Errorf("token revoked")
	}
	if time.Now().After(rt.ExpiresAt) {
		return "", fmt.Errorf("token expired")
	}

	user, err := u.userRepo.GetByID(ctx, rt.UserID)
	if err != nil {
		return "", err
	}

	return utils.GenerateJWT(user.ID, user.Email, user.Role, u.accessTokenExpiry)
}

func (u *AuthUsecase) RevokeToken(ctx context.Context, refreshTokenStr string) error {
	return u.userRepo.RevokeRefreshToken(ctx, refreshTokenStr)
}

func (u *AuthUsecase) UpdateProfile(ctx context.Context, userID, name, phone string) (*domain.User, error) {
	return u.userRepo.UpdateProfile(ctx, userID, name, phone)
}

func (u *AuthUsecase) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

func (u *AuthUsecase) GetAllUsers(ctx context.Context, limit, offset int) ([]*domain.User, int64, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return u.userRepo.GetAll(ctx, limit, offset)
}
