package domain

import (
	"context"
	"time"
)

type ContextKey string

const UserContextKey ContextKey = "user"

// Roles
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type User struct {
	ID           string    `json:"id"` // UUID
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type RefreshToken struct {
	Token     string    `json:"token"` // UUID
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
	Revoked   bool      `json:"revoked"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetAll(ctx context.Context, limit, offset int) ([]*User, int64, error)
	UpdateProfile(ctx context.Context, id, name, phone string) (*User, error)

	// Refresh Tokens
	SaveRefreshToken(ctx context.Context, token *RefreshToken) error
	GetRefreshToken(ctx context.Context, token string) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, token string) error
}
