package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tiestyle-backend/internal/domain"
)

type userRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, role, name, phone, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := queryer(ctx, r.db).Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role, name, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID, strings.ToLower(user.Email), user.PasswordHash, user.Role,
		user.Name, user.Phone, user.CreatedAt, user.UpdatedAt)
	return err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := queryer(ctx, r.db).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email))
	return scanUser(row)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := queryer(ctx, r.db).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *userRepository) GetAll(ctx context.Context, limit, offset int) ([]*domain.User, int64, error) {
	q := queryer(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	if limit < 1 {
		limit = 50
	}
	rows, err := q.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *userRepository) UpdateProfile(ctx context.Context, id, name, phone string) (*domain.User, error) {
	_, err := queryer(ctx, r.db).Exec(ctx,
		`UPDATE users SET name = $2, phone = $3, updated_at = $4 WHERE id = $1`,
		id, name, phone, time.Now())
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *userRepository) SaveRefreshToken(ctx context.Context, token *domain.RefreshToken) error {
	_, err := queryer(ctx, r.db).Exec(ctx, `
		INSERT INTO refresh_tokens (token, user_id, expires_at, created_at, revoked)
		VALUES ($1, $2, $3, $4, $5)`,
		token.Token, token.UserID, token.ExpiresAt, token.CreatedAt, token.Revoked)
	return err
}

func (r *userRepository) GetRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := queryer(ctx, r.db).QueryRow(ctx, `
		SELECT token, user_id, expires_at, created_at, revoked
		FROM refresh_tokens WHERE token = $1`, token).
		Scan(&t.Token, &t.UserID, &t.ExpiresAt, &t.CreatedAt, &t.Revoked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *userRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	_, err := queryer(ctx, r.db).Exec(ctx,
		`UPDATE refresh_tokens SET revoked = TRUE WHERE token = $1`, token)
	return err
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Name, &u.Phone,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
