package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/peitrae/tandain-auth/app/domain"
	"github.com/peitrae/tandain-auth/app/port"
	apperrors "github.com/peitrae/tandain-auth/app/utils/errors"
)

// PostgreSQL error code for unique constraint violations
const uniqueViolationCode = "23505"

// UserRepository implements port.UserRepositoryPort for PostgreSQL
type UserRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db DatabaseIface, logger *slog.Logger) port.UserRepositoryPort {
	return &UserRepository{
		db:     db,
		logger: logger.With("component", "user_repository"),
	}
}

// GetByEmail looks a user up by email. A missing row is not an error:
// it returns (nil, nil) so the caller can decide to provision.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, name, email, photo_url, created_at
		FROM users
		WHERE email = $1`

	user := &domain.User{}
	err := r.db.QueryRow(ctx, query, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.PhotoURL, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to query user by email", "error", err)
		return nil, apperrors.Wrap(apperrors.ErrCodeIdentityStoreUnavailable, "failed to look up user by email", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID. A missing row returns (nil, nil).
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, name, email, photo_url, created_at
		FROM users
		WHERE id = $1`

	user := &domain.User{}
	err := r.db.QueryRow(ctx, query, id).
		Scan(&user.ID, &user.Name, &user.Email, &user.PhotoURL, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to query user by id", "user_id", id, "error", err)
		return nil, apperrors.Wrap(apperrors.ErrCodeIdentityStoreUnavailable, "failed to look up user by id", err)
	}

	return user, nil
}

// Create inserts a new user and fills in the generated ID and creation
// time. A unique violation on email maps to DUPLICATE_EMAIL so the
// caller can reconcile a concurrent first login.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (name, email, photo_url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query, user.Name, user.Email, user.PhotoURL).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.Wrap(apperrors.ErrCodeDuplicateEmail, "a user with this email already exists", err)
		}
		r.logger.Error("failed to create user", "email", user.Email, "error", err)
		return apperrors.Wrap(apperrors.ErrCodeIdentityStoreUnavailable, "failed to create user", err)
	}

	return nil
}
