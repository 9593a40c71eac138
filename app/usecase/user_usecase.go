package usecase

import (
	"context"
	"log/slog"

	"github.com/peitrae/tandain-auth/app/domain"
	"github.com/peitrae/tandain-auth/app/port"
	apperrors "github.com/peitrae/tandain-auth/app/utils/errors"
)

// UserUseCase implements user read operations
type UserUseCase struct {
	users  port.IdentityResolver
	logger *slog.Logger
}

// NewUserUseCase creates a new UserUseCase instance
func NewUserUseCase(users port.IdentityResolver, logger *slog.Logger) *UserUseCase {
	return &UserUseCase{
		users:  users,
		logger: logger.With("component", "user_usecase"),
	}
}

// GetUserByID retrieves a user by ID
func (uc *UserUseCase) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "user not found")
	}

	return user, nil
}
