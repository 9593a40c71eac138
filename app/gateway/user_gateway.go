package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/peitrae/tandain-auth/app/domain"
	"github.com/peitrae/tandain-auth/app/port"
	apperrors "github.com/peitrae/tandain-auth/app/utils/errors"
)

// UserGateway implements port.IdentityResolver.
// It acts as an anti-corruption layer between the login pipeline and
// the user repository: input validation and logging live here, storage
// errors pass through already classified.
type UserGateway struct {
	userRepo port.UserRepositoryPort
	logger   *slog.Logger
}

// NewUserGateway creates a new UserGateway instance
func NewUserGateway(userRepo port.UserRepositoryPort, logger *slog.Logger) *UserGateway {
	return &UserGateway{
		userRepo: userRepo,
		logger:   logger.With("component", "user_gateway"),
	}
}

// FindByEmail looks up a user by email; (nil, nil) means no user exists.
func (g *UserGateway) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, apperrors.New(apperrors.ErrCodeValidationFailed, "email cannot be empty")
	}

	user, err := g.userRepo.GetByEmail(ctx, email)
	if err != nil {
		g.logger.Error("failed to find user by email", "error", err)
		return nil, err
	}

	return user, nil
}

// Create provisions a new user from Google profile data.
func (g *UserGateway) Create(ctx context.Context, name, email string, photoURL *string) (*domain.User, error) {
	if err := validateNewUser(name, email); err != nil {
		g.logger.Error("rejected user creation", "error", err)
		return nil, apperrors.Wrap(apperrors.ErrCodeValidationFailed, err.Error(), err)
	}

	user := &domain.User{
		Name:     name,
		Email:    email,
		PhotoURL: photoURL,
	}

	if err := g.userRepo.Create(ctx, user); err != nil {
		if !apperrors.IsCode(err, apperrors.ErrCodeDuplicateEmail) {
			g.logger.Error("failed to create user", "email", email, "error", err)
		}
		return nil, err
	}

	g.logger.Info("user created", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// GetByID retrieves a user by ID; (nil, nil) means no such user.
func (g *UserGateway) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if id <= 0 {
		return nil, apperrors.New(apperrors.ErrCodeValidationFailed, "user id must be positive")
	}

	return g.userRepo.GetByID(ctx, id)
}

func validateNewUser(name, email string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	return nil
}
