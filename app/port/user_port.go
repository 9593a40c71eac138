package port

//go:generate mockgen -source=user_port.go -destination=../mocks/mock_user_port.go

import (
	"context"

	"github.com/peitrae/tandain-auth/app/domain"
)

// UserUsecase defines user read operations exposed to the REST layer
type UserUsecase interface {
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
}

// IdentityResolver is the find-or-create boundary over the identity
// store. FindByEmail returns (nil, nil) when no user exists; Create
// fails with DUPLICATE_EMAIL when the email uniqueness invariant is
// violated by a concurrent first login.
type IdentityResolver interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, name, email string, photoURL *string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// UserRepositoryPort defines user data access
type UserRepositoryPort interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}
