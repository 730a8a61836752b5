package repository

import (
	"context"

	"github.com/ErlanBelekov/friendlist/internal/domain"
)

type UserRepository interface {
	// Create stores a new user and fills in ID and CreatedAt.
	// Returns domain.ErrEmailTaken if the email is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
