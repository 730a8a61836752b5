package repository

import (
	"context"

	"github.com/ErlanBelekov/friendlist/internal/domain"
)

// FriendRepository scopes every call by owner. A friend that exists but
// belongs to someone else is reported as domain.ErrFriendNotFound.
type FriendRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Friend, error)
	GetByID(ctx context.Context, id, ownerID string) (*domain.Friend, error)

	// Create assigns ID and timestamps. Returns domain.ErrFriendEmailTaken
	// if the owner already has a friend with that email.
	Create(ctx context.Context, friend *domain.Friend) (*domain.Friend, error)

	// Update replaces the mutable fields of friend.ID and refreshes UpdatedAt.
	// Returns domain.ErrFriendEmailConflict if a different friend of the same
	// owner already uses the email.
	Update(ctx context.Context, friend *domain.Friend) (*domain.Friend, error)

	Delete(ctx context.Context, id, ownerID string) error
}
