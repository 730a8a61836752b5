package usecase

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/friendlist/internal/domain"
	"github.com/ErlanBelekov/friendlist/internal/repository"
)

type FriendUsecase struct {
	repo repository.FriendRepository
}

func NewFriendUsecase(repo repository.FriendRepository) *FriendUsecase {
	return &FriendUsecase{repo: repo}
}

// FriendInput carries the mutable fields for create and update.
// Optional fields left empty are stored as "".
type FriendInput struct {
	Name    string `validate:"required,nonul"`
	Email   string `validate:"required,nonul"`
	Phone   string `validate:"nonul"`
	Company string `validate:"nonul"`
	Notes   string `validate:"nonul"`
}

func (in FriendInput) check() error {
	if err := validate.Struct(in); err != nil {
		tags, err := failedTags(err)
		if err != nil {
			return fmt.Errorf("validate friend: %w", err)
		}
		if tags["required"] {
			return domain.ErrMissingFriendFields
		}
		return domain.ErrNulCharacter
	}
	return nil
}

func (u *FriendUsecase) List(ctx context.Context, ownerID string) ([]*domain.Friend, error) {
	friends, err := u.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	if friends == nil {
		friends = []*domain.Friend{}
	}
	return friends, nil
}

func (u *FriendUsecase) Create(ctx context.Context, ownerID string, input FriendInput) (*domain.Friend, error) {
	if err := input.check(); err != nil {
		return nil, err
	}

	created, err := u.repo.Create(ctx, &domain.Friend{
		OwnerID: ownerID,
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Company: input.Company,
		Notes:   input.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("create friend: %w", err)
	}
	return created, nil
}

// Update reports a missing friend before it looks at the input.
func (u *FriendUsecase) Update(ctx context.Context, ownerID, id string, input FriendInput) (*domain.Friend, error) {
	if _, err := u.repo.GetByID(ctx, id, ownerID); err != nil {
		return nil, fmt.Errorf("get friend: %w", err)
	}
	if err := input.check(); err != nil {
		return nil, err
	}

	updated, err := u.repo.Update(ctx, &domain.Friend{
		ID:      id,
		OwnerID: ownerID,
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Company: input.Company,
		Notes:   input.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("update friend: %w", err)
	}
	return updated, nil
}

func (u *FriendUsecase) Delete(ctx context.Context, ownerID, id string) error {
	if err := u.repo.Delete(ctx, id, ownerID); err != nil {
		return fmt.Errorf("delete friend: %w", err)
	}
	return nil
}
