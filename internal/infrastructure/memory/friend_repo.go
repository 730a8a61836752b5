package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/ErlanBelekov/friendlist/internal/domain"
	"github.com/google/uuid"
)

type FriendRepository struct {
	table *Table[domain.Friend]
	now   func() time.Time
}

func NewFriendRepository() *FriendRepository {
	return &FriendRepository{table: NewTable[domain.Friend](), now: time.Now}
}

func (r *FriendRepository) ListByOwner(_ context.Context, ownerID string) ([]*domain.Friend, error) {
	var rows []domain.Friend
	_ = r.table.View(func(tx *Tx[domain.Friend]) error {
		rows = tx.FindBy(func(f domain.Friend) bool { return f.OwnerID == ownerID })
		return nil
	})

	out := make([]*domain.Friend, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func (r *FriendRepository) GetByID(_ context.Context, id, ownerID string) (*domain.Friend, error) {
	var found domain.Friend
	err := r.table.View(func(tx *Tx[domain.Friend]) error {
		f, ok := tx.Get(id)
		if !ok || f.OwnerID != ownerID {
			return domain.ErrFriendNotFound
		}
		found = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *FriendRepository) Create(_ context.Context, friend *domain.Friend) (*domain.Friend, error) {
	now := r.now().UTC()
	created := *friend
	created.ID = uuid.NewString()
	created.CreatedAt = now
	created.UpdatedAt = now

	err := r.table.Update(func(tx *Tx[domain.Friend]) error {
		if _, taken := tx.FindOne(ownedEmail(created.OwnerID, created.Email, "")); taken {
			return domain.ErrFriendEmailTaken
		}
		if err := tx.Insert(created.ID, created); err != nil {
			return fmt.Errorf("insert friend: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *FriendRepository) Update(_ context.Context, friend *domain.Friend) (*domain.Friend, error) {
	var updated domain.Friend
	err := r.table.Update(func(tx *Tx[domain.Friend]) error {
		current, ok := tx.Get(friend.ID)
		if !ok || current.OwnerID != friend.OwnerID {
			return domain.ErrFriendNotFound
		}
		if _, taken := tx.FindOne(ownedEmail(current.OwnerID, friend.Email, current.ID)); taken {
			return domain.ErrFriendEmailConflict
		}

		updated = current
		updated.Name = friend.Name
		updated.Email = friend.Email
		updated.Phone = friend.Phone
		updated.Company = friend.Company
		updated.Notes = friend.Notes
		updated.UpdatedAt = r.now().UTC()

		if _, err := tx.UpdateAt(current.ID, updated); err != nil {
			return fmt.Errorf("update friend: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *FriendRepository) Delete(_ context.Context, id, ownerID string) error {
	return r.table.Update(func(tx *Tx[domain.Friend]) error {
		f, ok := tx.Get(id)
		if !ok || f.OwnerID != ownerID {
			return domain.ErrFriendNotFound
		}
		if _, err := tx.RemoveAt(id); err != nil {
			return fmt.Errorf("delete friend: %w", err)
		}
		return nil
	})
}

// ownedEmail matches friends of ownerID using email, skipping exceptID.
func ownedEmail(ownerID, email, exceptID string) func(domain.Friend) bool {
	return func(f domain.Friend) bool {
		return f.OwnerID == ownerID && f.Email == email && f.ID != exceptID
	}
}
