package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/ErlanBelekov/friendlist/internal/domain"
	"github.com/google/uuid"
)

type UserRepository struct {
	table *Table[domain.User]
	now   func() time.Time
}

func NewUserRepository() *UserRepository {
	return &UserRepository{table: NewTable[domain.User](), now: time.Now}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	created := *user
	created.ID = uuid.NewString()
	created.CreatedAt = r.now().UTC()

	err := r.table.Update(func(tx *Tx[domain.User]) error {
		if _, taken := tx.FindOne(byEmail(created.Email)); taken {
			return domain.ErrEmailTaken
		}
		if err := tx.Insert(created.ID, created); err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	var found domain.User
	err := r.table.View(func(tx *Tx[domain.User]) error {
		u, ok := tx.FindOne(byEmail(email))
		if !ok {
			return domain.ErrUserNotFound
		}
		found = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	var found domain.User
	err := r.table.View(func(tx *Tx[domain.User]) error {
		u, ok := tx.Get(id)
		if !ok {
			return domain.ErrUserNotFound
		}
		found = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func byEmail(email string) func(domain.User) bool {
	return func(u domain.User) bool { return u.Email == email }
}
