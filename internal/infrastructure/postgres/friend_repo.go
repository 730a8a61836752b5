package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/friendlist/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	friendColumns        = `id, user_id, name, email, phone, company, notes, created_at, updated_at`
	friendEmailUniqueKey = "friends_user_id_email_key"
)

type FriendRepository struct {
	pool *pgxpool.Pool
}

func NewFriendRepository(pool *pgxpool.Pool) *FriendRepository {
	return &FriendRepository{pool: pool}
}

func (r *FriendRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Friend, error) {
	friends := []*domain.Friend{}
	if !validID(ownerID) {
		return friends, nil
	}

	query := `SELECT ` + friendColumns + ` FROM friends WHERE user_id = $1 ORDER BY seq`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		f, err := scanFriend(rows)
		if err != nil {
			return nil, err
		}
		friends = append(friends, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	return friends, nil
}

func (r *FriendRepository) GetByID(ctx context.Context, id, ownerID string) (*domain.Friend, error) {
	if !validID(id) || !validID(ownerID) {
		return nil, domain.ErrFriendNotFound
	}
	query := `SELECT ` + friendColumns + ` FROM friends WHERE id = $1 AND user_id = $2`
	return scanFriend(r.pool.QueryRow(ctx, query, id, ownerID))
}

func (r *FriendRepository) Create(ctx context.Context, friend *domain.Friend) (*domain.Friend, error) {
	query := `
		INSERT INTO friends (user_id, name, email, phone, company, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + friendColumns

	created, err := scanFriend(r.pool.QueryRow(ctx, query,
		friend.OwnerID,
		friend.Name,
		friend.Email,
		friend.Phone,
		friend.Company,
		friend.Notes,
	))
	if err != nil {
		if constraintViolated(err, friendEmailUniqueKey) {
			return nil, domain.ErrFriendEmailTaken
		}
		return nil, err
	}
	return created, nil
}

// Update replaces the mutable fields of a friend the owner holds.
func (r *FriendRepository) Update(ctx context.Context, friend *domain.Friend) (*domain.Friend, error) {
	if !validID(friend.ID) || !validID(friend.OwnerID) {
		return nil, domain.ErrFriendNotFound
	}

	query := `
		UPDATE friends
		SET    name       = $3,
		       email      = $4,
		       phone      = $5,
		       company    = $6,
		       notes      = $7,
		       updated_at = NOW()
		WHERE  id = $1 AND user_id = $2
		RETURNING ` + friendColumns

	updated, err := scanFriend(r.pool.QueryRow(ctx, query,
		friend.ID,
		friend.OwnerID,
		friend.Name,
		friend.Email,
		friend.Phone,
		friend.Company,
		friend.Notes,
	))
	if err != nil {
		if constraintViolated(err, friendEmailUniqueKey) {
			return nil, domain.ErrFriendEmailConflict
		}
		return nil, err
	}
	return updated, nil
}

func (r *FriendRepository) Delete(ctx context.Context, id, ownerID string) error {
	if !validID(id) || !validID(ownerID) {
		return domain.ErrFriendNotFound
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM friends WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete friend: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFriendNotFound
	}
	return nil
}

func scanFriend(row pgx.Row) (*domain.Friend, error) {
	var f domain.Friend
	err := row.Scan(
		&f.ID, &f.OwnerID, &f.Name, &f.Email, &f.Phone,
		&f.Company, &f.Notes, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFriendNotFound
		}
		return nil, fmt.Errorf("scan friend: %w", err)
	}
	f.CreatedAt = f.CreatedAt.UTC()
	f.UpdatedAt = f.UpdatedAt.UTC()
	return &f, nil
}
