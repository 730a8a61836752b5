package domain

import "time"

var (
	ErrMissingFriendFields = kindError(ErrValidation, "name and email are required")
	ErrFriendEmailTaken    = kindError(ErrConflict, "friend with this email already exists")
	ErrFriendEmailConflict = kindError(ErrConflict, "another friend with this email already exists")
	ErrFriendNotFound      = kindError(ErrNotFound, "friend not found")
)

// Friend is a contact owned by exactly one user. Email is unique per owner.
type Friend struct {
	ID        string
	OwnerID   string
	Name      string
	Email     string
	Phone     string
	Company   string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
