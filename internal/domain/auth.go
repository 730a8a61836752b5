package domain

import (
	"time"
)

var (
	ErrMissingRegistrationFields = kindError(ErrValidation, "name, email, and password are required")
	ErrPasswordTooShort          = kindError(ErrValidation, "password must be at least 6 characters long")
	ErrPasswordTooLong           = kindError(ErrValidation, "password must be at most 72 bytes long")
	ErrMissingCredentials        = kindError(ErrValidation, "email and password are required")
	ErrEmailTaken                = kindError(ErrConflict, "user already exists with this email")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = kindError(ErrUnauthenticated, "invalid credentials")
	ErrTokenMissing       = kindError(ErrUnauthenticated, "access token required")
	ErrTokenInvalid       = kindError(ErrUnauthenticated, "token is invalid or expired")

	ErrUserNotFound = kindError(ErrNotFound, "user not found")
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
