package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error wraps exactly one of these so the transport
// layer can map a whole family to a status code with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotFound        = errors.New("not found")
)

// ErrNulCharacter rejects text no backend can store (Postgres text columns
// refuse NUL bytes).
var ErrNulCharacter = kindError(ErrValidation, "fields must not contain NUL characters")

func kindError(kind error, msg string) error {
	return fmt.Errorf("%w: %s", kind, msg)
}
