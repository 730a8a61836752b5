// Package password hashes and verifies user passwords with bcrypt.
package password

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost matches the BCRYPT_COST default.
	DefaultCost = 12
	// MaxLength is the longest input bcrypt accepts, in bytes.
	MaxLength = 72
)

var ErrTooLong = errors.New("password exceeds 72 bytes")

type Hasher struct {
	cost int

	decoyOnce sync.Once
	decoy     []byte
}

// NewHasher returns a Hasher using cost, clamped to bcrypt's accepted range.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(plain string) (string, error) {
	if len(plain) > MaxLength {
		return "", ErrTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plain matches hash. A mismatch is not an error.
func (h *Hasher) Verify(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("bcrypt compare: %w", err)
	}
}

// Decoy spends the same time as a failed Verify. Used when there is no
// stored hash to compare against, so timing does not reveal that.
func (h *Hasher) Decoy(plain string) {
	h.decoyOnce.Do(func() {
		h.decoy, _ = bcrypt.GenerateFromPassword([]byte("decoy-password"), h.cost)
	})
	_ = bcrypt.CompareHashAndPassword(h.decoy, []byte(plain))
}
