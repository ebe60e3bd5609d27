// Package security provides credential handling primitives for the service.
package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher defines the interface for password hashing operations.
// It abstracts the underlying algorithm so the usecase layer never
// depends on bcrypt directly.
type Hasher interface {
	// Hash generates a salted one-way hash from a plaintext password.
	// Hashing the same plaintext twice yields different outputs.
	Hash(password string) (string, error)

	// Verify reports whether the plaintext password matches the hash.
	Verify(password, hash string) bool
}

// BcryptHasher implements Hasher using the bcrypt adaptive hashing scheme.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher with the given cost.
// A cost below bcrypt.MinCost falls back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash generates a salted bcrypt hash from the plaintext password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether the plaintext password matches the stored hash.
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
