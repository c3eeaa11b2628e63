// Package user defines the user domain entity
package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
)

// User represents an account that owns recipes, favorites,
// verifications and collections.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// New creates a user from a normalized email and an already-hashed
// password. Hashing lives in the security layer so the cost factor
// stays configurable in one place.
func New(email, passwordHash string) (*User, error) {
	email = Normalize(email)
	if !valid(email) {
		return nil, ErrInvalidEmail
	}
	return &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// Normalize lowercases and trims an email for uniqueness comparison.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func valid(email string) bool {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}
