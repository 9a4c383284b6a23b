package user

import (
	"context"

	"github.com/go-faster/errors"
)

// Sentinel errors for user lookup and registration validation.
var (
	ErrNotFound          = errors.New("user not found")
	ErrEmptyUsername     = errors.New("username cannot be empty")
	ErrWeakPassword      = errors.New("password must be at least 8 characters long")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrDuplicateUsername = errors.New("username already exists")
)

// User represents a registered account. PasswordHash is the opaque one-way
// hash of the user's password; plaintext is never stored.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}

// Repository defines persistence operations for users.
type Repository interface {
	// Create persists a new user, assigns its ID, and provisions the user's
	// empty cart in the same atomic write: either both exist afterwards or
	// neither does, so a user is never left without a cart.
	// Returns ErrDuplicateUsername when the username is already taken.
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// Hasher produces an opaque one-way hash of a plaintext password.
type Hasher interface {
	Hash(plaintext string) (string, error)
}
