package user

import (
	"context"

	"github.com/go-faster/errors"
)

const minPasswordLen = 8

// CreateRequest holds the input for registering a new user.
type CreateRequest struct {
	Username        string
	Password        string
	ConfirmPassword string
}

// Service encapsulates user registration business logic.
type Service struct {
	users  Repository
	hasher Hasher
}

// NewService creates a user Service with the required dependencies.
func NewService(users Repository, hasher Hasher) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
	}
}

// Create validates the registration request, hashes the password, and
// persists the user together with their empty cart. Persistence is a single
// atomic operation, so a failed registration leaves no user behind and can
// simply be retried.
//
// Validation order is fixed and short-circuits on the first failure:
// empty username, then password length, then password confirmation, then
// username uniqueness. Nothing is persisted or hashed until every check
// passes.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*User, error) {
	if req.Username == "" {
		return nil, ErrEmptyUsername
	}
	if len(req.Password) < minPasswordLen {
		return nil, ErrWeakPassword
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	_, err := s.users.GetByUsername(ctx, req.Username)
	if err == nil {
		return nil, ErrDuplicateUsername
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, errors.Wrap(err, "check username")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	u := &User{
		Username:     req.Username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, errors.Wrap(err, "create user")
	}

	return u, nil
}
