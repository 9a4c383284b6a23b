package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/averku/storefront/internal/domain/user"
)

const (
	createUserSQL = `INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id`

	createCartSQL = `INSERT INTO carts (user_id, items, total) VALUES ($1, '[]', 0)`

	getUserByIDSQL = `SELECT id, username, password_hash FROM users WHERE id = $1`

	getUserByUsernameSQL = `SELECT id, username, password_hash FROM users WHERE username = $1`
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

var _ user.Repository = (*UserRepository)(nil)

// UserRepository implements user.Repository backed by PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a UserRepository that uses the given pool.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create persists a new user and assigns its database-generated ID. The
// user's empty cart is inserted in the same transaction, so a failure at
// either step leaves nothing behind. A username collision (including one
// racing past the service-level check) maps to user.ErrDuplicateUsername.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("creating user %q: begin: %w", u.Username, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.QueryRow(ctx, createUserSQL, u.Username, u.PasswordHash).Scan(&u.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return user.ErrDuplicateUsername
		}
		return fmt.Errorf("creating user %q: %w", u.Username, err)
	}

	if _, err := tx.Exec(ctx, createCartSQL, u.ID); err != nil {
		return fmt.Errorf("creating cart for user %d: %w", u.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("creating user %q: commit: %w", u.Username, err)
	}
	return nil
}

// GetByID returns a single user by its identifier.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	rows, err := r.pool.Query(ctx, getUserByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting user %d: %w", id, err)
	}

	u, err := pgx.CollectExactlyOneRow(rows, scanUser)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("getting user %d: %w", id, err)
	}
	return &u, nil
}

// GetByUsername returns a single user by exact username match.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	rows, err := r.pool.Query(ctx, getUserByUsernameSQL, username)
	if err != nil {
		return nil, fmt.Errorf("getting user %q: %w", username, err)
	}

	u, err := pgx.CollectExactlyOneRow(rows, scanUser)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("getting user %q: %w", username, err)
	}
	return &u, nil
}

func scanUser(row pgx.CollectableRow) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash)
	return u, err
}
