package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/averku/storefront/internal/domain/cart"
)

const (
	getCartByUserIDSQL = `SELECT id, user_id, items, total, version FROM carts WHERE user_id = $1`

	updateCartSQL = `UPDATE carts SET items = $2, total = $3, version = version + 1
		WHERE id = $1 AND version = $4`
)

var _ cart.Repository = (*CartRepository)(nil)

// CartRepository implements cart.Repository backed by PostgreSQL. Cart lines
// are stored as a JSONB array, one element per unit.
type CartRepository struct {
	pool *pgxpool.Pool
}

// NewCartRepository returns a CartRepository that uses the given pool.
func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

// GetByUserID returns the cart owned by the given user. Carts are created
// alongside their user in UserRepository.Create, so a missing row here is an
// internal inconsistency, not a lookup miss.
func (r *CartRepository) GetByUserID(ctx context.Context, userID int64) (*cart.Cart, error) {
	rows, err := r.pool.Query(ctx, getCartByUserIDSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("getting cart for user %d: %w", userID, err)
	}

	c, err := pgx.CollectExactlyOneRow(rows, scanCart)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("cart for user %d: %w", userID, pgx.ErrNoRows)
		}
		return nil, fmt.Errorf("getting cart for user %d: %w", userID, err)
	}
	return &c, nil
}

// Update persists the cart's items and total in a single statement guarded
// by the version read with the cart. Returns cart.ErrConflict when a
// concurrent mutation won the race.
func (r *CartRepository) Update(ctx context.Context, c *cart.Cart) error {
	itemsJSON, err := json.Marshal(c.Items)
	if err != nil {
		return fmt.Errorf("marshaling cart items: %w", err)
	}

	tag, err := r.pool.Exec(ctx, updateCartSQL, c.ID, itemsJSON, c.Total, c.Version)
	if err != nil {
		return fmt.Errorf("updating cart %d: %w", c.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return cart.ErrConflict
	}

	c.Version++
	return nil
}

func scanCart(row pgx.CollectableRow) (cart.Cart, error) {
	var (
		c         cart.Cart
		itemsJSON []byte
		total     decimal.Decimal
	)
	if err := row.Scan(&c.ID, &c.UserID, &itemsJSON, &total, &c.Version); err != nil {
		return c, err
	}
	c.Total = total

	if err := json.Unmarshal(itemsJSON, &c.Items); err != nil {
		return c, fmt.Errorf("unmarshaling cart items: %w", err)
	}
	return c, nil
}
