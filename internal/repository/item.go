package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/averku/storefront/internal/domain/item"
)

const (
	listItemsSQL = `SELECT id, name, description, price FROM items ORDER BY id`

	getItemByIDSQL = `SELECT id, name, description, price FROM items WHERE id = $1`

	findItemsByNameSQL = `SELECT id, name, description, price FROM items WHERE name = $1 ORDER BY id`
)

var _ item.Repository = (*ItemRepository)(nil)

// ItemRepository implements item.Repository backed by PostgreSQL.
type ItemRepository struct {
	pool *pgxpool.Pool
}

// NewItemRepository returns an ItemRepository that uses the given pool.
func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

// List returns all catalog items ordered by ID.
func (r *ItemRepository) List(ctx context.Context) ([]item.Item, error) {
	rows, err := r.pool.Query(ctx, listItemsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return pgx.CollectRows(rows, scanItem)
}

// GetByID returns a single item by its identifier.
func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*item.Item, error) {
	rows, err := r.pool.Query(ctx, getItemByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting item %d: %w", id, err)
	}

	it, err := pgx.CollectExactlyOneRow(rows, scanItem)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, item.ErrNotFound
		}
		return nil, fmt.Errorf("getting item %d: %w", id, err)
	}
	return &it, nil
}

// FindByName returns items whose name matches exactly. No match yields an
// empty slice, not an error.
func (r *ItemRepository) FindByName(ctx context.Context, name string) ([]item.Item, error) {
	rows, err := r.pool.Query(ctx, findItemsByNameSQL, name)
	if err != nil {
		return nil, fmt.Errorf("finding items by name %q: %w", name, err)
	}
	return pgx.CollectRows(rows, scanItem)
}

func scanItem(row pgx.CollectableRow) (item.Item, error) {
	var (
		it    item.Item
		price decimal.Decimal
	)
	err := row.Scan(&it.ID, &it.Name, &it.Description, &price)
	it.Price = price
	return it, err
}
