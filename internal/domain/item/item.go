package item

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested item does not exist.
var ErrNotFound = errors.New("item not found")

// Item represents a catalog entry available for purchase. Items are created
// out of band (catalog seeding) and never mutated afterwards.
type Item struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
}

// Repository defines read operations for the item catalog.
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	GetByID(ctx context.Context, id int64) (*Item, error)
	// FindByName returns all items whose name matches exactly. An empty
	// result is not an error.
	FindByName(ctx context.Context, name string) ([]Item, error)
}
