package cart

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/averku/storefront/internal/domain/item"
)

// ErrConflict is returned by Repository.Update when the cart was modified
// by a concurrent request between the read and the write.
var ErrConflict = errors.New("cart modified concurrently")

// Line is a single unit of an item in a cart. Adding quantity N of an item
// appends N lines, so duplicates are expected. Name and price are copied
// from the catalog at add time.
type Line struct {
	ItemID int64           `json:"item_id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}

// Cart is a user's current selection of item instances pending order
// submission. Total always equals the sum of line prices.
//
// Version is the optimistic concurrency token carried between the read and
// the write of a mutation; two concurrent mutations of the same cart cannot
// both commit.
type Cart struct {
	ID      int64
	UserID  int64
	Items   []Line
	Total   decimal.Decimal
	Version int64
}

// add appends one unit of the given item and grows the total by its price.
func (c *Cart) add(it item.Item) {
	c.Items = append(c.Items, Line{
		ItemID: it.ID,
		Name:   it.Name,
		Price:  it.Price,
	})
	c.Total = c.Total.Add(it.Price)
}

// removeOne removes the first line matching itemID and shrinks the total by
// that line's price. It reports whether a line was removed; removing from a
// cart with no matching line is a no-op.
func (c *Cart) removeOne(itemID int64) bool {
	for i, line := range c.Items {
		if line.ItemID == itemID {
			c.Total = c.Total.Sub(line.Price)
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Repository defines persistence operations for carts.
type Repository interface {
	// GetByUserID returns the cart owned by the given user. Every user has
	// exactly one cart, created at registration.
	GetByUserID(ctx context.Context, userID int64) (*Cart, error)
	// Update persists the cart's current items and total as a single
	// atomic write.
	Update(ctx context.Context, c *Cart) error
}
