package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/averku/storefront/internal/domain/cart"
)

// Order is an immutable snapshot of a cart taken at submission time. Items
// and total are value copies; later cart or catalog edits never alter an
// existing order.
type Order struct {
	ID        string
	UserID    int64
	Items     []cart.Line
	Total     decimal.Decimal
	CreatedAt time.Time
}

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	ListByUserID(ctx context.Context, userID int64) ([]Order, error)
}
