package order

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/averku/storefront/internal/domain/cart"
	"github.com/averku/storefront/internal/domain/user"
)

// Service owns the conversion of a user's mutable cart into a persisted
// order snapshot.
type Service struct {
	users  user.Repository
	carts  cart.Repository
	orders Repository
}

// NewService creates an order Service with the required domain dependencies.
func NewService(users user.Repository, carts cart.Repository, orders Repository) *Service {
	return &Service{
		users:  users,
		carts:  carts,
		orders: orders,
	}
}

// Submit snapshots the user's current cart into a new order and persists it.
// The source cart is left untouched, so repeated submissions of the same
// cart state produce multiple identical orders. An empty cart submits an
// empty order. Returns user.ErrNotFound when the username does not resolve.
func (s *Service) Submit(ctx context.Context, username string) (*Order, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get user %q", username)
	}

	c, err := s.carts.GetByUserID(ctx, u.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "get cart for user %d", u.ID)
	}

	// Copy the line slice so later cart mutations cannot reach into the
	// order's snapshot.
	items := make([]cart.Line, len(c.Items))
	copy(items, c.Items)

	o := &Order{
		ID:     uuid.New().String(),
		UserID: u.ID,
		Items:  items,
		Total:  c.Total,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	return o, nil
}

// ListForUser returns every order owned by the given user, which may be an
// empty slice. Returns user.ErrNotFound when the username does not resolve.
func (s *Service) ListForUser(ctx context.Context, username string) ([]Order, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get user %q", username)
	}

	orders, err := s.orders.ListByUserID(ctx, u.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "list orders for user %d", u.ID)
	}
	return orders, nil
}
