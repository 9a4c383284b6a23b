package cart

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/averku/storefront/internal/domain/item"
	"github.com/averku/storefront/internal/domain/user"
)

// Service owns the rules for mutating a user's cart against live catalog
// data. Each call is a single read-modify-write: resolve the user and item,
// apply the mutation in memory, persist the updated cart.
type Service struct {
	users user.Repository
	items item.Repository
	carts Repository
}

// NewService creates a cart Service with the required domain dependencies.
func NewService(users user.Repository, items item.Repository, carts Repository) *Service {
	return &Service{
		users: users,
		items: items,
		carts: carts,
	}
}

// AddItem appends quantity units of the given item to the user's cart and
// persists the result. A quantity of zero or less is a no-op returning the
// unchanged cart. Returns user.ErrNotFound or item.ErrNotFound when the
// username or item does not resolve.
func (s *Service) AddItem(ctx context.Context, username string, itemID int64, quantity int) (*Cart, error) {
	c, it, err := s.resolve(ctx, username, itemID)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		return c, nil
	}

	for range quantity {
		c.add(*it)
	}

	if err := s.carts.Update(ctx, c); err != nil {
		return nil, errors.Wrap(err, "update cart")
	}
	return c, nil
}

// RemoveItem removes up to quantity units of the given item from the user's
// cart and persists the result. Removal stops once no matching unit remains;
// removing more than present is not an error. A quantity of zero or less is
// a no-op returning the unchanged cart.
func (s *Service) RemoveItem(ctx context.Context, username string, itemID int64, quantity int) (*Cart, error) {
	c, it, err := s.resolve(ctx, username, itemID)
	if err != nil {
		return nil, err
	}

	removed := false
	for range quantity {
		if !c.removeOne(it.ID) {
			break
		}
		removed = true
	}
	if !removed {
		return c, nil
	}

	if err := s.carts.Update(ctx, c); err != nil {
		return nil, errors.Wrap(err, "update cart")
	}
	return c, nil
}

// resolve looks up the user, their cart, and the requested catalog item.
// The user is checked before the item so an unknown username wins when both
// are missing.
func (s *Service) resolve(ctx context.Context, username string, itemID int64) (*Cart, *item.Item, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, nil, user.ErrNotFound
		}
		return nil, nil, errors.Wrapf(err, "get user %q", username)
	}

	it, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return nil, nil, item.ErrNotFound
		}
		return nil, nil, errors.Wrapf(err, "get item %d", itemID)
	}

	c, err := s.carts.GetByUserID(ctx, u.ID)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "get cart for user %d", u.ID)
	}

	return c, it, nil
}
