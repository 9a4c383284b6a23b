// Package api exposes the storefront domain over a JSON HTTP API.
package api

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/averku/storefront/internal/domain/cart"
	"github.com/averku/storefront/internal/domain/item"
	"github.com/averku/storefront/internal/domain/order"
	"github.com/averku/storefront/internal/domain/user"
)

// Handler routes HTTP requests to the domain services and repositories.
type Handler struct {
	users  *user.Service
	lookup user.Repository
	items  item.Repository
	carts  *cart.Service
	orders OrderService
}

// OrderService is the slice of the order engine the handler needs.
type OrderService interface {
	Submit(ctx context.Context, username string) (*order.Order, error)
	ListForUser(ctx context.Context, username string) ([]order.Order, error)
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(
	users *user.Service,
	lookup user.Repository,
	items item.Repository,
	carts *cart.Service,
	orders OrderService,
) *Handler {
	return &Handler{
		users:  users,
		lookup: lookup,
		items:  items,
		carts:  carts,
		orders: orders,
	}
}

// Routes registers every API endpoint on the given mux. Paths mirror the
// /api/{entity} layout of the public contract.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/user/create", h.createUser)
	mux.HandleFunc("GET /api/user/id/{id}", h.getUserByID)
	mux.HandleFunc("GET /api/user/{username}", h.getUserByUsername)

	mux.HandleFunc("GET /api/item", h.listItems)
	mux.HandleFunc("GET /api/item/{id}", h.getItem)
	mux.HandleFunc("GET /api/item/name/{name}", h.findItemsByName)

	mux.HandleFunc("POST /api/cart/addToCart", h.addToCart)
	mux.HandleFunc("POST /api/cart/removeFromCart", h.removeFromCart)

	mux.HandleFunc("POST /api/order/submit/{username}", h.submitOrder)
	mux.HandleFunc("GET /api/order/history/{username}", h.orderHistory)
}

// writeJSON writes the encoder's buffer as an application/json response.
func writeJSON(w http.ResponseWriter, status int, e *jx.Encoder) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeError writes the structured error body {code, message}.
func writeError(w http.ResponseWriter, status int, message string) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("code")
	e.Int(status)
	e.FieldStart("message")
	e.Str(message)
	e.ObjEnd()
	writeJSON(w, status, &e)
}

// writeDomainError maps domain errors to HTTP statuses: validation failures
// are 400, unresolved users/items are 404, lost optimistic-concurrency races
// are 409, everything else is logged and reported as 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, user.ErrEmptyUsername),
		errors.Is(err, user.ErrWeakPassword),
		errors.Is(err, user.ErrPasswordMismatch),
		errors.Is(err, user.ErrDuplicateUsername):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, user.ErrNotFound):
		writeError(w, http.StatusNotFound, user.ErrNotFound.Error())
	case errors.Is(err, item.ErrNotFound):
		writeError(w, http.StatusNotFound, item.ErrNotFound.Error())
	case errors.Is(err, cart.ErrConflict):
		writeError(w, http.StatusConflict, cart.ErrConflict.Error())
	default:
		zctx.From(r.Context()).Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
