package api

import (
	"context"
	"net/http"

	"github.com/go-faster/jx"

	"github.com/averku/storefront/internal/domain/cart"
)

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	h.modifyCart(w, r, h.carts.AddItem)
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	h.modifyCart(w, r, h.carts.RemoveItem)
}

// modifyCart decodes a cart mutation request and applies it through the
// given cart engine operation.
func (h *Handler) modifyCart(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, username string, itemID int64, quantity int) (*cart.Cart, error),
) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}

	req, err := decodeModifyCartRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.Username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	c, err := op(r.Context(), req.Username, req.ItemID, req.Quantity)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var e jx.Encoder
	encodeCart(&e, c)
	writeJSON(w, http.StatusOK, &e)
}
