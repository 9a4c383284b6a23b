package api

import (
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/averku/storefront/internal/domain/item"
)

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var e jx.Encoder
	e.ArrStart()
	for i := range items {
		encodeItem(&e, &items[i])
	}
	e.ArrEnd()
	writeJSON(w, http.StatusOK, &e)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	it, err := h.items.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			writeError(w, http.StatusNotFound, item.ErrNotFound.Error())
			return
		}
		writeDomainError(w, r, err)
		return
	}

	var e jx.Encoder
	encodeItem(&e, it)
	writeJSON(w, http.StatusOK, &e)
}

// findItemsByName returns all items matching the exact name. The repository
// treats no match as a valid empty result; this endpoint maps that empty
// result to 404 to keep the public contract of the original API.
func (h *Handler) findItemsByName(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.FindByName(r.Context(), r.PathValue("name"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if len(items) == 0 {
		writeError(w, http.StatusNotFound, item.ErrNotFound.Error())
		return
	}

	var e jx.Encoder
	e.ArrStart()
	for i := range items {
		encodeItem(&e, &items[i])
	}
	e.ArrEnd()
	writeJSON(w, http.StatusOK, &e)
}
