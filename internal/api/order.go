package api

import (
	"net/http"

	"github.com/go-faster/jx"
)

func (h *Handler) submitOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Submit(r.Context(), r.PathValue("username"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var e jx.Encoder
	encodeOrder(&e, o)
	writeJSON(w, http.StatusOK, &e)
}

func (h *Handler) orderHistory(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListForUser(r.Context(), r.PathValue("username"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var e jx.Encoder
	e.ArrStart()
	for i := range orders {
		encodeOrder(&e, &orders[i])
	}
	e.ArrEnd()
	writeJSON(w, http.StatusOK, &e)
}
