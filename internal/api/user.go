package api

import (
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/averku/storefront/internal/domain/user"
)

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}

	req, err := decodeCreateUserRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	u, err := h.users.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var e jx.Encoder
	encodeUser(&e, u)
	writeJSON(w, http.StatusOK, &e)
}

func (h *Handler) getUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	u, err := h.lookup.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			writeError(w, http.StatusNotFound, user.ErrNotFound.Error())
			return
		}
		writeDomainError(w, r, err)
		return
	}

	var e jx.Encoder
	encodeUser(&e, u)
	writeJSON(w, http.StatusOK, &e)
}

func (h *Handler) getUserByUsername(w http.ResponseWriter, r *http.Request) {
	u, err := h.lookup.GetByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			writeError(w, http.StatusNotFound, user.ErrNotFound.Error())
			return
		}
		writeDomainError(w, r, err)
		return
	}

	var e jx.Encoder
	encodeUser(&e, u)
	writeJSON(w, http.StatusOK, &e)
}
