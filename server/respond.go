package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rustyeddy/paperdesk/paper"
	"github.com/rustyeddy/paperdesk/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, errorResponse{Error: err.Error()})
}

// statusForError maps core failures onto HTTP statuses: bad input 400,
// missing state 404, failed trade preconditions 422, anything else 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, paper.ErrInvalidOrderType),
		errors.Is(err, paper.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, paper.ErrNoPriceData),
		errors.Is(err, paper.ErrNoPosition),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, paper.ErrInsufficientFunds),
		errors.Is(err, paper.ErrInsufficientShares):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
