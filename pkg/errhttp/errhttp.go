// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/autospares/pkg/httpx"
	inventorydomain "github.com/ghuser/autospares/services/inventory/domain"
	salesdomain "github.com/ghuser/autospares/services/sales/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	// A failed stock rollback is indeterminate state, never a client error,
	// even though its cause chain may contain ErrInsufficientStock.
	var partial *salesdomain.PartialCommitError
	if errors.As(err, &partial) {
		return http.StatusInternalServerError // 500
	}

	switch {
	case errors.Is(err, inventorydomain.ErrPartNotFound),
		errors.Is(err, inventorydomain.ErrCategoryNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, inventorydomain.ErrInsufficientStock),
		errors.Is(err, inventorydomain.ErrInvalidPart),
		errors.Is(err, salesdomain.ErrEmptyCart),
		errors.Is(err, salesdomain.ErrInvalidCartItem):
		return http.StatusBadRequest // 400
	case errors.Is(err, inventorydomain.ErrCategoryExists),
		errors.Is(err, salesdomain.ErrDuplicateRequest):
		return http.StatusConflict // 409
	default:
		return http.StatusInternalServerError // 500
	}
}
