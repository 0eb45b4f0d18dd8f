package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors for the inventory domain. Use errors.Is() to check these.
var (
	// ErrPartNotFound indicates the requested spare part does not exist.
	ErrPartNotFound = errors.New("spare part not found")

	// ErrInsufficientStock indicates a decrement would drive quantity below zero.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrCategoryNotFound indicates the requested category does not exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryExists indicates a category with the same name already exists.
	ErrCategoryExists = errors.New("category already exists")

	// ErrInvalidPart indicates the spare part violates domain constraints.
	ErrInvalidPart = errors.New("invalid spare part")
)

// StockShortageError reports which part cannot cover a requested quantity.
// Unwraps to ErrInsufficientStock so errors.Is() keeps working.
type StockShortageError struct {
	PartID      uuid.UUID
	Description string
	Requested   int
	Available   int
}

func (e *StockShortageError) Error() string {
	return fmt.Sprintf("not enough stock for %s: requested %d, available %d",
		e.Description, e.Requested, e.Available)
}

func (e *StockShortageError) Unwrap() error {
	return ErrInsufficientStock
}

// Shortfall is the number of units missing to satisfy the request.
func (e *StockShortageError) Shortfall() int {
	return e.Requested - e.Available
}
