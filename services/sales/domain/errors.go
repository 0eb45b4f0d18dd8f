package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Sentinel errors for the sales domain. Use errors.Is() to check these.
var (
	// ErrEmptyCart indicates a sale request with no line items.
	ErrEmptyCart = errors.New("no sale items provided")

	// ErrInvalidCartItem indicates a line item with a missing field or a
	// non-positive quantity or price.
	ErrInvalidCartItem = errors.New("invalid sale item data")

	// ErrDuplicateRequest indicates the Idempotency-Key of this commit was
	// already used; the original outcome must be looked up, not re-executed.
	ErrDuplicateRequest = errors.New("duplicate sale request")
)

// AppliedDecrement records one stock deduction that succeeded before a later
// line item in the same cart failed.
type AppliedDecrement struct {
	PartID uuid.UUID
	Qty    int
}

// PartialCommitError is the fatal outcome of a cart commit where some
// decrements were applied, a later one failed, and the compensating
// increments could not restore all of them. Inventory is in a partially
// applied state and needs operator reconciliation.
//
// When compensation succeeds this error is never raised; the caller sees the
// original stock or not-found error instead.
type PartialCommitError struct {
	Cause           error              // the error that interrupted the write phase
	Unrecovered     []AppliedDecrement // decrements that compensation failed to undo
	CompensationErr error              // first error returned by a compensating increment
}

func (e *PartialCommitError) Error() string {
	parts := make([]string, len(e.Unrecovered))
	for i, d := range e.Unrecovered {
		parts[i] = fmt.Sprintf("%s(-%d)", d.PartID, d.Qty)
	}
	return fmt.Sprintf(
		"sale aborted mid-commit and stock rollback failed, manual reconciliation required: unrecovered %s (cause: %v, rollback: %v)",
		strings.Join(parts, ", "), e.Cause, e.CompensationErr,
	)
}

func (e *PartialCommitError) Unwrap() error {
	return e.Cause
}
