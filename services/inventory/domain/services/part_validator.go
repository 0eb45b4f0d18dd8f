// Package services contains stateless domain services for the inventory
// bounded context. Domain services enforce business rules that operate purely
// on domain types and have zero external dependencies beyond stdlib and the
// domain layer.
package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/ghuser/autospares/services/inventory/domain/models"
)

// ValidateDescription enforces business rules for part descriptions beyond
// the structural non-empty check done by the Part constructor.
//
// Business rules:
//   - No leading or trailing whitespace
//   - No control characters (Unicode category Cc)
//   - Must not be only whitespace characters
func ValidateDescription(s string) error {
	if s != strings.TrimSpace(s) {
		return fmt.Errorf("description must not have leading or trailing whitespace")
	}

	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("description must not be only whitespace")
	}

	for _, r := range s {
		if unicode.IsControl(r) {
			return fmt.Errorf("description must not contain control characters")
		}
	}

	return nil
}

// ValidatePartForCreation performs cross-field validation on a fully
// constructed Part aggregate before it is persisted. It assumes the Part was
// built via models.NewPart (so structural constraints are already satisfied)
// and adds business-level checks that span multiple fields.
func ValidatePartForCreation(part *models.Part) error {
	if part == nil {
		return fmt.Errorf("part cannot be nil")
	}

	if err := ValidateDescription(part.Description); err != nil {
		return fmt.Errorf("invalid description: %w", err)
	}

	if part.ID == uuid.Nil {
		return fmt.Errorf("id must be set")
	}

	if part.CategoryID == uuid.Nil {
		return fmt.Errorf("category must be set")
	}

	// Selling below cost is allowed (clearance sales) but a selling price of
	// zero alongside a positive buying price is almost always a data-entry
	// mistake.
	if part.SellingPrice.IsZero() && part.BuyingPrice.IsPositive() {
		return fmt.Errorf("selling_price must be set when buying_price is set")
	}

	return nil
}
