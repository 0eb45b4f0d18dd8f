package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultUnit is the unit of measure applied when none is given.
const DefaultUnit = "PCS"

// Part is the core aggregate of the inventory bounded context: one stocked
// spare part. Qty is never negative; the only mutation path during sales is
// the repository's conditional decrement.
type Part struct {
	ID               uuid.UUID
	PartNo           string
	Code             string
	Brand            string
	Description      string
	Qty              int
	Unit             string
	BuyingPrice      decimal.Decimal
	SellingPrice     decimal.Decimal
	CategoryID       uuid.UUID
	CompatibleModels []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewPart constructs a valid Part aggregate with generated ID and timestamps.
func NewPart(
	partNo, code, brand, description string,
	qty int,
	unit string,
	buyingPrice, sellingPrice decimal.Decimal,
	categoryID uuid.UUID,
	compatibleModels []string,
) (*Part, error) {
	if description == "" {
		return nil, fmt.Errorf("description is required")
	}
	if qty < 0 {
		return nil, fmt.Errorf("qty must not be negative, got %d", qty)
	}
	if buyingPrice.IsNegative() {
		return nil, fmt.Errorf("buying_price must not be negative, got %s", buyingPrice)
	}
	if sellingPrice.IsNegative() {
		return nil, fmt.Errorf("selling_price must not be negative, got %s", sellingPrice)
	}
	if categoryID == uuid.Nil {
		return nil, fmt.Errorf("category is required")
	}
	if unit == "" {
		unit = DefaultUnit
	}

	now := time.Now().UTC()
	return &Part{
		ID:               uuid.New(),
		PartNo:           partNo,
		Code:             code,
		Brand:            brand,
		Description:      description,
		Qty:              qty,
		Unit:             unit,
		BuyingPrice:      buyingPrice,
		SellingPrice:     sellingPrice,
		CategoryID:       categoryID,
		CompatibleModels: compatibleModels,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// InStock reports whether the part can cover a request for n units.
func (p *Part) InStock(n int) bool {
	return p.Qty >= n
}

// OutOfStock reports whether the part has zero units on hand.
func (p *Part) OutOfStock() bool {
	return p.Qty == 0
}

// LowStock reports whether the part is low but not out of stock:
// 0 < qty <= threshold. Out-of-stock parts are a separate set.
func (p *Part) LowStock(threshold int) bool {
	return p.Qty > 0 && p.Qty <= threshold
}
