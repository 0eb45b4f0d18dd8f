package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	salesdomain "github.com/ghuser/autospares/services/sales/domain"
)

// CartItem is one caller-supplied line of a proposed sale. Prices are
// captured by the point-of-sale client at sale time; they are snapshotted
// into the Sale on commit and never re-derived from the part afterwards.
type CartItem struct {
	PartID       uuid.UUID
	Qty          int
	SellingPrice decimal.Decimal
	BuyingPrice  decimal.Decimal
}

// SaleItem is one committed, immutable line of a recorded Sale.
type SaleItem struct {
	PartID       uuid.UUID
	Qty          int
	SellingPrice decimal.Decimal
	BuyingPrice  decimal.Decimal
}

// Sale is the immutable historical record of one committed cart.
// Total always equals the sum of qty × selling_price over its items,
// computed once at commit time with exact decimal arithmetic.
type Sale struct {
	ID         uuid.UUID
	Total      decimal.Decimal
	OccurredAt time.Time
	Items      []SaleItem
}

// ValidateCart rejects empty carts and line items with a missing part
// reference, non-positive quantity, or non-positive prices. Runs before any
// store access so a rejected cart has zero side effects.
func ValidateCart(items []CartItem) error {
	if len(items) == 0 {
		return salesdomain.ErrEmptyCart
	}
	for i, item := range items {
		if item.PartID == uuid.Nil {
			return fmt.Errorf("%w: item %d has no part reference", salesdomain.ErrInvalidCartItem, i)
		}
		if item.Qty <= 0 {
			return fmt.Errorf("%w: item %d qty must be positive, got %d", salesdomain.ErrInvalidCartItem, i, item.Qty)
		}
		if !item.SellingPrice.IsPositive() {
			return fmt.Errorf("%w: item %d selling_price must be positive, got %s", salesdomain.ErrInvalidCartItem, i, item.SellingPrice)
		}
		if !item.BuyingPrice.IsPositive() {
			return fmt.Errorf("%w: item %d buying_price must be positive, got %s", salesdomain.ErrInvalidCartItem, i, item.BuyingPrice)
		}
	}
	return nil
}

// NewSale snapshots a validated cart into a Sale with generated ID, commit
// timestamp, and computed total.
func NewSale(items []CartItem) (*Sale, error) {
	if err := ValidateCart(items); err != nil {
		return nil, err
	}

	saleItems := make([]SaleItem, len(items))
	total := decimal.Zero
	for i, item := range items {
		saleItems[i] = SaleItem{
			PartID:       item.PartID,
			Qty:          item.Qty,
			SellingPrice: item.SellingPrice,
			BuyingPrice:  item.BuyingPrice,
		}
		total = total.Add(item.SellingPrice.Mul(decimal.NewFromInt(int64(item.Qty))))
	}

	return &Sale{
		ID:         uuid.New(),
		Total:      total,
		OccurredAt: time.Now().UTC(),
		Items:      saleItems,
	}, nil
}
