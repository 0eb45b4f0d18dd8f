package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/autospares/services/inventory/domain/models"
)

// Filter narrows part list queries. Zero values mean "no filter".
type Filter struct {
	CategoryID uuid.UUID // only parts in this category
	Model      string    // only parts whose compatible_models contains this
}

// LowStockPart is the denormalized row returned by the low-stock sweep:
// the part fields reporting needs plus the resolved category name.
type LowStockPart struct {
	ID           uuid.UUID
	PartNo       string
	Code         string
	Description  string
	Qty          int
	CategoryName string
}

// PartRepository is the persistence interface for the Part aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// DecrementQty is the one correctness-critical operation: it must re-check
// the stored quantity at write time (conditional update), not trust a
// previously read snapshot, so quantity can never go negative even under
// concurrent sale commits.
type PartRepository interface {
	Save(ctx context.Context, part *models.Part) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Part, error)

	// Find retrieves parts matching the filter, newest first.
	Find(ctx context.Context, filter Filter) ([]*models.Part, error)

	// Update persists changes to an existing Part.
	Update(ctx context.Context, part *models.Part) error

	// Delete removes a part by ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// BulkInsert persists a batch of new parts in one transaction.
	BulkInsert(ctx context.Context, parts []*models.Part) error

	// DecrementQty atomically subtracts n units if and only if at least n are
	// on hand. Returns ErrPartNotFound if the part does not exist and a
	// *StockShortageError (wrapping ErrInsufficientStock) if stock is short.
	DecrementQty(ctx context.Context, id uuid.UUID, n int) error

	// IncrementQty adds n units back. Used as the compensating action when a
	// later decrement in the same cart fails.
	IncrementQty(ctx context.Context, id uuid.UUID, n int) error

	// FindLowStock returns parts with qty <= threshold joined with their
	// category name, ordered by category name then description.
	FindLowStock(ctx context.Context, threshold int) ([]LowStockPart, error)
}
