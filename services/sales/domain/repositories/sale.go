package repositories

import (
	"context"
	"time"

	"github.com/ghuser/autospares/services/sales/domain/models"
)

// SaleRepository is the persistence interface for the Sale aggregate.
// The domain layer owns this interface; infrastructure implements it.
type SaleRepository interface {
	// Save persists the sale and its items and publishes SaleRecordedEvent
	// within the same transaction (outbox pattern). Stock must already have
	// been deducted by the caller.
	Save(ctx context.Context, sale *models.Sale) error

	// SaveWithStock is the all-or-nothing commit: conditional stock
	// decrements for every item, the sale insert, and the outbox publish all
	// run in one transaction. Any decrement shortfall aborts the whole
	// transaction with ErrPartNotFound or a *StockShortageError and no state
	// change.
	SaveWithStock(ctx context.Context, sale *models.Sale) error

	// Find returns sales ordered by occurred_at descending. A non-nil since
	// restricts to sales at or after that instant.
	Find(ctx context.Context, since *time.Time) ([]*models.Sale, error)
}
