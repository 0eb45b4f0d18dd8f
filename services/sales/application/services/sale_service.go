package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ghuser/autospares/pkg/logger"
	inventorydomain "github.com/ghuser/autospares/services/inventory/domain"
	inventoryrepos "github.com/ghuser/autospares/services/inventory/domain/repositories"
	salesdomain "github.com/ghuser/autospares/services/sales/domain"
	"github.com/ghuser/autospares/services/sales/domain/models"
	"github.com/ghuser/autospares/services/sales/domain/repositories"
)

// IdempotencyGuard reserves commit idempotency keys so a retried POST after an
// indeterminate failure cannot deduct stock twice. Reserve returns false when
// the key is already held.
type IdempotencyGuard interface {
	Reserve(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// SaleService is the sale commit engine: it turns a multi-line cart into a
// single consistent state transition against the inventory store, or rejects
// the whole cart.
//
// Write-phase modes:
//   - saga (default): one atomic conditional decrement per line item, with
//     compensating increments when a later item fails. Each decrement is
//     check-and-set at the store so quantity can never go negative, but two
//     concurrent multi-part carts are not serialized against each other.
//   - atomic (AtomicSaleCommit=true): decrements + sale insert + event
//     publish in one database transaction, all-or-nothing.
type SaleService struct {
	parts  inventoryrepos.PartRepository
	sales  repositories.SaleRepository
	idem   IdempotencyGuard // nil disables idempotency protection
	atomic bool
	log    logger.Logger
}

// NewSaleService returns a SaleService wired with the given repositories.
func NewSaleService(
	parts inventoryrepos.PartRepository,
	sales repositories.SaleRepository,
	idem IdempotencyGuard,
	atomicCommit bool,
	log logger.Logger,
) *SaleService {
	return &SaleService{
		parts:  parts,
		sales:  sales,
		idem:   idem,
		atomic: atomicCommit,
		log:    log,
	}
}

// Commit validates the cart, verifies every referenced part exists with
// sufficient stock, deducts quantities, and records the immutable Sale.
//
// All checks complete before any write begins: a cart rejected for
// validation, an unknown part, or a stock shortage has zero side effects.
// idemKey is the optional Idempotency-Key header value; empty disables the
// duplicate guard for this request.
func (s *SaleService) Commit(ctx context.Context, items []models.CartItem, idemKey string) (*models.Sale, error) {
	if err := models.ValidateCart(items); err != nil {
		return nil, err
	}

	if idemKey != "" && s.idem != nil {
		ok, err := s.idem.Reserve(ctx, idemKey)
		if err != nil {
			return nil, fmt.Errorf("idempotency check: %w", err)
		}
		if !ok {
			return nil, salesdomain.ErrDuplicateRequest
		}
	}

	sale, err := s.commit(ctx, items)
	if err != nil && idemKey != "" && s.idem != nil {
		// A cleanly rejected cart may be retried with the same key. After a
		// partial commit the reservation is kept: the outcome is
		// indeterminate and a blind retry could double-deduct stock.
		var partial *salesdomain.PartialCommitError
		if !errors.As(err, &partial) {
			if relErr := s.idem.Release(ctx, idemKey); relErr != nil {
				s.log.WarnContext(ctx, "failed to release idempotency key", "key", idemKey, "error", relErr)
			}
		}
	}
	return sale, err
}

func (s *SaleService) commit(ctx context.Context, items []models.CartItem) (*models.Sale, error) {
	// Read phase: resolve and check every line item before touching stock.
	for _, item := range items {
		part, err := s.parts.GetByID(ctx, item.PartID)
		if err != nil {
			if errors.Is(err, inventorydomain.ErrPartNotFound) {
				return nil, fmt.Errorf("%w: %s", inventorydomain.ErrPartNotFound, item.PartID)
			}
			return nil, fmt.Errorf("resolve part %s: %w", item.PartID, err)
		}
		if !part.InStock(item.Qty) {
			return nil, &inventorydomain.StockShortageError{
				PartID:      part.ID,
				Description: part.Description,
				Requested:   item.Qty,
				Available:   part.Qty,
			}
		}
	}

	sale, err := models.NewSale(items)
	if err != nil {
		return nil, err
	}

	if s.atomic {
		if err := s.sales.SaveWithStock(ctx, sale); err != nil {
			return nil, err
		}
		return sale, nil
	}

	// Saga: per-item atomic decrements, compensating increments on failure.
	applied := make([]salesdomain.AppliedDecrement, 0, len(items))
	for _, item := range items {
		if err := s.parts.DecrementQty(ctx, item.PartID, item.Qty); err != nil {
			return nil, s.compensate(ctx, applied, err)
		}
		applied = append(applied, salesdomain.AppliedDecrement{PartID: item.PartID, Qty: item.Qty})
	}

	if err := s.sales.Save(ctx, sale); err != nil {
		return nil, s.compensate(ctx, applied, fmt.Errorf("record sale: %w", err))
	}

	return sale, nil
}

// compensate rolls back already-applied decrements after cause interrupted
// the write phase. When every increment succeeds the caller surfaces cause
// unchanged; when any fails the result is a PartialCommitError so the
// partially applied state is reported, never silently presented as success.
func (s *SaleService) compensate(ctx context.Context, applied []salesdomain.AppliedDecrement, cause error) error {
	if len(applied) == 0 {
		return cause
	}

	var unrecovered []salesdomain.AppliedDecrement
	var compErr error
	for i := len(applied) - 1; i >= 0; i-- {
		d := applied[i]
		if err := s.parts.IncrementQty(ctx, d.PartID, d.Qty); err != nil {
			unrecovered = append(unrecovered, d)
			if compErr == nil {
				compErr = err
			}
		}
	}

	if len(unrecovered) > 0 {
		perr := &salesdomain.PartialCommitError{
			Cause:           cause,
			Unrecovered:     unrecovered,
			CompensationErr: compErr,
		}
		s.log.ErrorContext(ctx, "sale commit left inventory partially applied",
			"unrecovered", len(unrecovered),
			"cause", cause,
			"rollback_error", compErr,
		)
		return perr
	}

	s.log.WarnContext(ctx, "sale commit rolled back",
		"compensated", len(applied),
		"cause", cause,
	)
	return cause
}

// List returns recorded sales, newest first. todayOnly restricts to sales
// whose timestamp falls within the current calendar day in server-local time.
func (s *SaleService) List(ctx context.Context, todayOnly bool) ([]*models.Sale, error) {
	var since *time.Time
	if todayOnly {
		start := StartOfToday(time.Now())
		since = &start
	}

	sales, err := s.sales.Find(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return sales, nil
}

// StartOfToday returns midnight of now's calendar day in now's location.
func StartOfToday(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
