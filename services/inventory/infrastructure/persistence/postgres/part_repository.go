package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ghuser/autospares/pkg/database"
	"github.com/ghuser/autospares/pkg/events"
	inventorydomain "github.com/ghuser/autospares/services/inventory/domain"
	domainevents "github.com/ghuser/autospares/services/inventory/domain/events"
	"github.com/ghuser/autospares/services/inventory/domain/models"
	"github.com/ghuser/autospares/services/inventory/domain/repositories"
)

const partColumns = `id, part_no, code, brand, description, qty, unit,
	buying_price, selling_price, category_id, compatible_models, created_at, updated_at`

// PartRepository implements repositories.PartRepository against PostgreSQL.
//
// The qty column carries a CHECK (qty >= 0) constraint and DecrementQty is a
// conditional UPDATE, so stored quantity can never go negative regardless of
// how commits interleave.
type PartRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewPartRepository returns a PartRepository backed by the given connection
// pool and event bus. The bus publishes PartCreatedEvents after a save.
func NewPartRepository(db *database.Database, bus *events.EventBus) *PartRepository {
	return &PartRepository{db: db, bus: bus}
}

// Save persists a new Part and publishes a PartCreatedEvent within the same
// transaction.
func (r *PartRepository) Save(ctx context.Context, part *models.Part) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := insertPart(ctx, tx, part); err != nil {
			return err
		}
		if r.bus != nil {
			if err := r.publishCreated(tx, part); err != nil {
				return fmt.Errorf("publish part created: %w", err)
			}
		}
		return nil
	})
}

// BulkInsert persists a batch of new parts in one transaction. Events are not
// published for bulk imports; they are administrative loads, not sales flow.
func (r *PartRepository) BulkInsert(ctx context.Context, parts []*models.Part) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		for i, part := range parts {
			if err := insertPart(ctx, tx, part); err != nil {
				return fmt.Errorf("bulk insert part %d: %w", i, err)
			}
		}
		return nil
	})
}

func insertPart(ctx context.Context, tx *sql.Tx, part *models.Part) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO spare_parts (`+partColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		part.ID, part.PartNo, part.Code, part.Brand, part.Description,
		part.Qty, part.Unit, part.BuyingPrice, part.SellingPrice,
		part.CategoryID, pq.Array(part.CompatibleModels),
		part.CreatedAt, part.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert part: %w", err)
	}
	return nil
}

// GetByID retrieves a Part by ID. Returns ErrPartNotFound if not found.
func (r *PartRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Part, error) {
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT `+partColumns+` FROM spare_parts WHERE id = $1`, id)
	part, err := scanPart(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, inventorydomain.ErrPartNotFound
		}
		return nil, fmt.Errorf("query part: %w", err)
	}
	return part, nil
}

// Find retrieves parts matching the filter, newest first.
func (r *PartRepository) Find(ctx context.Context, filter repositories.Filter) ([]*models.Part, error) {
	query := `SELECT ` + partColumns + ` FROM spare_parts`
	var args []any
	var where []string
	if filter.CategoryID != uuid.Nil {
		args = append(args, filter.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.Model != "" {
		args = append(args, filter.Model)
		where = append(where, fmt.Sprintf("$%d = ANY(compatible_models)", len(args)))
	}
	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query parts: %w", err)
	}
	defer rows.Close()

	var parts []*models.Part
	for rows.Next() {
		part, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		parts = append(parts, part)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate parts: %w", err)
	}
	return parts, nil
}

// Update persists changes to an existing Part. Returns ErrPartNotFound when
// no row matches.
func (r *PartRepository) Update(ctx context.Context, part *models.Part) error {
	res, err := r.db.DB().ExecContext(ctx, `
		UPDATE spare_parts
		SET part_no = $2, code = $3, brand = $4, description = $5, qty = $6,
		    unit = $7, buying_price = $8, selling_price = $9, category_id = $10,
		    compatible_models = $11, updated_at = now()
		WHERE id = $1`,
		part.ID, part.PartNo, part.Code, part.Brand, part.Description,
		part.Qty, part.Unit, part.BuyingPrice, part.SellingPrice,
		part.CategoryID, pq.Array(part.CompatibleModels),
	)
	if err != nil {
		return fmt.Errorf("update part: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return inventorydomain.ErrPartNotFound
	}
	return nil
}

// Delete removes a part by ID. Returns ErrPartNotFound when no row matches.
func (r *PartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.DB().ExecContext(ctx, `DELETE FROM spare_parts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete part: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return inventorydomain.ErrPartNotFound
	}
	return nil
}

// DecrementQty atomically subtracts n units if at least n are on hand.
// The WHERE clause re-checks quantity at write time; zero affected rows means
// the part is missing or short, distinguished by a follow-up read.
func (r *PartRepository) DecrementQty(ctx context.Context, id uuid.UUID, n int) error {
	res, err := r.db.DB().ExecContext(ctx, `
		UPDATE spare_parts
		SET qty = qty - $1, updated_at = now()
		WHERE id = $2 AND qty >= $1`,
		n, id,
	)
	if err != nil {
		return fmt.Errorf("decrement part %s: %w", id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("decrement part %s: rows affected: %w", id, err)
	}
	if rows > 0 {
		return nil
	}

	var description string
	var qty int
	err = r.db.DB().QueryRowContext(ctx,
		`SELECT description, qty FROM spare_parts WHERE id = $1`, id,
	).Scan(&description, &qty)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", inventorydomain.ErrPartNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("recheck part %s: %w", id, err)
	}
	return &inventorydomain.StockShortageError{
		PartID:      id,
		Description: description,
		Requested:   n,
		Available:   qty,
	}
}

// IncrementQty adds n units back; the compensating action of the sale saga.
func (r *PartRepository) IncrementQty(ctx context.Context, id uuid.UUID, n int) error {
	res, err := r.db.DB().ExecContext(ctx, `
		UPDATE spare_parts
		SET qty = qty + $1, updated_at = now()
		WHERE id = $2`,
		n, id,
	)
	if err != nil {
		return fmt.Errorf("increment part %s: %w", id, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("%w: %s", inventorydomain.ErrPartNotFound, id)
	}
	return nil
}

// FindLowStock returns parts with qty <= threshold joined with their category
// name, ordered by category name then description.
func (r *PartRepository) FindLowStock(ctx context.Context, threshold int) ([]repositories.LowStockPart, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT p.id, p.part_no, p.code, p.description, p.qty,
		       COALESCE(c.name, 'Uncategorized')
		FROM spare_parts p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.qty <= $1
		ORDER BY COALESCE(c.name, 'Uncategorized'), p.description`,
		threshold,
	)
	if err != nil {
		return nil, fmt.Errorf("query low stock: %w", err)
	}
	defer rows.Close()

	var parts []repositories.LowStockPart
	for rows.Next() {
		var p repositories.LowStockPart
		if err := rows.Scan(&p.ID, &p.PartNo, &p.Code, &p.Description, &p.Qty, &p.CategoryName); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		parts = append(parts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate low stock: %w", err)
	}
	return parts, nil
}

func (r *PartRepository) publishCreated(tx *sql.Tx, part *models.Part) error {
	event := domainevents.PartCreatedEvent{
		EventID:     uuid.New(),
		Version:     1,
		PartID:      part.ID,
		Description: part.Description,
		Qty:         part.Qty,
		CategoryID:  part.CategoryID,
		OccurredAt:  part.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicPartCreated, msg)
}

// scanner abstracts *sql.Row and *sql.Rows for scanPart.
type scanner interface {
	Scan(dest ...any) error
}

func scanPart(s scanner) (*models.Part, error) {
	var part models.Part
	var categoryID sql.Null[uuid.UUID]
	if err := s.Scan(
		&part.ID, &part.PartNo, &part.Code, &part.Brand, &part.Description,
		&part.Qty, &part.Unit, &part.BuyingPrice, &part.SellingPrice,
		&categoryID, pq.Array(&part.CompatibleModels),
		&part.CreatedAt, &part.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if categoryID.Valid {
		part.CategoryID = categoryID.V
	}
	return &part, nil
}
