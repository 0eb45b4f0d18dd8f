package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/autospares/pkg/database"
	"github.com/ghuser/autospares/pkg/events"
	inventorydomain "github.com/ghuser/autospares/services/inventory/domain"
	domainevents "github.com/ghuser/autospares/services/sales/domain/events"
	"github.com/ghuser/autospares/services/sales/domain/models"
)

// SaleRepository implements repositories.SaleRepository against PostgreSQL.
type SaleRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewSaleRepository returns a SaleRepository backed by the given connection
// pool and event bus. The bus is used to publish SaleRecordedEvents in the
// same transaction as the sale insert.
func NewSaleRepository(db *database.Database, bus *events.EventBus) *SaleRepository {
	return &SaleRepository{db: db, bus: bus}
}

// Save persists the sale and its item snapshot and publishes a
// SaleRecordedEvent within the same transaction.
func (r *SaleRepository) Save(ctx context.Context, sale *models.Sale) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return r.insertSale(ctx, tx, sale)
	})
}

// SaveWithStock commits the whole cart in one transaction: a conditional
// decrement per line item, the sale insert, and the outbox publish. Any
// shortfall rolls back everything.
func (r *SaleRepository) SaveWithStock(ctx context.Context, sale *models.Sale) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, item := range sale.Items {
			if err := decrementInTx(ctx, tx, item.PartID, item.Qty); err != nil {
				return err
			}
		}
		return r.insertSale(ctx, tx, sale)
	})
}

// decrementInTx is the conditional check-and-set decrement, scoped to tx.
// Zero rows affected means the part is either missing or short on stock;
// a follow-up read distinguishes the two.
func decrementInTx(ctx context.Context, tx *sql.Tx, partID uuid.UUID, n int) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE spare_parts
		SET qty = qty - $1, updated_at = now()
		WHERE id = $2 AND qty >= $1`,
		n, partID,
	)
	if err != nil {
		return fmt.Errorf("decrement part %s: %w", partID, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("decrement part %s: rows affected: %w", partID, err)
	}
	if rows > 0 {
		return nil
	}

	var description string
	var qty int
	err = tx.QueryRowContext(ctx,
		`SELECT description, qty FROM spare_parts WHERE id = $1`, partID,
	).Scan(&description, &qty)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", inventorydomain.ErrPartNotFound, partID)
	}
	if err != nil {
		return fmt.Errorf("recheck part %s: %w", partID, err)
	}
	return &inventorydomain.StockShortageError{
		PartID:      partID,
		Description: description,
		Requested:   n,
		Available:   qty,
	}
}

func (r *SaleRepository) insertSale(ctx context.Context, tx *sql.Tx, sale *models.Sale) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sales (id, total, occurred_at)
		VALUES ($1, $2, $3)`,
		sale.ID, sale.Total, sale.OccurredAt,
	); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	for i, item := range sale.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO sale_items (sale_id, position, part_id, qty, selling_price, buying_price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			sale.ID, i, item.PartID, item.Qty, item.SellingPrice, item.BuyingPrice,
		); err != nil {
			return fmt.Errorf("insert sale item %d: %w", i, err)
		}
	}

	if r.bus != nil {
		if err := r.publishRecorded(tx, sale); err != nil {
			return fmt.Errorf("publish sale recorded: %w", err)
		}
	}
	return nil
}

// Find returns sales ordered by occurred_at descending, each with its item
// snapshot. A non-nil since restricts to sales at or after that instant.
func (r *SaleRepository) Find(ctx context.Context, since *time.Time) ([]*models.Sale, error) {
	query := `
		SELECT s.id, s.total, s.occurred_at,
		       i.part_id, i.qty, i.selling_price, i.buying_price
		FROM sales s
		JOIN sale_items i ON i.sale_id = s.id`
	args := []any{}
	if since != nil {
		query += ` WHERE s.occurred_at >= $1`
		args = append(args, *since)
	}
	query += ` ORDER BY s.occurred_at DESC, s.id, i.position`

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	var sales []*models.Sale
	var current *models.Sale
	for rows.Next() {
		var (
			id   uuid.UUID
			s    models.Sale
			item models.SaleItem
		)
		if err := rows.Scan(&id, &s.Total, &s.OccurredAt,
			&item.PartID, &item.Qty, &item.SellingPrice, &item.BuyingPrice,
		); err != nil {
			return nil, fmt.Errorf("scan sale row: %w", err)
		}
		if current == nil || current.ID != id {
			s.ID = id
			current = &s
			sales = append(sales, current)
		}
		current.Items = append(current.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}
	return sales, nil
}

func (r *SaleRepository) publishRecorded(tx *sql.Tx, sale *models.Sale) error {
	event := domainevents.SaleRecordedEvent{
		EventID:    uuid.New(),
		Version:    1,
		SaleID:     sale.ID,
		Total:      sale.Total.String(),
		Items:      make([]domainevents.SaleRecordedItem, len(sale.Items)),
		OccurredAt: sale.OccurredAt,
	}
	for i, item := range sale.Items {
		event.Items[i] = domainevents.SaleRecordedItem{PartID: item.PartID, Qty: item.Qty}
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
	return p.Publish(domainevents.TopicSaleRecorded, msg)
}
