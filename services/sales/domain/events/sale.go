package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicSaleRecorded is the Watermill topic published when a Sale commits.
const TopicSaleRecorded = "sale.recorded"

// SaleRecordedItem is one line of a recorded sale as carried in the event.
type SaleRecordedItem struct {
	PartID uuid.UUID `json:"part_id"`
	Qty    int       `json:"qty"`
}

// SaleRecordedEvent is published after a Sale and its stock deductions are
// durably committed. Consumers invalidate part read caches and drive
// low-stock alerting from it.
type SaleRecordedEvent struct {
	EventID    uuid.UUID          `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int                `json:"version"`  // Schema version; increment on breaking changes
	SaleID     uuid.UUID          `json:"sale_id"`
	Total      string             `json:"total"` // decimal string, exact
	Items      []SaleRecordedItem `json:"items"`
	OccurredAt time.Time          `json:"occurred_at"`
}
