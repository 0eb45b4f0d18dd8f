package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicPartCreated is the Watermill topic published when a Part is created.
const TopicPartCreated = "part.created"

// PartCreatedEvent is published after a new Part is persisted.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicPartCreated).
type PartCreatedEvent struct {
	EventID     uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int       `json:"version"`  // Schema version; increment on breaking changes
	PartID      uuid.UUID `json:"part_id"`
	Description string    `json:"description"`
	Qty         int       `json:"qty"`
	CategoryID  uuid.UUID `json:"category_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}
