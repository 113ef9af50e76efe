package schema

import (
	"time"

	"gorm.io/datatypes"
)

// OutboxEvent represents the outbox_events table - engine events committed with the state change
// that produced them, waiting to be relayed to the message broker
type OutboxEvent struct {
	// Seq is an auto-incrementing sequence number preserving commit order
	Seq uint64 `gorm:"column:seq;primaryKey;autoIncrement"`
	// EventID is a unique identifier for this event (ULID for time-sortable uniqueness)
	EventID string `gorm:"column:event_id;not null;type:varchar(26);uniqueIndex"`
	// EventType is the type of event (e.g., "infused", "claimed")
	EventType string `gorm:"column:event_type;not null;type:varchar(50)"`
	// RealmID is the realm the event belongs to
	RealmID uint64 `gorm:"column:realm_id;not null"`
	// Payload is the complete event as JSON
	Payload datatypes.JSON `gorm:"column:payload;not null;type:jsonb"`
	// OccurredAt is the time the event was committed
	OccurredAt time.Time `gorm:"column:occurred_at;not null;type:timestamptz"`
	// PublishedAt is set once the relay has published the event
	PublishedAt *time.Time `gorm:"column:published_at;type:timestamptz"`
}

// TableName specifies the table name for the OutboxEvent model
func (OutboxEvent) TableName() string {
	return "outbox_events"
}
