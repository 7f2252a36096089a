package schema

import (
	"time"

	"gorm.io/datatypes"
)

// CustodyEvent represents the custody_events table - the mirrored audit history
// of a batch. Rows are append-only; redelivered notifications dedupe on the
// (batch_id, event_type, to_identity, timestamp) unique index.
type CustodyEvent struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// BatchID references the mirrored batch
	BatchID uint64 `gorm:"column:batch_id;not null;index:idx_custody_events_batch;uniqueIndex:idx_custody_events_dedupe,priority:1"`
	// EventType is the custody event kind (manufacture, transfer, distribute, deliver, other:<label>)
	EventType string `gorm:"column:event_type;not null;type:text;uniqueIndex:idx_custody_events_dedupe,priority:2"`
	// FromIdentity is the releasing custodian (nil for the manufacture event)
	FromIdentity *string `gorm:"column:from_identity;type:text"`
	// ToIdentity is the receiving custodian
	ToIdentity string `gorm:"column:to_identity;not null;type:text;uniqueIndex:idx_custody_events_dedupe,priority:3"`
	// Timestamp is the ledger-recorded event time
	Timestamp time.Time `gorm:"column:timestamp;not null;uniqueIndex:idx_custody_events_dedupe,priority:4"`
	// Raw holds the original notification payload as delivered
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`
	// CreatedAt is the timestamp when this record was mirrored
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the CustodyEvent model
func (CustodyEvent) TableName() string {
	return "custody_events"
}
