package schema

import (
	"time"
)

// Batch represents the batches table - the mirrored view of a ledger batch.
// The primary key is the ledger-assigned batch id, not an autoincrement.
type Batch struct {
	// ID is the ledger batch identifier
	ID uint64 `gorm:"column:id;primaryKey"`
	// BatchCode is the manufacturer-assigned batch code, unique across the ledger
	BatchCode string `gorm:"column:batch_code;not null;uniqueIndex;type:text"`
	// Name is the human-readable product name
	Name string `gorm:"column:name;not null;type:text"`
	// ManufacturerName is the producing manufacturer's display name
	ManufacturerName string `gorm:"column:manufacturer_name;not null;type:text"`
	// Expiry is the batch expiry timestamp
	Expiry time.Time `gorm:"column:expiry;not null"`
	// OwnerIdentity is the current custodian, stored in lookup form
	OwnerIdentity string `gorm:"column:owner_identity;not null;type:text;index:idx_batches_owner_identity"`
	// IsActive indicates whether the batch is still in circulation
	IsActive bool `gorm:"column:is_active;not null;default:true"`
	// CreatedAt is the timestamp when this record was first mirrored
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp of the last mirrored change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`

	// Associations
	CustodyEvents []CustodyEvent `gorm:"foreignKey:BatchID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Batch model
func (Batch) TableName() string {
	return "batches"
}
