package schema

import (
	"time"
)

// RoleAssignment represents the role_assignments table - the mirrored role
// directory. Identity is stored in lookup form so repeated assignments for the
// same participant overwrite a single row.
type RoleAssignment struct {
	// Identity is the participant identity in lookup form
	Identity string `gorm:"column:identity;primaryKey;type:text"`
	// Role is the assigned participant role
	Role string `gorm:"column:role;not null;type:text"`
	// UpdatedAt is the timestamp of the last mirrored assignment
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the RoleAssignment model
func (RoleAssignment) TableName() string {
	return "role_assignments"
}
