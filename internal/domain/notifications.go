package domain

import "time"

// NotificationType identifies the kind of ledger notification.
type NotificationType string

const (
	// NotificationBatchRegistered is emitted after a successful registration.
	NotificationBatchRegistered NotificationType = "batch.registered"
	// NotificationCustodyTransferred is emitted after a successful transfer.
	NotificationCustodyTransferred NotificationType = "batch.transferred"
	// NotificationRoleAssigned is emitted after a successful role assignment.
	NotificationRoleAssigned NotificationType = "role.assigned"
)

// BatchRegistered carries the payload of a registration notification.
type BatchRegistered struct {
	ID           BatchID   `json:"id"`
	BatchCode    string    `json:"batch_code"`
	Owner        Identity  `json:"owner"`
	Name         string    `json:"name"`
	Manufacturer string    `json:"manufacturer"`
	Expiry       time.Time `json:"expiry"`
}

// CustodyTransferred carries the payload of a transfer notification.
type CustodyTransferred struct {
	ID        BatchID   `json:"id"`
	From      Identity  `json:"from"`
	To        Identity  `json:"to"`
	EventType EventType `json:"event_type"`
}

// RoleAssigned carries the payload of a role-assignment notification.
type RoleAssigned struct {
	Identity Identity `json:"identity"`
	Role     Role     `json:"role"`
}

// Notification is the envelope emitted to external collaborators after a state
// mutation commits. Exactly one payload field is set, matching Type.
type Notification struct {
	Type               NotificationType    `json:"type"`
	Timestamp          time.Time           `json:"timestamp"`
	BatchRegistered    *BatchRegistered    `json:"batch_registered,omitempty"`
	CustodyTransferred *CustodyTransferred `json:"custody_transferred,omitempty"`
	RoleAssigned       *RoleAssigned       `json:"role_assigned,omitempty"`
}

// NewBatchRegistered wraps a registration payload in a notification envelope.
func NewBatchRegistered(ts time.Time, payload BatchRegistered) *Notification {
	return &Notification{
		Type:            NotificationBatchRegistered,
		Timestamp:       ts,
		BatchRegistered: &payload,
	}
}

// NewCustodyTransferred wraps a transfer payload in a notification envelope.
func NewCustodyTransferred(ts time.Time, payload CustodyTransferred) *Notification {
	return &Notification{
		Type:               NotificationCustodyTransferred,
		Timestamp:          ts,
		CustodyTransferred: &payload,
	}
}

// NewRoleAssigned wraps a role-assignment payload in a notification envelope.
func NewRoleAssigned(ts time.Time, payload RoleAssigned) *Notification {
	return &Notification{
		Type:         NotificationRoleAssigned,
		Timestamp:    ts,
		RoleAssigned: &payload,
	}
}

// Valid reports whether the envelope type matches the payload that is set.
func (n *Notification) Valid() bool {
	switch n.Type {
	case NotificationBatchRegistered:
		return n.BatchRegistered != nil && n.CustodyTransferred == nil && n.RoleAssigned == nil
	case NotificationCustodyTransferred:
		return n.CustodyTransferred != nil && n.BatchRegistered == nil && n.RoleAssigned == nil
	case NotificationRoleAssigned:
		return n.RoleAssigned != nil && n.BatchRegistered == nil && n.CustodyTransferred == nil
	default:
		return false
	}
}
