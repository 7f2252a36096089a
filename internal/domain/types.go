package domain

import (
	"strings"
	"time"
)

// BatchID is the internal sequential batch identifier.
// IDs start at 1; 0 is reserved as the "unset" value and is never assigned.
type BatchID int64

// Unset reports whether the id carries the reserved zero value.
func (id BatchID) Unset() bool {
	return id == 0
}

// Identity represents a principal in the supply chain (manufacturer, distributor,
// pharmacy, patient). Identities are stored exactly as supplied but compared
// case-insensitively everywhere ownership or index lookups are concerned.
type Identity string

// String returns the string representation of the identity.
func (i Identity) String() string {
	return string(i)
}

// Key returns the canonical lookup key for the identity (lowercased, trimmed).
// The owner index and all equality checks are keyed on this form.
func (i Identity) Key() string {
	return strings.ToLower(strings.TrimSpace(string(i)))
}

// Equal reports whether two identities refer to the same principal.
func (i Identity) Equal(other Identity) bool {
	return i.Key() == other.Key()
}

// WellFormed reports whether the identity is usable as a custody target.
func (i Identity) WellFormed() bool {
	return strings.TrimSpace(string(i)) != ""
}

// Role represents the advisory classification of a principal's function.
// Roles gate nothing in the transfer path; custody authorization is purely
// ownership-based.
type Role string

const (
	RoleManufacturer Role = "manufacturer"
	RoleDistributor  Role = "distributor"
	RolePharmacist   Role = "pharmacist"
	RoleCustomer     Role = "customer"
	RoleAdmin        Role = "admin"
)

// IsValidRole checks if a role is one of the known classifications.
func IsValidRole(role Role) bool {
	switch role {
	case RoleManufacturer, RoleDistributor, RolePharmacist, RoleCustomer, RoleAdmin:
		return true
	default:
		return false
	}
}

// EventType represents the kind of a custody event.
type EventType string

const (
	// EventTypeManufacture is the synthetic first event seeded at registration.
	EventTypeManufacture EventType = "manufacture"
	// EventTypeTransfer indicates a plain custody transfer between parties.
	EventTypeTransfer EventType = "transfer"
	// EventTypeDistribute indicates hand-off into the distribution network.
	EventTypeDistribute EventType = "distribute"
	// EventTypeDeliver indicates terminal delivery to the end recipient.
	EventTypeDeliver EventType = "deliver"

	// otherEventPrefix namespaces open-ended event labels so they can never
	// collide with the closed set above.
	otherEventPrefix = "other:"
)

// OtherEvent wraps a free-form label as an open-ended event type.
func OtherEvent(label string) EventType {
	return EventType(otherEventPrefix + label)
}

// ParseEventType maps a wire string onto the closed event type set, falling
// back to the Other escape hatch for unrecognized labels.
func ParseEventType(s string) EventType {
	switch t := EventType(strings.ToLower(strings.TrimSpace(s))); t {
	case EventTypeManufacture, EventTypeTransfer, EventTypeDistribute, EventTypeDeliver:
		return t
	default:
		if strings.HasPrefix(string(t), otherEventPrefix) {
			return t
		}
		return OtherEvent(string(t))
	}
}

// String returns the string representation of the event type.
func (t EventType) String() string {
	return string(t)
}

// Other reports whether the event type is an open-ended label.
func (t EventType) Other() bool {
	return strings.HasPrefix(string(t), otherEventPrefix)
}

// InProgress reports whether the event type marks custody still moving through
// the chain. Deliver is terminal; Manufacture means custody never moved at all.
func (t EventType) InProgress() bool {
	return t == EventTypeTransfer || t == EventTypeDistribute
}

// Batch represents one registered, traceable unit of product.
type Batch struct {
	// ID is the internal sequential identifier, assigned at registration.
	ID BatchID `json:"id"`
	// BatchCode is the externally chosen, globally unique label.
	BatchCode string `json:"batch_code"`
	// Name is the product name.
	Name string `json:"name"`
	// ManufacturerName is the descriptive name of the producing party.
	ManufacturerName string `json:"manufacturer_name"`
	// Expiry is the shelf-life boundary; transfers past it are refused.
	Expiry time.Time `json:"expiry"`
	// MetadataRef is an opaque reference into external document storage.
	MetadataRef string `json:"metadata_ref,omitempty"`
	// OwnerIdentity is the current custodian.
	OwnerIdentity Identity `json:"owner_identity"`
	// IsActive is true until the batch is deactivated; the flip is one-way.
	IsActive bool `json:"is_active"`
	// CreatedAt is set once at registration.
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the batch expiry has passed at the given instant.
func (b *Batch) Expired(now time.Time) bool {
	return !b.Expiry.After(now)
}

// CustodyEvent is one entry in a batch's immutable custody history.
type CustodyEvent struct {
	// From is the previous custodian; nil only for the manufacture event.
	From *Identity `json:"from_identity"`
	// To is the receiving custodian.
	To Identity `json:"to_identity"`
	// EventType is the kind of custody change.
	EventType EventType `json:"event_type"`
	// Timestamp is set at append time, monotonically non-decreasing per batch.
	Timestamp time.Time `json:"timestamp"`
	// ExternalRef is an optional opaque settlement/transaction reference.
	ExternalRef *string `json:"external_ref,omitempty"`
}

// Manufacture reports whether this is the synthetic registration event.
func (e *CustodyEvent) Manufacture() bool {
	return e.From == nil && e.EventType == EventTypeManufacture
}
