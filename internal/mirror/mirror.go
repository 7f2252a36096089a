// Package mirror maintains a PostgreSQL read model of the custody ledger fed
// by the ledger's notification stream. It exists for external collaborators
// that need SQL access to batch state and history; the ledger itself never
// reads from it.
package mirror

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pharmatrace/batchtrace/internal/adapter"
	"github.com/pharmatrace/batchtrace/internal/domain"
	"github.com/pharmatrace/batchtrace/internal/logger"
	"github.com/pharmatrace/batchtrace/internal/mirror/schema"
)

// ErrBatchNotMirrored indicates a transfer arrived for a batch whose
// registration notification has not been applied yet. The consumer treats it
// as retryable so redelivery can restore ordering.
var ErrBatchNotMirrored = errors.New("batch not mirrored yet")

// Mirror applies ledger notifications to the read-model store.
type Mirror struct {
	store Store
	codec adapter.JSON
}

// NewMirror creates a mirror applier backed by the given store.
func NewMirror(store Store, codec adapter.JSON) *Mirror {
	return &Mirror{store: store, codec: codec}
}

// Apply dispatches a notification to the matching store operation. It is used
// as the handler for the notification stream consumer.
func (m *Mirror) Apply(ctx context.Context, n *domain.Notification) error {
	switch n.Type {
	case domain.NotificationBatchRegistered:
		return m.applyRegistered(ctx, n)
	case domain.NotificationCustodyTransferred:
		return m.applyTransferred(ctx, n)
	case domain.NotificationRoleAssigned:
		return m.applyRoleAssigned(ctx, n)
	default:
		// Unknown types are skipped, not failed, so new notification kinds
		// never wedge the consumer
		logger.WarnCtx(ctx, "Skipping unknown notification type", zap.String("type", string(n.Type)))
		return nil
	}
}

func (m *Mirror) applyRegistered(ctx context.Context, n *domain.Notification) error {
	payload := n.BatchRegistered

	raw, err := m.codec.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	batch := schema.Batch{
		ID:               uint64(payload.ID),
		BatchCode:        payload.BatchCode,
		Name:             payload.Name,
		ManufacturerName: payload.Manufacturer,
		Expiry:           payload.Expiry,
		OwnerIdentity:    payload.Owner.Key(),
		IsActive:         true,
		CreatedAt:        n.Timestamp,
		UpdatedAt:        n.Timestamp,
		CustodyEvents: []schema.CustodyEvent{
			{
				EventType:  string(domain.EventTypeManufacture),
				ToIdentity: payload.Owner.Key(),
				Timestamp:  n.Timestamp,
				Raw:        raw,
			},
		},
	}

	return m.store.UpsertBatch(ctx, batch)
}

func (m *Mirror) applyTransferred(ctx context.Context, n *domain.Notification) error {
	payload := n.CustodyTransferred

	raw, err := m.codec.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	from := payload.From.Key()
	return m.store.ApplyTransfer(ctx, ApplyTransferInput{
		BatchID:  uint64(payload.ID),
		NewOwner: payload.To.Key(),
		CustodyEvent: schema.CustodyEvent{
			EventType:    string(payload.EventType),
			FromIdentity: &from,
			ToIdentity:   payload.To.Key(),
			Timestamp:    n.Timestamp,
			Raw:          raw,
		},
	})
}

func (m *Mirror) applyRoleAssigned(ctx context.Context, n *domain.Notification) error {
	payload := n.RoleAssigned

	return m.store.UpsertRoleAssignment(ctx, schema.RoleAssignment{
		Identity:  payload.Identity.Key(),
		Role:      string(payload.Role),
		UpdatedAt: n.Timestamp,
	})
}
