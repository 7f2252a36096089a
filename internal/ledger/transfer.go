package ledger

import (
	"github.com/pharmatrace/batchtrace/internal/adapter"
	"github.com/pharmatrace/batchtrace/internal/domain"
)

// TransferEngine validates and executes custody changes. It is the only writer
// of ownership after registration; authorization is purely ownership-based,
// roles play no part here.
type TransferEngine struct {
	registry *Registry
	clock    adapter.Clock
}

// NewTransferEngine creates a transfer engine over the given registry.
func NewTransferEngine(registry *Registry, clock adapter.Clock) *TransferEngine {
	return &TransferEngine{
		registry: registry,
		clock:    clock,
	}
}

// Transfer moves custody of a batch from its current owner to newOwner and
// returns the custody event as recorded. Preconditions are checked in a fixed
// order and the first failure wins; nothing is mutated on failure. On success
// the record, the audit log and the owner index change as one atomic unit.
func (e *TransferEngine) Transfer(
	id domain.BatchID,
	requester domain.Identity,
	newOwner domain.Identity,
	eventType domain.EventType,
	externalRef *string,
) (domain.CustodyEvent, error) {
	entry, err := e.registry.entry(id)
	if err != nil {
		return domain.CustodyEvent{}, err
	}

	// entry.mu serializes the check-mutate-append sequence against other
	// transfers and deactivations of the same batch. Transfers on other
	// batches only contend on the short commit section below.
	entry.mu.Lock()
	defer entry.mu.Unlock()

	currentOwner := entry.batch.OwnerIdentity

	if !currentOwner.Equal(requester) {
		return domain.CustodyEvent{}, domain.NewAuthorizationError("requester %q is not the current owner of batch %d", requester, id)
	}
	if currentOwner.Equal(newOwner) {
		return domain.CustodyEvent{}, domain.NewValidationError("cannot transfer to current owner")
	}
	if !newOwner.WellFormed() {
		return domain.CustodyEvent{}, domain.NewValidationError("new owner identity must not be empty")
	}
	if eventType == domain.EventTypeManufacture {
		return domain.CustodyEvent{}, domain.NewValidationError("manufacture events are seeded at registration only")
	}
	if !entry.batch.IsActive {
		return domain.CustodyEvent{}, domain.NewStateError("batch %d is inactive", id)
	}
	if entry.batch.Expired(e.clock.Now()) {
		return domain.CustodyEvent{}, domain.NewStateError("batch %d is expired", id)
	}

	event := domain.CustodyEvent{
		From:        &currentOwner,
		To:          newOwner,
		EventType:   eventType,
		Timestamp:   e.clock.Now(),
		ExternalRef: externalRef,
	}

	e.registry.mu.Lock()
	defer e.registry.mu.Unlock()

	recorded, err := e.registry.log.Append(id, event)
	if err != nil {
		return domain.CustodyEvent{}, err
	}
	e.registry.setOwner(entry, newOwner)

	return recorded, nil
}
