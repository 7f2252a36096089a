// Package ledger implements the batch identity and custody ledger: it assigns
// sequential batch identifiers, enforces ownership and validity invariants,
// and maintains an append-only custody history per batch. All state lives in
// process memory behind the Ledger's method contract; persistence and
// transport are collaborator concerns.
package ledger

import (
	"time"

	"github.com/pharmatrace/batchtrace/internal/adapter"
	"github.com/pharmatrace/batchtrace/internal/domain"
)

// Config holds the ledger's constructor-injected dependencies.
type Config struct {
	// Admin is the bootstrap administrator for the role directory.
	Admin domain.Identity
	// Clock supplies timestamps; defaults to the real clock.
	Clock adapter.Clock
	// Notifier receives post-commit notifications; defaults to a no-op.
	Notifier Notifier
}

// Ledger is the single authoritative instance of the custody ledger. It wires
// the registry, audit log, transfer engine, role directory and query façade
// behind the operation set exposed to collaborators.
type Ledger struct {
	registry  *Registry
	engine    *TransferEngine
	directory *Directory
	queries   *Queries
	notifier  Notifier
	clock     adapter.Clock
}

// New creates an empty ledger.
func New(cfg Config) *Ledger {
	clock := cfg.Clock
	if clock == nil {
		clock = adapter.NewClock()
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = NopNotifier{}
	}

	log := NewAuditLog()
	registry := NewRegistry(log, clock)

	return &Ledger{
		registry:  registry,
		engine:    NewTransferEngine(registry, clock),
		directory: NewDirectory(cfg.Admin),
		queries:   NewQueries(registry, clock),
		notifier:  notifier,
		clock:     clock,
	}
}

// RegisterParams holds the inputs for batch registration.
type RegisterParams struct {
	BatchCode        string
	Name             string
	ManufacturerName string
	Expiry           time.Time
	MetadataRef      string
	Creator          domain.Identity
}

// Register creates a new batch with the creator as initial custodian and
// returns its id. The batch-code uniqueness check is linearizable: of any
// number of concurrent registrations with the same code, exactly one wins.
func (l *Ledger) Register(params RegisterParams) (domain.BatchID, error) {
	id, err := l.registry.Register(domain.Batch{
		BatchCode:        params.BatchCode,
		Name:             params.Name,
		ManufacturerName: params.ManufacturerName,
		Expiry:           params.Expiry,
		MetadataRef:      params.MetadataRef,
	}, params.Creator)
	if err != nil {
		return 0, err
	}

	l.notifier.Notify(domain.NewBatchRegistered(l.clock.Now(), domain.BatchRegistered{
		ID:           id,
		BatchCode:    params.BatchCode,
		Owner:        params.Creator,
		Name:         params.Name,
		Manufacturer: params.ManufacturerName,
		Expiry:       params.Expiry,
	}))
	return id, nil
}

// Transfer moves custody of a batch to a new owner and returns the recorded
// custody event.
func (l *Ledger) Transfer(
	id domain.BatchID,
	requester domain.Identity,
	newOwner domain.Identity,
	eventType domain.EventType,
	externalRef *string,
) (domain.CustodyEvent, error) {
	event, err := l.engine.Transfer(id, requester, newOwner, eventType, externalRef)
	if err != nil {
		return domain.CustodyEvent{}, err
	}

	l.notifier.Notify(domain.NewCustodyTransferred(l.clock.Now(), domain.CustodyTransferred{
		ID:        id,
		From:      requester,
		To:        newOwner,
		EventType: eventType,
	}))
	return event, nil
}

// Deactivate permanently retires a batch. Only the current owner may do this;
// deactivating an already inactive batch is a no-op.
func (l *Ledger) Deactivate(id domain.BatchID, requester domain.Identity) error {
	return l.registry.Deactivate(id, requester)
}

// GetByID returns the batch record with the given id.
func (l *Ledger) GetByID(id domain.BatchID) (domain.Batch, error) {
	return l.registry.GetByID(id)
}

// GetByCode returns the batch record with the given batch code.
func (l *Ledger) GetByCode(code string) (domain.Batch, error) {
	return l.registry.GetByCode(code)
}

// GetHistory returns the batch's custody events in chronological order.
func (l *Ledger) GetHistory(id domain.BatchID) ([]domain.CustodyEvent, error) {
	return l.registry.Log().History(id)
}

// ListByOwner returns the ids of all batches currently held by the identity.
func (l *Ledger) ListByOwner(identity domain.Identity) []domain.BatchID {
	return l.queries.ListByOwner(identity)
}

// ListRecent returns batches newest-first, paginated.
func (l *Ledger) ListRecent(limit, offset int) []domain.Batch {
	return l.queries.ListRecent(limit, offset)
}

// Count returns the total number of batches ever registered.
func (l *Ledger) Count() int64 {
	return l.queries.Count()
}

// DashboardSummary returns the registry-wide aggregate counters.
func (l *Ledger) DashboardSummary() DashboardSummary {
	return l.queries.DashboardSummary()
}

// AssignRole sets or overwrites an identity's advisory role.
func (l *Ledger) AssignRole(requester, identity domain.Identity, role domain.Role) error {
	if err := l.directory.AssignRole(requester, identity, role); err != nil {
		return err
	}

	l.notifier.Notify(domain.NewRoleAssigned(l.clock.Now(), domain.RoleAssigned{
		Identity: identity,
		Role:     role,
	}))
	return nil
}

// GetRole returns the identity's role, defaulting to Customer.
func (l *Ledger) GetRole(identity domain.Identity) domain.Role {
	return l.directory.GetRole(identity)
}
