package ledger

import (
	"strings"
	"sync"

	"github.com/pharmatrace/batchtrace/internal/adapter"
	"github.com/pharmatrace/batchtrace/internal/domain"
)

// batchEntry pairs a batch record with the mutex that serializes custody
// mutations on it. Lock ordering: entry.mu first, then Registry.mu. The record
// itself is only ever written while Registry.mu is held for writing.
type batchEntry struct {
	mu    sync.Mutex
	batch domain.Batch
}

// Registry is the authoritative store of batch records, their current owners
// and their audit histories. All state is process-local and guarded by
// in-process locks; nothing in here blocks on external I/O.
type Registry struct {
	mu     sync.RWMutex
	nextID domain.BatchID
	byID   map[domain.BatchID]*batchEntry
	byCode map[string]domain.BatchID
	// byOwner maps a normalized identity key to the set of batch ids that
	// identity currently holds. Updated in the same critical section as the
	// ownership field so the two can never disagree.
	byOwner map[string]map[domain.BatchID]struct{}

	log   *AuditLog
	clock adapter.Clock
}

// NewRegistry creates an empty registry backed by the given audit log.
func NewRegistry(log *AuditLog, clock adapter.Clock) *Registry {
	return &Registry{
		nextID:  1,
		byID:    make(map[domain.BatchID]*batchEntry),
		byCode:  make(map[string]domain.BatchID),
		byOwner: make(map[string]map[domain.BatchID]struct{}),
		log:     log,
		clock:   clock,
	}
}

// Register validates the inputs, allocates the next sequential id and stores
// the record with the creator as initial custodian, seeding the audit log with
// the synthetic manufacture event. The uniqueness check and the insert happen
// under one lock so concurrent registrations of the same code resolve to
// exactly one winner.
func (r *Registry) Register(batch domain.Batch, creator domain.Identity) (domain.BatchID, error) {
	now := r.clock.Now()

	if strings.TrimSpace(batch.BatchCode) == "" {
		return 0, domain.NewValidationError("batch code must not be empty")
	}
	if strings.TrimSpace(batch.Name) == "" {
		return 0, domain.NewValidationError("batch name must not be empty")
	}
	if strings.TrimSpace(batch.ManufacturerName) == "" {
		return 0, domain.NewValidationError("manufacturer name must not be empty")
	}
	if !batch.Expiry.After(now) {
		return 0, domain.NewValidationError("expiry must be in the future")
	}
	if !creator.WellFormed() {
		return 0, domain.NewValidationError("creator identity must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byCode[batch.BatchCode]; exists {
		return 0, domain.NewConflictError("batch code %q already registered", batch.BatchCode)
	}

	id := r.nextID
	r.nextID++

	batch.ID = id
	batch.OwnerIdentity = creator
	batch.IsActive = true
	batch.CreatedAt = now

	r.byID[id] = &batchEntry{batch: batch}
	r.byCode[batch.BatchCode] = id
	r.indexOwner(creator, id)

	if err := r.log.Seed(id, creator, now); err != nil {
		// Seed can only conflict if an id were ever reused, which the
		// monotonic counter rules out.
		delete(r.byID, id)
		delete(r.byCode, batch.BatchCode)
		r.unindexOwner(creator, id)
		return 0, err
	}

	return id, nil
}

// GetByID returns a copy of the batch record with the given id.
func (r *Registry) GetByID(id domain.BatchID) (domain.Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.byID[id]
	if !ok {
		return domain.Batch{}, domain.NewNotFoundError("batch %d not found", id)
	}
	return entry.batch, nil
}

// GetByCode returns a copy of the batch record with the given batch code.
func (r *Registry) GetByCode(code string) (domain.Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byCode[code]
	if !ok {
		return domain.Batch{}, domain.NewNotFoundError("batch code %q not found", code)
	}
	return r.byID[id].batch, nil
}

// Deactivate flips the batch's active flag off and seals its history. Only the
// current owner may deactivate. Deactivating an already inactive batch is a
// no-op; the flip is one-way and there is no reactivation.
func (r *Registry) Deactivate(id domain.BatchID, requester domain.Identity) error {
	entry, err := r.entry(id)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if !entry.batch.OwnerIdentity.Equal(requester) {
		return domain.NewAuthorizationError("only the current owner may deactivate batch %d", id)
	}
	if !entry.batch.IsActive {
		return nil
	}

	entry.batch.IsActive = false
	r.log.Seal(id)
	return nil
}

// Count returns the total number of batches ever registered, including
// inactive ones. Records are never deleted, so this is monotonic.
func (r *Registry) Count() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byID))
}

// Log exposes the audit log owned by this registry.
func (r *Registry) Log() *AuditLog {
	return r.log
}

// entry looks up the live entry for a batch id.
func (r *Registry) entry(id domain.BatchID) (*batchEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("batch %d not found", id)
	}
	return entry, nil
}

// setOwner rewrites the custodian of a batch and moves its id between owner
// index buckets. Internal mutator for the transfer engine; callers must hold
// entry.mu and r.mu.
func (r *Registry) setOwner(entry *batchEntry, newOwner domain.Identity) {
	r.unindexOwner(entry.batch.OwnerIdentity, entry.batch.ID)
	entry.batch.OwnerIdentity = newOwner
	r.indexOwner(newOwner, entry.batch.ID)
}

// ownedBy returns the ids currently held by the identity. Caller must hold
// r.mu at least for reading.
func (r *Registry) ownedBy(identity domain.Identity) map[domain.BatchID]struct{} {
	return r.byOwner[identity.Key()]
}

func (r *Registry) indexOwner(owner domain.Identity, id domain.BatchID) {
	key := owner.Key()
	set, ok := r.byOwner[key]
	if !ok {
		set = make(map[domain.BatchID]struct{})
		r.byOwner[key] = set
	}
	set[id] = struct{}{}
}

func (r *Registry) unindexOwner(owner domain.Identity, id domain.BatchID) {
	key := owner.Key()
	if set, ok := r.byOwner[key]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(r.byOwner, key)
		}
	}
}

// snapshot returns copies of all batch records. Used by the query façade.
func (r *Registry) snapshot() []domain.Batch {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Batch, 0, len(r.byID))
	for _, entry := range r.byID {
		out = append(out, entry.batch)
	}
	return out
}
