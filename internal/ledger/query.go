package ledger

import (
	"sort"

	"github.com/pharmatrace/batchtrace/internal/adapter"
	"github.com/pharmatrace/batchtrace/internal/domain"
)

// DashboardSummary aggregates registry-wide counts for dashboards.
type DashboardSummary struct {
	// Total is the number of batches ever registered, including inactive ones.
	Total int64 `json:"total"`
	// ActiveTransfersInProgress counts batches whose most recent custody event
	// is a non-terminal transfer kind (transfer or distribute, not deliver).
	ActiveTransfersInProgress int64 `json:"active_transfers_in_progress"`
	// NonExpiredCount counts batches whose expiry is still in the future,
	// independent of the active flag.
	NonExpiredCount int64 `json:"non_expired_count"`
}

// Queries is the read-only projection layer over the registry and audit log.
// Results are consistent snapshots taken at call time; a read racing a write
// may miss that one write but never observes partial state.
type Queries struct {
	registry *Registry
	clock    adapter.Clock
}

// NewQueries creates the query façade for a registry.
func NewQueries(registry *Registry, clock adapter.Clock) *Queries {
	return &Queries{
		registry: registry,
		clock:    clock,
	}
}

// ListByOwner returns the ids of all batches currently held by the identity,
// in ascending id order. Identity matching is case-insensitive.
func (q *Queries) ListByOwner(identity domain.Identity) []domain.BatchID {
	q.registry.mu.RLock()
	defer q.registry.mu.RUnlock()

	set := q.registry.ownedBy(identity)
	out := make([]domain.BatchID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ListRecent returns batches sorted by registration time, newest first, with
// id descending as the stable tie-break, paginated by limit and offset.
func (q *Queries) ListRecent(limit, offset int) []domain.Batch {
	batches := q.registry.snapshot()

	sort.Slice(batches, func(i, j int) bool {
		if !batches[i].CreatedAt.Equal(batches[j].CreatedAt) {
			return batches[i].CreatedAt.After(batches[j].CreatedAt)
		}
		return batches[i].ID > batches[j].ID
	})

	if offset < 0 {
		offset = 0
	}
	if offset >= len(batches) {
		return []domain.Batch{}
	}
	batches = batches[offset:]

	if limit >= 0 && limit < len(batches) {
		batches = batches[:limit]
	}
	return batches
}

// Count returns the total number of batches ever registered.
func (q *Queries) Count() int64 {
	return q.registry.Count()
}

// DashboardSummary computes the aggregate counters over the whole registry.
func (q *Queries) DashboardSummary() DashboardSummary {
	now := q.clock.Now()
	batches := q.registry.snapshot()
	log := q.registry.Log()

	summary := DashboardSummary{Total: int64(len(batches))}
	for _, batch := range batches {
		if !batch.Expired(now) {
			summary.NonExpiredCount++
		}
		if last, ok := log.LastEventType(batch.ID); ok && last.InProgress() {
			summary.ActiveTransfersInProgress++
		}
	}
	return summary
}
