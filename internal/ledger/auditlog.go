package ledger

import (
	"sync"
	"time"

	"github.com/pharmatrace/batchtrace/internal/domain"
)

// AuditLog holds the per-batch custody histories in arena style: a mapping
// from batch id to an ordered, append-only event sequence. The type exposes no
// update or delete operation, so past entries are structurally immutable.
type AuditLog struct {
	mu     sync.RWMutex
	events map[domain.BatchID][]domain.CustodyEvent
	sealed map[domain.BatchID]bool
}

// NewAuditLog creates an empty audit log.
func NewAuditLog() *AuditLog {
	return &AuditLog{
		events: make(map[domain.BatchID][]domain.CustodyEvent),
		sealed: make(map[domain.BatchID]bool),
	}
}

// Seed creates the history for a freshly registered batch with the synthetic
// manufacture event. It is called exactly once per batch, by the registry,
// inside the registration critical section.
func (l *AuditLog) Seed(id domain.BatchID, to domain.Identity, ts time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.events[id]; ok {
		return domain.NewConflictError("history for batch %d already seeded", id)
	}

	l.events[id] = []domain.CustodyEvent{{
		From:      nil,
		To:        to,
		EventType: domain.EventTypeManufacture,
		Timestamp: ts,
	}}
	return nil
}

// Append adds a custody event to a batch's history and returns the event as
// recorded. Appends to sealed (deactivated) batches are refused. Timestamps
// are clamped to be monotonically non-decreasing within a batch's history.
func (l *AuditLog) Append(id domain.BatchID, event domain.CustodyEvent) (domain.CustodyEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	history, ok := l.events[id]
	if !ok {
		return domain.CustodyEvent{}, domain.NewNotFoundError("no history for batch %d", id)
	}
	if l.sealed[id] {
		return domain.CustodyEvent{}, domain.NewStateError("batch %d is inactive", id)
	}

	if last := history[len(history)-1].Timestamp; event.Timestamp.Before(last) {
		event.Timestamp = last
	}

	l.events[id] = append(history, event)
	return event, nil
}

// Seal closes a batch's history for good. Called by the registry when a batch
// is deactivated; there is no unseal.
func (l *AuditLog) Seal(id domain.BatchID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sealed[id] = true
}

// History returns a copy of the batch's custody events in append order.
func (l *AuditLog) History(id domain.BatchID) ([]domain.CustodyEvent, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	history, ok := l.events[id]
	if !ok {
		return nil, domain.NewNotFoundError("no history for batch %d", id)
	}

	out := make([]domain.CustodyEvent, len(history))
	copy(out, history)
	return out, nil
}

// LastEventType returns the type of the most recent event for a batch, or
// false if the batch has no history.
func (l *AuditLog) LastEventType(id domain.BatchID) (domain.EventType, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	history, ok := l.events[id]
	if !ok || len(history) == 0 {
		return "", false
	}
	return history[len(history)-1].EventType, true
}

// Len returns the number of recorded events for a batch.
func (l *AuditLog) Len(id domain.BatchID) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events[id])
}
