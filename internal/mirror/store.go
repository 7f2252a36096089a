package mirror

import (
	"context"

	"github.com/pharmatrace/batchtrace/internal/mirror/schema"
)

//go:generate mockgen -source=store.go -destination=../mocks/mirror_store.go -package=mocks

// Store defines the interface for mirror database operations
type Store interface {
	// UpsertBatch creates or refreshes a mirrored batch record
	UpsertBatch(ctx context.Context, batch schema.Batch) error
	// ApplyTransfer updates the batch owner and appends the custody event in a single transaction
	ApplyTransfer(ctx context.Context, input ApplyTransferInput) error
	// UpsertRoleAssignment creates or overwrites a mirrored role assignment
	UpsertRoleAssignment(ctx context.Context, assignment schema.RoleAssignment) error
	// GetBatchByID retrieves a mirrored batch by its ledger id
	GetBatchByID(ctx context.Context, batchID uint64) (*schema.Batch, error)
	// GetBatchByCode retrieves a mirrored batch by its batch code
	GetBatchByCode(ctx context.Context, batchCode string) (*schema.Batch, error)
	// GetCustodyEvents retrieves the mirrored custody history for a batch ordered by timestamp
	GetCustodyEvents(ctx context.Context, batchID uint64, limit int, offset uint64) ([]schema.CustodyEvent, uint64, error)
	// CountBatches returns the number of mirrored batches
	CountBatches(ctx context.Context) (uint64, error)
}

// ApplyTransferInput carries the owner change and the custody event to append
type ApplyTransferInput struct {
	BatchID      uint64
	NewOwner     string
	CustodyEvent schema.CustodyEvent
}
