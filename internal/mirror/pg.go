package mirror

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pharmatrace/batchtrace/internal/mirror/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL mirror store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults: MaxOpenConns 20,
// MaxIdleConns 5, ConnMaxLifetime 5 minutes, ConnMaxIdleTime 10 minutes.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// Migrate creates or updates the mirror tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.Batch{},
		&schema.CustodyEvent{},
		&schema.RoleAssignment{},
	)
}

// UpsertBatch creates or refreshes a mirrored batch record together with its
// seeding custody event in a single transaction. Redeliveries are absorbed by
// the ON CONFLICT clauses.
func (s *pgStore) UpsertBatch(ctx context.Context, batch schema.Batch) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"batch_code", "name", "manufacturer_name", "expiry",
				"owner_identity", "is_active", "updated_at",
			}),
		}).Create(&batch).Error; err != nil {
			return fmt.Errorf("failed to upsert batch: %w", err)
		}

		for i := range batch.CustodyEvents {
			event := batch.CustodyEvents[i]
			event.BatchID = batch.ID
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "batch_id"}, {Name: "event_type"},
					{Name: "to_identity"}, {Name: "timestamp"},
				},
				DoNothing: true,
			}).Create(&event).Error; err != nil {
				return fmt.Errorf("failed to create custody event: %w", err)
			}
		}

		return nil
	})
}

// ApplyTransfer updates the batch owner and appends the custody event in a
// single transaction
func (s *pgStore) ApplyTransfer(ctx context.Context, input ApplyTransferInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var batch schema.Batch
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", input.BatchID).
			First(&batch).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBatchNotMirrored
			}
			return fmt.Errorf("failed to lock batch: %w", err)
		}

		event := input.CustodyEvent
		event.BatchID = input.BatchID

		result := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "batch_id"}, {Name: "event_type"},
				{Name: "to_identity"}, {Name: "timestamp"},
			},
			DoNothing: true,
		}).Create(&event)
		if result.Error != nil {
			return fmt.Errorf("failed to create custody event: %w", result.Error)
		}

		// Duplicate event means this notification was already applied
		if result.RowsAffected == 0 {
			return nil
		}

		if err := tx.Model(&schema.Batch{}).
			Where("id = ?", input.BatchID).
			Updates(map[string]interface{}{
				"owner_identity": input.NewOwner,
				"updated_at":     event.Timestamp,
			}).Error; err != nil {
			return fmt.Errorf("failed to update batch owner: %w", err)
		}

		return nil
	})
}

// UpsertRoleAssignment creates or overwrites a mirrored role assignment
func (s *pgStore) UpsertRoleAssignment(ctx context.Context, assignment schema.RoleAssignment) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "identity"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
	}).Create(&assignment).Error
	if err != nil {
		return fmt.Errorf("failed to upsert role assignment: %w", err)
	}
	return nil
}

// GetBatchByID retrieves a mirrored batch by its ledger id
func (s *pgStore) GetBatchByID(ctx context.Context, batchID uint64) (*schema.Batch, error) {
	var batch schema.Batch
	err := s.db.WithContext(ctx).Where("id = ?", batchID).First(&batch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}
	return &batch, nil
}

// GetBatchByCode retrieves a mirrored batch by its batch code
func (s *pgStore) GetBatchByCode(ctx context.Context, batchCode string) (*schema.Batch, error) {
	var batch schema.Batch
	err := s.db.WithContext(ctx).Where("batch_code = ?", batchCode).First(&batch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}
	return &batch, nil
}

// GetCustodyEvents retrieves the mirrored custody history for a batch ordered
// by timestamp ascending
func (s *pgStore) GetCustodyEvents(ctx context.Context, batchID uint64, limit int, offset uint64) ([]schema.CustodyEvent, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.CustodyEvent{}).Where("batch_id = ?", batchID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count custody events: %w", err)
	}

	query = query.Order("timestamp ASC, id ASC").Limit(limit).Offset(int(offset)) //nolint:gosec,G115

	var events []schema.CustodyEvent
	if err := query.Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get custody events: %w", err)
	}

	return events, uint64(total), nil //nolint:gosec,G115
}

// CountBatches returns the number of mirrored batches
func (s *pgStore) CountBatches(ctx context.Context) (uint64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&schema.Batch{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count batches: %w", err)
	}
	return uint64(count), nil //nolint:gosec,G115
}
