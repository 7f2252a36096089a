package mirror_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmatrace/batchtrace/internal/adapter"
	"github.com/pharmatrace/batchtrace/internal/domain"
	"github.com/pharmatrace/batchtrace/internal/mirror"
	"github.com/pharmatrace/batchtrace/internal/mirror/schema"
	"github.com/pharmatrace/batchtrace/internal/mocks"
)

// testMirrorMocks contains all the mocks needed for testing the applier
type testMirrorMocks struct {
	ctrl   *gomock.Controller
	store  *mocks.MockStore
	mirror *mirror.Mirror
}

// setupTestMirror creates all the mocks and the applier for testing
func setupTestMirror(t *testing.T) *testMirrorMocks {
	ctrl := gomock.NewController(t)

	tm := &testMirrorMocks{
		ctrl:  ctrl,
		store: mocks.NewMockStore(ctrl),
	}
	tm.mirror = mirror.NewMirror(tm.store, adapter.NewJSON())

	return tm
}

// tearDownTestMirror cleans up the test mocks
func tearDownTestMirror(tm *testMirrorMocks) {
	tm.ctrl.Finish()
}

func TestApply_BatchRegistered(t *testing.T) {
	tm := setupTestMirror(t)
	defer tearDownTestMirror(tm)

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	expiry := ts.AddDate(1, 0, 0)

	n := domain.NewBatchRegistered(ts, domain.BatchRegistered{
		ID:           7,
		BatchCode:    "LOT-001",
		Owner:        domain.Identity("0xManufacturer"),
		Name:         "Amoxicillin 500mg",
		Manufacturer: "Helvetia Pharma AG",
		Expiry:       expiry,
	})

	tm.store.
		EXPECT().
		UpsertBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, batch schema.Batch) error {
			assert.Equal(t, uint64(7), batch.ID)
			assert.Equal(t, "LOT-001", batch.BatchCode)
			assert.Equal(t, "Amoxicillin 500mg", batch.Name)
			assert.Equal(t, "Helvetia Pharma AG", batch.ManufacturerName)
			assert.Equal(t, expiry, batch.Expiry)
			// Identities are mirrored in lookup form
			assert.Equal(t, "0xmanufacturer", batch.OwnerIdentity)
			assert.True(t, batch.IsActive)

			// Registration seeds the manufacture event
			require.Len(t, batch.CustodyEvents, 1)
			seed := batch.CustodyEvents[0]
			assert.Equal(t, string(domain.EventTypeManufacture), seed.EventType)
			assert.Nil(t, seed.FromIdentity)
			assert.Equal(t, "0xmanufacturer", seed.ToIdentity)
			assert.Equal(t, ts, seed.Timestamp)
			assert.NotEmpty(t, seed.Raw)
			return nil
		})

	err := tm.mirror.Apply(context.Background(), n)
	assert.NoError(t, err)
}

func TestApply_CustodyTransferred(t *testing.T) {
	tm := setupTestMirror(t)
	defer tearDownTestMirror(tm)

	ts := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	n := domain.NewCustodyTransferred(ts, domain.CustodyTransferred{
		ID:        7,
		From:      domain.Identity("0xManufacturer"),
		To:        domain.Identity("0xDistributor"),
		EventType: domain.EventTypeDistribute,
	})

	tm.store.
		EXPECT().
		ApplyTransfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input mirror.ApplyTransferInput) error {
			assert.Equal(t, uint64(7), input.BatchID)
			assert.Equal(t, "0xdistributor", input.NewOwner)
			assert.Equal(t, string(domain.EventTypeDistribute), input.CustodyEvent.EventType)
			require.NotNil(t, input.CustodyEvent.FromIdentity)
			assert.Equal(t, "0xmanufacturer", *input.CustodyEvent.FromIdentity)
			assert.Equal(t, "0xdistributor", input.CustodyEvent.ToIdentity)
			assert.Equal(t, ts, input.CustodyEvent.Timestamp)
			return nil
		})

	err := tm.mirror.Apply(context.Background(), n)
	assert.NoError(t, err)
}

func TestApply_TransferBeforeRegistrationIsRetryable(t *testing.T) {
	tm := setupTestMirror(t)
	defer tearDownTestMirror(tm)

	n := domain.NewCustodyTransferred(time.Now(), domain.CustodyTransferred{
		ID:        99,
		From:      domain.Identity("0xmanufacturer"),
		To:        domain.Identity("0xdistributor"),
		EventType: domain.EventTypeTransfer,
	})

	tm.store.
		EXPECT().
		ApplyTransfer(gomock.Any(), gomock.Any()).
		Return(mirror.ErrBatchNotMirrored)

	// The error propagates so the consumer NAKs and redelivery restores
	// registration-before-transfer ordering
	err := tm.mirror.Apply(context.Background(), n)
	assert.ErrorIs(t, err, mirror.ErrBatchNotMirrored)
}

func TestApply_RoleAssigned(t *testing.T) {
	tm := setupTestMirror(t)
	defer tearDownTestMirror(tm)

	ts := time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)
	n := domain.NewRoleAssigned(ts, domain.RoleAssigned{
		Identity: domain.Identity("0xPharmacy"),
		Role:     domain.RolePharmacist,
	})

	tm.store.
		EXPECT().
		UpsertRoleAssignment(gomock.Any(), schema.RoleAssignment{
			Identity:  "0xpharmacy",
			Role:      string(domain.RolePharmacist),
			UpdatedAt: ts,
		}).
		Return(nil)

	err := tm.mirror.Apply(context.Background(), n)
	assert.NoError(t, err)
}

func TestApply_UnknownTypeSkipped(t *testing.T) {
	tm := setupTestMirror(t)
	defer tearDownTestMirror(tm)

	n := &domain.Notification{Type: domain.NotificationType("batch.recalled"), Timestamp: time.Now()}

	// No store call, no error: unknown kinds never wedge the consumer
	err := tm.mirror.Apply(context.Background(), n)
	assert.NoError(t, err)
}
