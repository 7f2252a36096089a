package notify_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmatrace/batchtrace/internal/domain"
	"github.com/pharmatrace/batchtrace/internal/logger"
	"github.com/pharmatrace/batchtrace/internal/mocks"
	"github.com/pharmatrace/batchtrace/internal/notify"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func registeredNotification(id domain.BatchID, code string) *domain.Notification {
	return domain.NewBatchRegistered(time.Now(), domain.BatchRegistered{
		ID:        id,
		BatchCode: code,
		Owner:     domain.Identity("0xmanufacturer"),
	})
}

func TestQueue_DeliversInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockSink(ctrl)

	var mu sync.Mutex
	var delivered []*domain.Notification
	sink.EXPECT().Deliver(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n *domain.Notification) error {
			mu.Lock()
			defer mu.Unlock()
			delivered = append(delivered, n)
			return nil
		}).Times(3)
	sink.EXPECT().Close().Times(1)

	queue := notify.NewQueue(16, sink)

	n1 := registeredNotification(1, "LOT-001")
	n2 := registeredNotification(2, "LOT-002")
	n3 := registeredNotification(3, "LOT-003")
	queue.Notify(n1)
	queue.Notify(n2)
	queue.Notify(n3)

	// Close drains the buffer before stopping the worker
	queue.Close()

	require.Len(t, delivered, 3)
	assert.Equal(t, n1, delivered[0])
	assert.Equal(t, n2, delivered[1])
	assert.Equal(t, n3, delivered[2])
}

func TestQueue_FansOutToAllSinks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := mocks.NewMockSink(ctrl)
	second := mocks.NewMockSink(ctrl)

	n := registeredNotification(1, "LOT-001")
	first.EXPECT().Deliver(gomock.Any(), n).Return(nil).Times(1)
	second.EXPECT().Deliver(gomock.Any(), n).Return(nil).Times(1)
	first.EXPECT().Close().Times(1)
	second.EXPECT().Close().Times(1)

	queue := notify.NewQueue(16, first, second)
	queue.Notify(n)
	queue.Close()
}

func TestQueue_SinkErrorDoesNotStopDelivery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	failing := mocks.NewMockSink(ctrl)
	healthy := mocks.NewMockSink(ctrl)

	failing.EXPECT().Deliver(gomock.Any(), gomock.Any()).
		Return(errors.New("connection refused")).Times(2)
	healthy.EXPECT().Deliver(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	failing.EXPECT().Close().Times(1)
	healthy.EXPECT().Close().Times(1)

	queue := notify.NewQueue(16, failing, healthy)
	queue.Notify(registeredNotification(1, "LOT-001"))
	queue.Notify(registeredNotification(2, "LOT-002"))
	queue.Close()
}

func TestQueue_DropsWhenFull(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockSink(ctrl)

	started := make(chan struct{})
	release := make(chan struct{})

	var mu sync.Mutex
	var delivered []*domain.Notification
	first := true
	sink.EXPECT().Deliver(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n *domain.Notification) error {
			if first {
				first = false
				close(started)
				<-release
			}
			mu.Lock()
			defer mu.Unlock()
			delivered = append(delivered, n)
			return nil
		}).Times(2)
	sink.EXPECT().Close().Times(1)

	queue := notify.NewQueue(1, sink)

	// The worker picks this one up and blocks inside Deliver
	queue.Notify(registeredNotification(1, "LOT-001"))
	<-started

	// This one fills the single buffer slot
	queue.Notify(registeredNotification(2, "LOT-002"))

	// Buffer full: dropped, the ledger's caller never blocks
	queue.Notify(registeredNotification(3, "LOT-003"))

	close(release)
	queue.Close()

	require.Len(t, delivered, 2)
	assert.Equal(t, domain.BatchID(1), delivered[0].BatchRegistered.ID)
	assert.Equal(t, domain.BatchID(2), delivered[1].BatchRegistered.ID)
}

func TestQueue_CloseIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockSink(ctrl)
	sink.EXPECT().Close().Times(1)

	queue := notify.NewQueue(1, sink)
	queue.Close()
	queue.Close()
}
