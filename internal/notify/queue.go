package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/pharmatrace/batchtrace/internal/domain"
	"github.com/pharmatrace/batchtrace/internal/logger"
)

// Queue decouples the ledger's synchronous notification emission from outbound
// delivery. Notify accepts the notification immediately (the ledger never
// blocks on broker or webhook I/O); a single worker drains the buffer to the
// sinks in emission order.
type Queue struct {
	ch     chan *domain.Notification
	sinks  []Sink
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	closeOnce sync.Once
}

// NewQueue creates a queue with the given buffer size and starts its worker.
func NewQueue(size int, sinks ...Sink) *Queue {
	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		ch:     make(chan *domain.Notification, size),
		sinks:  sinks,
		ctx:    ctx,
		cancel: cancel,
	}

	q.wg.Add(1)
	go q.run()
	return q
}

// Notify implements ledger.Notifier. When the buffer is full the notification
// is dropped and logged rather than stalling the ledger.
func (q *Queue) Notify(n *domain.Notification) {
	select {
	case q.ch <- n:
	default:
		logger.Warn("notification buffer full, dropping",
			zap.String("type", string(n.Type)),
		)
	}
}

// Close stops the worker after draining buffered notifications and closes the
// sinks.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		close(q.ch)
		q.wg.Wait()
		q.cancel()
		for _, sink := range q.sinks {
			sink.Close()
		}
	})
}

func (q *Queue) run() {
	defer q.wg.Done()

	for n := range q.ch {
		for _, sink := range q.sinks {
			if err := sink.Deliver(q.ctx, n); err != nil {
				logger.Error(err,
					zap.String("type", string(n.Type)),
				)
			}
		}
	}
}
