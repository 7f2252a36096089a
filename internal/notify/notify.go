// Package notify moves ledger notifications from the core to external
// collaborators: the NATS stream feeding the ledger mirror, and signed
// webhooks. The core hands a notification over synchronously after commit;
// delivery to the outside world happens off the caller's goroutine.
package notify

import (
	"context"

	"github.com/pharmatrace/batchtrace/internal/domain"
)

// Sink consumes ledger notifications.
//
//go:generate mockgen -source=notify.go -destination=../mocks/sink.go -package=mocks -mock_names=Sink=MockSink
type Sink interface {
	// Deliver hands one notification to the sink.
	Deliver(ctx context.Context, n *domain.Notification) error
	// Close releases the sink's resources.
	Close()
}

// Handler is called for every notification received by a subscriber.
type Handler func(ctx context.Context, n *domain.Notification) error

// Subscriber receives ledger notifications from the message broker.
type Subscriber interface {
	// Run consumes notifications until the context is canceled.
	Run(ctx context.Context, handler Handler) error
	// Close closes the connection and cleans up resources.
	Close()
}
