package ledger

import (
	"github.com/pharmatrace/batchtrace/internal/domain"
)

// Notifier receives ledger notifications synchronously, after the
// corresponding state mutation has committed and never before. Implementations
// must not block the caller for long; slow delivery belongs behind a queue.
//
//go:generate mockgen -source=notifier.go -destination=../mocks/notifier.go -package=mocks -mock_names=Notifier=MockNotifier
type Notifier interface {
	Notify(n *domain.Notification)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(*domain.Notification) {}

// fanoutNotifier forwards each notification to every registered notifier in order.
type fanoutNotifier struct {
	notifiers []Notifier
}

// Fanout combines multiple notifiers into one. Nil entries are skipped.
func Fanout(notifiers ...Notifier) Notifier {
	out := make([]Notifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return &fanoutNotifier{notifiers: out}
}

func (f *fanoutNotifier) Notify(n *domain.Notification) {
	for _, notifier := range f.notifiers {
		notifier.Notify(n)
	}
}
