package webhook

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/pharmatrace/batchtrace/internal/domain"
	"github.com/pharmatrace/batchtrace/internal/logger"
)

const (
	// DefaultRetryMaxAttempts bounds redelivery when a client sets no budget
	DefaultRetryMaxAttempts = 5
	// deliveryTimeout bounds a single HTTP delivery attempt
	deliveryTimeout = 10 * time.Second
)

// DispatcherConfig holds the dispatcher's tuning knobs.
type DispatcherConfig struct {
	// PoolSize is the number of concurrent delivery workers
	PoolSize int
	// Debug allows plain-HTTP webhook URLs for local testing
	Debug bool
}

// Dispatcher fans ledger notifications out to registered webhook clients as
// HMAC-signed HTTP POSTs. Deliveries run on a bounded worker pool with
// exponential-backoff retries; the dispatcher implements notify.Sink.
type Dispatcher struct {
	mu      sync.RWMutex
	clients map[string]Client

	pool       pond.Pool
	httpClient *http.Client
	debug      bool
}

// NewDispatcher creates a dispatcher with an empty client set.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	size := cfg.PoolSize
	if size <= 0 {
		size = 10
	}

	return &Dispatcher{
		clients:    make(map[string]Client),
		pool:       pond.NewPool(size),
		httpClient: &http.Client{Timeout: deliveryTimeout},
		debug:      cfg.Debug,
	}
}

// RegisterClient validates and stores a webhook client, assigning it an id.
// Re-registering the same id overwrites the previous entry.
func (d *Dispatcher) RegisterClient(client Client) (Client, error) {
	if client.URL == "" {
		return Client{}, domain.NewValidationError("webhook URL must not be empty")
	}
	if !d.debug && !isHTTPS(client.URL) {
		return Client{}, domain.NewValidationError("webhook URL must use https")
	}
	if client.Secret == "" {
		return Client{}, domain.NewValidationError("webhook secret must not be empty")
	}
	if len(client.EventFilters) == 0 {
		client.EventFilters = []string{EventTypeWildcard}
	}
	if client.RetryMaxAttempts <= 0 {
		client.RetryMaxAttempts = DefaultRetryMaxAttempts
	}
	if client.ID == "" {
		client.ID = uuid.NewString()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.clients[client.ID] = client
	return client, nil
}

// Clients returns a snapshot of the registered clients.
func (d *Dispatcher) Clients() []Client {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]Client, 0, len(d.clients))
	for _, client := range d.clients {
		out = append(out, client)
	}
	return out
}

// Deliver implements notify.Sink: it wraps the notification in a webhook
// event and schedules one delivery task per matching client.
func (d *Dispatcher) Deliver(ctx context.Context, n *domain.Notification) error {
	event := Event{
		EventID:   ulid.Make().String(),
		EventType: string(n.Type),
		Timestamp: n.Timestamp,
		Data:      n,
	}

	d.mu.RLock()
	targets := make([]Client, 0, len(d.clients))
	for _, client := range d.clients {
		if client.Matches(event.EventType) {
			targets = append(targets, client)
		}
	}
	d.mu.RUnlock()

	for _, client := range targets {
		client := client
		d.pool.Submit(func() {
			d.deliverWithRetry(ctx, client, event)
		})
	}
	return nil
}

// Close drains in-flight deliveries and stops the pool.
func (d *Dispatcher) Close() {
	d.pool.StopAndWait()
}

// deliverWithRetry attempts delivery with exponential backoff up to the
// client's retry budget.
func (d *Dispatcher) deliverWithRetry(ctx context.Context, client Client, event Event) {
	operation := func() error {
		result := d.deliverOnce(ctx, client, event)
		if result.Success {
			return nil
		}
		// 4xx responses other than 408/429 will not improve with retries
		if result.StatusCode >= 400 && result.StatusCode < 500 &&
			result.StatusCode != http.StatusRequestTimeout && result.StatusCode != http.StatusTooManyRequests {
			return backoff.Permanent(fmt.Errorf("delivery rejected: %s", result.Error))
		}
		return fmt.Errorf("delivery failed: %s", result.Error)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(client.RetryMaxAttempts)),
		ctx,
	)

	if err := backoff.Retry(operation, policy); err != nil {
		logger.Error(err,
			zap.String("client_id", client.ID),
			zap.String("event_id", event.EventID),
			zap.String("event_type", event.EventType),
		)
	}
}

// deliverOnce performs a single signed HTTP POST to the client endpoint.
func (d *Dispatcher) deliverOnce(ctx context.Context, client Client, event Event) DeliveryResult {
	payload, signature, timestamp, err := GenerateSignedPayload(client.Secret, event)
	if err != nil {
		return DeliveryResult{Error: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, client.URL, bytes.NewReader(payload))
	if err != nil {
		return DeliveryResult{Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Signature", signature)
	req.Header.Set("X-Webhook-Timestamp", strconv.FormatInt(timestamp, 10))
	req.Header.Set("X-Webhook-Event-Id", event.EventID)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return DeliveryResult{Error: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return DeliveryResult{
			StatusCode: resp.StatusCode,
			Error:      fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	return DeliveryResult{Success: true, StatusCode: resp.StatusCode}
}

func isHTTPS(url string) bool {
	return len(url) > 8 && url[:8] == "https://"
}
