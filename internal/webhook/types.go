package webhook

import (
	"strings"
	"time"

	"github.com/pharmatrace/batchtrace/internal/domain"
)

// EventTypeWildcard is a special filter that matches all event types
const EventTypeWildcard = "*"

// Event represents a webhook event to be delivered to clients
type Event struct {
	// EventID is a unique identifier for this event (ULID for time-sortable uniqueness)
	EventID string `json:"event_id"`
	// EventType is the notification type (e.g., "batch.registered")
	EventType string `json:"event_type"`
	// Timestamp is when the event was generated
	Timestamp time.Time `json:"timestamp"`
	// Data contains the full ledger notification payload
	Data *domain.Notification `json:"data"`
}

// Client represents a registered webhook endpoint.
type Client struct {
	// ID is the client identifier, assigned at registration
	ID string `json:"id"`
	// URL is the HTTPS endpoint deliveries are POSTed to
	URL string `json:"url"`
	// Secret is the shared HMAC key used to sign payloads
	Secret string `json:"secret"`
	// EventFilters restricts delivery to matching event types; "*" matches all
	EventFilters []string `json:"event_filters"`
	// RetryMaxAttempts bounds redelivery attempts per event
	RetryMaxAttempts int `json:"retry_max_attempts"`
}

// Matches reports whether the client wants events of the given type.
func (c *Client) Matches(eventType string) bool {
	for _, filter := range c.EventFilters {
		if filter == EventTypeWildcard || strings.EqualFold(filter, eventType) {
			return true
		}
	}
	return false
}

// DeliveryResult represents the result of a webhook delivery attempt
type DeliveryResult struct {
	// Success indicates whether the delivery was successful
	Success bool
	// StatusCode is the HTTP status code returned by the webhook endpoint
	StatusCode int
	// Error contains error details if delivery failed
	Error string
}
