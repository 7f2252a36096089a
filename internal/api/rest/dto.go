package rest

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pharmatrace/batchtrace/internal/domain"
	"github.com/pharmatrace/batchtrace/internal/webhook"
)

// RegisterBatchRequest is the body of POST /api/v1/batches
type RegisterBatchRequest struct {
	BatchCode        string    `json:"batch_code"`
	Name             string    `json:"name"`
	ManufacturerName string    `json:"manufacturer_name"`
	Expiry           time.Time `json:"expiry"`
	MetadataRef      string    `json:"metadata_ref"`
	Creator          string    `json:"creator"`
}

// Validate checks the request body for structural problems. Business rules
// (duplicate code, expiry in the past) are enforced by the ledger.
func (r *RegisterBatchRequest) Validate() error {
	if strings.TrimSpace(r.BatchCode) == "" {
		return errors.New("batch_code is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(r.ManufacturerName) == "" {
		return errors.New("manufacturer_name is required")
	}
	if r.Expiry.IsZero() {
		return errors.New("expiry is required")
	}
	if strings.TrimSpace(r.Creator) == "" {
		return errors.New("creator is required")
	}
	return nil
}

// RegisterBatchResponse is the body returned by POST /api/v1/batches
type RegisterBatchResponse struct {
	ID domain.BatchID `json:"id"`
}

// TransferRequest is the body of POST /api/v1/batches/:id/transfers
type TransferRequest struct {
	Requester   string  `json:"requester"`
	NewOwner    string  `json:"new_owner"`
	EventType   string  `json:"event_type"`
	ExternalRef *string `json:"external_ref"`
}

// Validate checks the request body for structural problems
func (r *TransferRequest) Validate() error {
	if strings.TrimSpace(r.Requester) == "" {
		return errors.New("requester is required")
	}
	if strings.TrimSpace(r.NewOwner) == "" {
		return errors.New("new_owner is required")
	}
	if strings.TrimSpace(r.EventType) == "" {
		return errors.New("event_type is required")
	}
	return nil
}

// DeactivateRequest is the body of POST /api/v1/batches/:id/deactivate
type DeactivateRequest struct {
	Requester string `json:"requester"`
}

// Validate checks the request body for structural problems
func (r *DeactivateRequest) Validate() error {
	if strings.TrimSpace(r.Requester) == "" {
		return errors.New("requester is required")
	}
	return nil
}

// AssignRoleRequest is the body of POST /api/v1/roles
type AssignRoleRequest struct {
	Requester string `json:"requester"`
	Identity  string `json:"identity"`
	Role      string `json:"role"`
}

// Validate checks the request body for structural problems
func (r *AssignRoleRequest) Validate() error {
	if strings.TrimSpace(r.Requester) == "" {
		return errors.New("requester is required")
	}
	if strings.TrimSpace(r.Identity) == "" {
		return errors.New("identity is required")
	}
	if strings.TrimSpace(r.Role) == "" {
		return errors.New("role is required")
	}
	return nil
}

// RoleResponse is the body returned by GET /api/v1/roles/:identity
type RoleResponse struct {
	Identity string `json:"identity"`
	Role     string `json:"role"`
}

// HistoryResponse is the body returned by GET /api/v1/batches/:id/history
type HistoryResponse struct {
	BatchID domain.BatchID        `json:"batch_id"`
	Events  []domain.CustodyEvent `json:"events"`
	Total   int                   `json:"total"`
}

// ListBatchesResponse is the body returned by GET /api/v1/batches
type ListBatchesResponse struct {
	Batches []domain.Batch `json:"batches"`
	Total   int64          `json:"total"`
}

// OwnedBatchesResponse is the body returned by GET /api/v1/owners/:identity/batches
type OwnedBatchesResponse struct {
	Owner    string           `json:"owner"`
	BatchIDs []domain.BatchID `json:"batch_ids"`
}

// CreateWebhookClientRequest is the body of POST /api/v1/webhooks/clients
type CreateWebhookClientRequest struct {
	WebhookURL       string   `json:"webhook_url"`
	Secret           string   `json:"secret"`
	EventFilters     []string `json:"event_filters"`
	RetryMaxAttempts *int     `json:"retry_max_attempts"`
}

// Validate checks the request body for structural problems. In debug mode
// plain-HTTP endpoints are allowed for local testing.
func (r *CreateWebhookClientRequest) Validate(debug bool) error {
	if strings.TrimSpace(r.WebhookURL) == "" {
		return errors.New("webhook_url is required")
	}

	u, err := url.Parse(r.WebhookURL)
	if err != nil {
		return fmt.Errorf("webhook_url is invalid: %w", err)
	}
	if u.Scheme != "https" && !(debug && u.Scheme == "http") {
		return errors.New("webhook_url must use https")
	}
	if u.Host == "" {
		return errors.New("webhook_url must have a host")
	}

	if strings.TrimSpace(r.Secret) == "" {
		return errors.New("secret is required")
	}

	if r.RetryMaxAttempts != nil && *r.RetryMaxAttempts <= 0 {
		return errors.New("retry_max_attempts must be positive")
	}

	return nil
}

// CreateWebhookClientResponse is the body returned by POST /api/v1/webhooks/clients
type CreateWebhookClientResponse struct {
	ID               string   `json:"id"`
	WebhookURL       string   `json:"webhook_url"`
	EventFilters     []string `json:"event_filters"`
	RetryMaxAttempts int      `json:"retry_max_attempts"`
}

func newCreateWebhookClientResponse(client webhook.Client) CreateWebhookClientResponse {
	return CreateWebhookClientResponse{
		ID:               client.ID,
		WebhookURL:       client.URL,
		EventFilters:     client.EventFilters,
		RetryMaxAttempts: client.RetryMaxAttempts,
	}
}
