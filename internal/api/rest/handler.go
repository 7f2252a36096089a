package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pharmatrace/batchtrace/internal/domain"
	"github.com/pharmatrace/batchtrace/internal/ledger"
	"github.com/pharmatrace/batchtrace/internal/webhook"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// RegisterBatch registers a new batch with the creator as initial custodian
	// POST /api/v1/batches
	RegisterBatch(c *gin.Context)

	// GetBatch retrieves a single batch by its ledger id
	// GET /api/v1/batches/:id
	GetBatch(c *gin.Context)

	// GetBatchByCode retrieves a single batch by its batch code
	// GET /api/v1/batch-codes/:code
	GetBatchByCode(c *gin.Context)

	// GetHistory retrieves the custody history of a batch
	// GET /api/v1/batches/:id/history?limit=<limit>&offset=<offset>&order=<order>
	GetHistory(c *gin.Context)

	// ListBatches retrieves batches newest-first with pagination
	// GET /api/v1/batches?limit=<limit>&offset=<offset>
	ListBatches(c *gin.Context)

	// Transfer moves custody of a batch to a new owner
	// POST /api/v1/batches/:id/transfers
	Transfer(c *gin.Context)

	// Deactivate permanently retires a batch (requires authentication)
	// POST /api/v1/batches/:id/deactivate
	Deactivate(c *gin.Context)

	// ListOwnedBatches retrieves the ids of batches held by an identity
	// GET /api/v1/owners/:identity/batches
	ListOwnedBatches(c *gin.Context)

	// AssignRole sets or overwrites an identity's role (requires authentication)
	// POST /api/v1/roles
	AssignRole(c *gin.Context)

	// GetRole retrieves an identity's role
	// GET /api/v1/roles/:identity
	GetRole(c *gin.Context)

	// GetDashboard retrieves registry-wide aggregate counters
	// GET /api/v1/dashboard
	GetDashboard(c *gin.Context)

	// CreateWebhookClient creates a new webhook client (requires API key authentication)
	// POST /api/v1/webhooks/clients
	CreateWebhookClient(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	debug      bool
	ledger     *ledger.Ledger
	dispatcher *webhook.Dispatcher
}

// NewHandler creates a new REST API handler backed by the ledger.
// The dispatcher may be nil when webhooks are disabled.
func NewHandler(debug bool, l *ledger.Ledger, dispatcher *webhook.Dispatcher) Handler {
	return &handler{
		debug:      debug,
		ledger:     l,
		dispatcher: dispatcher,
	}
}

// batchIDParam parses the :id path parameter
func batchIDParam(c *gin.Context) (domain.BatchID, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, "Invalid batch id", raw)
		return 0, false
	}
	return domain.BatchID(id), true
}

// RegisterBatch registers a new batch with the creator as initial custodian
func (h *handler) RegisterBatch(c *gin.Context) {
	var req RegisterBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	id, err := h.ledger.Register(ledger.RegisterParams{
		BatchCode:        req.BatchCode,
		Name:             req.Name,
		ManufacturerName: req.ManufacturerName,
		Expiry:           req.Expiry,
		MetadataRef:      req.MetadataRef,
		Creator:          domain.Identity(req.Creator),
	})
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, RegisterBatchResponse{ID: id})
}

// GetBatch retrieves a single batch by its ledger id
func (h *handler) GetBatch(c *gin.Context) {
	id, ok := batchIDParam(c)
	if !ok {
		return
	}

	batch, err := h.ledger.GetByID(id)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, batch)
}

// GetBatchByCode retrieves a single batch by its batch code
func (h *handler) GetBatchByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		respondBadRequest(c, "Batch code is required")
		return
	}

	batch, err := h.ledger.GetByCode(code)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, batch)
}

// GetHistory retrieves the custody history of a batch
func (h *handler) GetHistory(c *gin.Context) {
	id, ok := batchIDParam(c)
	if !ok {
		return
	}

	params, err := ParseHistoryQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	events, err := h.ledger.GetHistory(id)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	total := len(events)

	// History is stored chronologically; reverse for descending order
	if params.Order.Desc() {
		for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
			events[i], events[j] = events[j], events[i]
		}
	}

	// Apply pagination
	if params.Offset >= len(events) {
		events = []domain.CustodyEvent{}
	} else {
		events = events[params.Offset:]
		if params.Limit < len(events) {
			events = events[:params.Limit]
		}
	}

	c.JSON(http.StatusOK, HistoryResponse{
		BatchID: id,
		Events:  events,
		Total:   total,
	})
}

// ListBatches retrieves batches newest-first with pagination
func (h *handler) ListBatches(c *gin.Context) {
	params, err := ParseListBatchesQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	batches := h.ledger.ListRecent(params.Limit, params.Offset)

	c.JSON(http.StatusOK, ListBatchesResponse{
		Batches: batches,
		Total:   h.ledger.Count(),
	})
}

// Transfer moves custody of a batch to a new owner
func (h *handler) Transfer(c *gin.Context) {
	id, ok := batchIDParam(c)
	if !ok {
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	event, err := h.ledger.Transfer(
		id,
		domain.Identity(req.Requester),
		domain.Identity(req.NewOwner),
		domain.ParseEventType(req.EventType),
		req.ExternalRef,
	)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Deactivate permanently retires a batch
func (h *handler) Deactivate(c *gin.Context) {
	id, ok := batchIDParam(c)
	if !ok {
		return
	}

	var req DeactivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := h.ledger.Deactivate(id, domain.Identity(req.Requester)); err != nil {
		respondLedgerError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListOwnedBatches retrieves the ids of batches held by an identity
func (h *handler) ListOwnedBatches(c *gin.Context) {
	identity := c.Param("identity")
	if identity == "" {
		respondBadRequest(c, "Identity is required")
		return
	}

	ids := h.ledger.ListByOwner(domain.Identity(identity))

	c.JSON(http.StatusOK, OwnedBatchesResponse{
		Owner:    identity,
		BatchIDs: ids,
	})
}

// AssignRole sets or overwrites an identity's role
func (h *handler) AssignRole(c *gin.Context) {
	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	err := h.ledger.AssignRole(
		domain.Identity(req.Requester),
		domain.Identity(req.Identity),
		domain.Role(req.Role),
	)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, RoleResponse{
		Identity: req.Identity,
		Role:     req.Role,
	})
}

// GetRole retrieves an identity's role
func (h *handler) GetRole(c *gin.Context) {
	identity := c.Param("identity")
	if identity == "" {
		respondBadRequest(c, "Identity is required")
		return
	}

	role := h.ledger.GetRole(domain.Identity(identity))

	c.JSON(http.StatusOK, RoleResponse{
		Identity: identity,
		Role:     string(role),
	})
}

// GetDashboard retrieves registry-wide aggregate counters
func (h *handler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledger.DashboardSummary())
}

// CreateWebhookClient creates a new webhook client
func (h *handler) CreateWebhookClient(c *gin.Context) {
	if h.dispatcher == nil {
		respondWithError(c, http.StatusServiceUnavailable, errCodeInvalidState, "Webhooks are disabled")
		return
	}

	var req CreateWebhookClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(h.debug); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	client := webhook.Client{
		URL:          req.WebhookURL,
		Secret:       req.Secret,
		EventFilters: req.EventFilters,
	}
	if req.RetryMaxAttempts != nil {
		client.RetryMaxAttempts = *req.RetryMaxAttempts
	}

	registered, err := h.dispatcher.RegisterClient(client)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newCreateWebhookClientResponse(registered))
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "batchtrace-api",
	})
}
