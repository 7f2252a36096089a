package rest_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmatrace/batchtrace/internal/api/middleware"
	"github.com/pharmatrace/batchtrace/internal/api/rest"
	"github.com/pharmatrace/batchtrace/internal/domain"
	"github.com/pharmatrace/batchtrace/internal/ledger"
	"github.com/pharmatrace/batchtrace/internal/logger"
	"github.com/pharmatrace/batchtrace/internal/webhook"
)

const (
	testAPIKey    = "test-api-key"
	adminIdentity = "0xadmin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

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

// testAPI bundles the router and its backing ledger
type testAPI struct {
	router     *gin.Engine
	ledger     *ledger.Ledger
	dispatcher *webhook.Dispatcher
}

func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()

	l := ledger.New(ledger.Config{Admin: domain.Identity(adminIdentity)})
	dispatcher := webhook.NewDispatcher(webhook.DispatcherConfig{PoolSize: 1, Debug: true})
	t.Cleanup(dispatcher.Close)

	router := gin.New()
	rest.SetupRoutes(router, rest.NewHandler(true, l, dispatcher), middleware.AuthConfig{
		APIKeys: []string{testAPIKey},
	})

	return &testAPI{router: router, ledger: l, dispatcher: dispatcher}
}

// perform issues a request against the router and returns the recorder
func (a *testAPI) perform(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// registerBatch creates a batch through the API and returns its id
func (a *testAPI) registerBatch(t *testing.T, code, creator string) domain.BatchID {
	t.Helper()

	w := a.perform(t, http.MethodPost, "/api/v1/batches", gin.H{
		"batch_code":        code,
		"name":              "Amoxicillin 500mg",
		"manufacturer_name": "Helvetia Pharma AG",
		"expiry":            time.Now().Add(365 * 24 * time.Hour).UTC().Format(time.RFC3339),
		"creator":           creator,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp rest.RegisterBatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

// errorCode extracts the error code from a standardized error response
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error.Code
}

func apiKeyHeader() map[string]string {
	return map[string]string{"Authorization": "apikey " + testAPIKey}
}

func TestHealthCheck(t *testing.T) {
	api := setupTestAPI(t)

	w := api.perform(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "batchtrace-api")
}

func TestRegisterBatchEndpoint(t *testing.T) {
	api := setupTestAPI(t)

	id := api.registerBatch(t, "LOT-001", "0xmanufacturer")
	assert.Equal(t, domain.BatchID(1), id)

	t.Run("duplicate code conflicts", func(t *testing.T) {
		w := api.perform(t, http.MethodPost, "/api/v1/batches", gin.H{
			"batch_code":        "LOT-001",
			"name":              "Amoxicillin 500mg",
			"manufacturer_name": "Helvetia Pharma AG",
			"expiry":            time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
			"creator":           "0xmanufacturer",
		}, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "conflict", errorCode(t, w))
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		w := api.perform(t, http.MethodPost, "/api/v1/batches", gin.H{
			"batch_code": "LOT-002",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "validation_failed", errorCode(t, w))
	})

	t.Run("past expiry rejected by the ledger", func(t *testing.T) {
		w := api.perform(t, http.MethodPost, "/api/v1/batches", gin.H{
			"batch_code":        "LOT-003",
			"name":              "Amoxicillin 500mg",
			"manufacturer_name": "Helvetia Pharma AG",
			"expiry":            time.Now().Add(-24 * time.Hour).UTC().Format(time.RFC3339),
			"creator":           "0xmanufacturer",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "validation_failed", errorCode(t, w))
	})
}

func TestGetBatchEndpoint(t *testing.T) {
	api := setupTestAPI(t)
	id := api.registerBatch(t, "LOT-001", "0xmanufacturer")

	t.Run("by id", func(t *testing.T) {
		w := api.perform(t, http.MethodGet, fmt.Sprintf("/api/v1/batches/%d", id), nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var batch domain.Batch
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &batch))
		assert.Equal(t, "LOT-001", batch.BatchCode)
		assert.True(t, batch.IsActive)
	})

	t.Run("by code", func(t *testing.T) {
		w := api.perform(t, http.MethodGet, "/api/v1/batch-codes/LOT-001", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var batch domain.Batch
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &batch))
		assert.Equal(t, id, batch.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := api.perform(t, http.MethodGet, "/api/v1/batches/999", nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "not_found", errorCode(t, w))
	})

	t.Run("unknown code", func(t *testing.T) {
		w := api.perform(t, http.MethodGet, "/api/v1/batch-codes/LOT-999", nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		w := api.perform(t, http.MethodGet, "/api/v1/batches/banana", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "bad_request", errorCode(t, w))
	})
}

func TestTransferEndpoint(t *testing.T) {
	api := setupTestAPI(t)
	id := api.registerBatch(t, "LOT-001", "0xmanufacturer")

	t.Run("success", func(t *testing.T) {
		w := api.perform(t, http.MethodPost, fmt.Sprintf("/api/v1/batches/%d/transfers", id), gin.H{
			"requester":  "0xmanufacturer",
			"new_owner":  "0xdistributor",
			"event_type": "distribute",
		}, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var event domain.CustodyEvent
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &event))
		assert.Equal(t, domain.EventTypeDistribute, event.EventType)
		assert.Equal(t, domain.Identity("0xdistributor"), event.To)
	})

	t.Run("requester no longer owner", func(t *testing.T) {
		w := api.perform(t, http.MethodPost, fmt.Sprintf("/api/v1/batches/%d/transfers", id), gin.H{
			"requester":  "0xmanufacturer",
			"new_owner":  "0xpharmacy",
			"event_type": "transfer",
		}, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "forbidden", errorCode(t, w))
	})

	t.Run("missing body fields", func(t *testing.T) {
		w := api.perform(t, http.MethodPost, fmt.Sprintf("/api/v1/batches/%d/transfers", id), gin.H{
			"requester": "0xdistributor",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "validation_failed", errorCode(t, w))
	})

	t.Run("unknown batch", func(t *testing.T) {
		w := api.perform(t, http.MethodPost, "/api/v1/batches/999/transfers", gin.H{
			"requester":  "0xdistributor",
			"new_owner":  "0xpharmacy",
			"event_type": "transfer",
		}, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeactivateEndpoint(t *testing.T) {
	api := setupTestAPI(t)
	id := api.registerBatch(t, "LOT-001", "0xmanufacturer")

	body := gin.H{"requester": "0xmanufacturer"}
	path := fmt.Sprintf("/api/v1/batches/%d/deactivate", id)

	t.Run("requires authentication", func(t *testing.T) {
		w := api.perform(t, http.MethodPost, path, body, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-owner is refused", func(t *testing.T) {
		w := api.perform(t, http.MethodPost, path, gin.H{"requester": "0xstranger"}, apiKeyHeader())
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner deactivates", func(t *testing.T) {
		w := api.perform(t, http.MethodPost, path, body, apiKeyHeader())
		assert.Equal(t, http.StatusNoContent, w.Code)

		// Transfers on the retired batch are refused
		w = api.perform(t, http.MethodPost, fmt.Sprintf("/api/v1/batches/%d/transfers", id), gin.H{
			"requester":  "0xmanufacturer",
			"new_owner":  "0xdistributor",
			"event_type": "transfer",
		}, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "invalid_state", errorCode(t, w))
	})
}

func TestHistoryEndpoint(t *testing.T) {
	api := setupTestAPI(t)
	id := api.registerBatch(t, "LOT-001", "0xmanufacturer")

	// Walk the batch through the chain to build history
	transfers := []gin.H{
		{"requester": "0xmanufacturer", "new_owner": "0xdistributor", "event_type": "distribute"},
		{"requester": "0xdistributor", "new_owner": "0xpharmacy", "event_type": "transfer"},
		{"requester": "0xpharmacy", "new_owner": "0xpatient", "event_type": "deliver"},
	}
	for _, body := range transfers {
		w := api.perform(t, http.MethodPost, fmt.Sprintf("/api/v1/batches/%d/transfers", id), body, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	t.Run("chronological by default", func(t *testing.T) {
		w := api.perform(t, http.MethodGet, fmt.Sprintf("/api/v1/batches/%d/history", id), nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp rest.HistoryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 4, resp.Total)
		require.Len(t, resp.Events, 4)
		assert.Equal(t, domain.EventTypeManufacture, resp.Events[0].EventType)
		assert.Equal(t, domain.EventTypeDeliver, resp.Events[3].EventType)
	})

	t.Run("descending order", func(t *testing.T) {
		w := api.perform(t, http.MethodGet, fmt.Sprintf("/api/v1/batches/%d/history?order=desc", id), nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp rest.HistoryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Events, 4)
		assert.Equal(t, domain.EventTypeDeliver, resp.Events[0].EventType)
		assert.Equal(t, domain.EventTypeManufacture, resp.Events[3].EventType)
	})

	t.Run("pagination", func(t *testing.T) {
		w := api.perform(t, http.MethodGet, fmt.Sprintf("/api/v1/batches/%d/history?limit=2&offset=1", id), nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp rest.HistoryResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 4, resp.Total)
		require.Len(t, resp.Events, 2)
		assert.Equal(t, domain.EventTypeDistribute, resp.Events[0].EventType)
		assert.Equal(t, domain.EventTypeTransfer, resp.Events[1].EventType)
	})

	t.Run("unknown batch", func(t *testing.T) {
		w := api.perform(t, http.MethodGet, "/api/v1/batches/999/history", nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListBatchesEndpoint(t *testing.T) {
	api := setupTestAPI(t)
	for i := 1; i <= 5; i++ {
		api.registerBatch(t, fmt.Sprintf("LOT-%03d", i), "0xmanufacturer")
	}

	w := api.perform(t, http.MethodGet, "/api/v1/batches?limit=2&offset=1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp rest.ListBatchesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.Total)
	require.Len(t, resp.Batches, 2)
	// Newest first with id as the tie-break
	assert.Equal(t, domain.BatchID(4), resp.Batches[0].ID)
	assert.Equal(t, domain.BatchID(3), resp.Batches[1].ID)
}

func TestListOwnedBatchesEndpoint(t *testing.T) {
	api := setupTestAPI(t)
	id1 := api.registerBatch(t, "LOT-001", "0xmanufacturer")
	api.registerBatch(t, "LOT-002", "0xotherparty")
	id3 := api.registerBatch(t, "LOT-003", "0xmanufacturer")

	w := api.perform(t, http.MethodGet, "/api/v1/owners/0xManufacturer/batches", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp rest.OwnedBatchesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []domain.BatchID{id1, id3}, resp.BatchIDs)
}

func TestRoleEndpoints(t *testing.T) {
	api := setupTestAPI(t)

	t.Run("default role is customer", func(t *testing.T) {
		w := api.perform(t, http.MethodGet, "/api/v1/roles/0xsomeone", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp rest.RoleResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, string(domain.RoleCustomer), resp.Role)
	})

	t.Run("assignment requires authentication", func(t *testing.T) {
		w := api.perform(t, http.MethodPost, "/api/v1/roles", gin.H{
			"requester": adminIdentity,
			"identity":  "0xdistributor",
			"role":      "distributor",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("admin assigns role", func(t *testing.T) {
		w := api.perform(t, http.MethodPost, "/api/v1/roles", gin.H{
			"requester": adminIdentity,
			"identity":  "0xdistributor",
			"role":      "distributor",
		}, apiKeyHeader())
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = api.perform(t, http.MethodGet, "/api/v1/roles/0xdistributor", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp rest.RoleResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, string(domain.RoleDistributor), resp.Role)
	})

	t.Run("non-admin requester is refused", func(t *testing.T) {
		w := api.perform(t, http.MethodPost, "/api/v1/roles", gin.H{
			"requester": "0xdistributor",
			"identity":  "0xpharmacy",
			"role":      "pharmacist",
		}, apiKeyHeader())
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		w := api.perform(t, http.MethodPost, "/api/v1/roles", gin.H{
			"requester": adminIdentity,
			"identity":  "0xpharmacy",
			"role":      "auditor",
		}, apiKeyHeader())
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDashboardEndpoint(t *testing.T) {
	api := setupTestAPI(t)
	api.registerBatch(t, "LOT-001", "0xmanufacturer")
	id2 := api.registerBatch(t, "LOT-002", "0xmanufacturer")

	w := api.perform(t, http.MethodPost, fmt.Sprintf("/api/v1/batches/%d/transfers", id2), gin.H{
		"requester":  "0xmanufacturer",
		"new_owner":  "0xdistributor",
		"event_type": "distribute",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.perform(t, http.MethodGet, "/api/v1/dashboard", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary ledger.DashboardSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, int64(2), summary.Total)
	assert.Equal(t, int64(1), summary.ActiveTransfersInProgress)
	assert.Equal(t, int64(2), summary.NonExpiredCount)
}

func TestCreateWebhookClientEndpoint(t *testing.T) {
	api := setupTestAPI(t)

	body := gin.H{
		"webhook_url":   "https://example.com/hooks",
		"secret":        "s3cret",
		"event_filters": []string{"batch.registered"},
	}

	t.Run("requires API key", func(t *testing.T) {
		w := api.perform(t, http.MethodPost, "/api/v1/webhooks/clients", body, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("creates client", func(t *testing.T) {
		w := api.perform(t, http.MethodPost, "/api/v1/webhooks/clients", body, apiKeyHeader())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp rest.CreateWebhookClientResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.ID)
		assert.Len(t, api.dispatcher.Clients(), 1)
	})

	t.Run("invalid url rejected", func(t *testing.T) {
		w := api.perform(t, http.MethodPost, "/api/v1/webhooks/clients", gin.H{
			"webhook_url": "ftp://example.com",
			"secret":      "s3cret",
		}, apiKeyHeader())
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("disabled when no dispatcher is wired", func(t *testing.T) {
		router := gin.New()
		l := ledger.New(ledger.Config{Admin: domain.Identity(adminIdentity)})
		rest.SetupRoutes(router, rest.NewHandler(true, l, nil), middleware.AuthConfig{APIKeys: []string{testAPIKey}})

		data, err := json.Marshal(body)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/clients", bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "apikey "+testAPIKey)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
