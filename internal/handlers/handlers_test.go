package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"estatefees/internal/catalog"
	"estatefees/internal/handlers"
	"estatefees/internal/routes"
	"estatefees/internal/services/calculation"
	"estatefees/internal/services/feeregistry"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-process backing store keyed by asset.
type memoryStore struct {
	mu     sync.Mutex
	nextID int
	rows   map[string]feeregistry.FeePayload
	order  []string
	lists  int
	fail   error
}

type assetStore struct {
	*memoryStore
	assetID string
}

func (s *memoryStore) forAsset(assetID string) feeregistry.Store {
	return assetStore{memoryStore: s, assetID: assetID}
}

func (s assetStore) CreateFee(ctx context.Context, payload feeregistry.FeePayload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return "", s.fail
	}
	if s.rows == nil {
		s.rows = map[string]feeregistry.FeePayload{}
	}
	s.nextID++
	id := strconv.Itoa(s.nextID)
	payload.AssetID = s.assetID
	s.rows[id] = payload
	s.order = append(s.order, id)
	return id, nil
}

func (s assetStore) UpdateFee(ctx context.Context, id string, payload feeregistry.FeePayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	payload.AssetID = s.assetID
	s.rows[id] = payload
	return nil
}

func (s assetStore) DeleteFee(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	delete(s.rows, id)
	return nil
}

func (s *memoryStore) ListFees(ctx context.Context, assetID string) ([]feeregistry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	var out []feeregistry.Entry
	for _, id := range s.order {
		row, ok := s.rows[id]
		if !ok || row.AssetID != assetID {
			continue
		}
		out = append(out, feeregistry.Entry{
			ID:           id,
			StoreID:      id,
			Name:         row.Name,
			Value:        row.Value,
			IsPercentage: row.IsPercentage,
			Active:       row.Active,
			Type:         row.Type,
		})
	}
	return out, nil
}

func (s *memoryStore) listCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists
}

func (s *memoryStore) setFail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

func newApp(t *testing.T, store *memoryStore, checks map[string]handlers.HealthCheck, stats map[string]handlers.StatsFunc) *fiber.App {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	app := fiber.New()
	routes.SetupRoutes(app, routes.Handlers{
		Health:    handlers.NewHealthHandler(checks, stats),
		Catalog:   handlers.NewCatalogHandler(calculation.NewService(cat, nil, 0)),
		AssetFees: handlers.NewAssetFeeHandler(feeregistry.NewManager(store.forAsset, store)),
	}, nil)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func data(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	d, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %v", body)
	return d
}

func TestCategories(t *testing.T) {
	app := newApp(t, &memoryStore{}, nil, nil)

	status, body := do(t, app, http.MethodGet, "/api/categories", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 5)

	status, body = do(t, app, http.MethodGet, "/api/categories/data-centers-edge", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 25000000.0, data(t, body)["base_property_value"])

	status, _ = do(t, app, http.MethodGet, "/api/categories/castles", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCalculate(t *testing.T) {
	app := newApp(t, &memoryStore{}, nil, nil)

	t.Run("default base value", func(t *testing.T) {
		status, body := do(t, app, http.MethodPost, "/api/categories/data-centers-edge/calculate", "")
		require.Equal(t, http.StatusOK, status)
		result := data(t, body)["result"].(map[string]interface{})
		assert.Equal(t, 26450000.0, result["gross_total"])
		assert.Equal(t, "$1,450,000", result["formatted_total_fees"])
	})

	t.Run("formatted text", func(t *testing.T) {
		status, body := do(t, app, http.MethodPost, "/api/categories/data-centers-edge/calculate", `{"base_value":"1,000,000"}`)
		require.Equal(t, http.StatusOK, status)
		result := data(t, body)["result"].(map[string]interface{})
		assert.Equal(t, 58000.0, result["total_fees_amount"])
		assert.Equal(t, 1058000.0, result["gross_total"])
	})

	t.Run("json number above average", func(t *testing.T) {
		status, body := do(t, app, http.MethodPost, "/api/categories/data-centers-edge/calculate", `{"base_value":30000000}`)
		require.Equal(t, http.StatusOK, status)
		comparison := data(t, body)["comparison"].(map[string]interface{})
		assert.Equal(t, true, comparison["is_above_average"])
		assert.Equal(t, 5000000.0, comparison["difference"])
		assert.Equal(t, 20.0, comparison["percentage_difference"])
	})

	t.Run("invalid base value", func(t *testing.T) {
		status, body := do(t, app, http.MethodPost, "/api/categories/data-centers-edge/calculate", `{"base_value":"abc"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Equal(t, "base_value", body["field"])
		assert.Equal(t, "invalid_base_value", body["code"])
	})

	t.Run("negative json number", func(t *testing.T) {
		status, body := do(t, app, http.MethodPost, "/api/categories/data-centers-edge/calculate", `{"base_value":-30000000}`)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Equal(t, "invalid_base_value", body["code"])
		assert.Nil(t, body["data"])
	})

	t.Run("unknown category", func(t *testing.T) {
		status, _ := do(t, app, http.MethodPost, "/api/categories/castles/calculate", "")
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestAssetFees_Validation(t *testing.T) {
	app := newApp(t, &memoryStore{}, nil, nil)

	tests := []struct {
		name  string
		body  string
		field string
		code  string
	}{
		{"empty name", `{"name":"  ","value":10,"type":"legal"}`, "name", "empty_name"},
		{"negative value", `{"name":"Notary","value":-1,"type":"legal"}`, "value", "negative_value"},
		{"percentage above 100", `{"name":"Platform","value":150,"is_percentage":true,"type":"platform"}`, "value", "percentage_exceeds_100"},
		{"unknown type", `{"name":"Moat","value":10,"type":"castle"}`, "type", "invalid_fee_type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, app, http.MethodPost, "/api/assets/asset-1/fees", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, status)
			assert.Equal(t, tt.field, body["field"])
			assert.Equal(t, tt.code, body["code"])
		})
	}

	status, _ := do(t, app, http.MethodPost, "/api/assets/asset-1/fees", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAssetFees_Lifecycle(t *testing.T) {
	app := newApp(t, &memoryStore{}, nil, nil)
	const base = "/api/assets/asset-1/fees"

	status, body := do(t, app, http.MethodPost, base, `{"name":"Land registry","value":1.5,"is_percentage":true,"type":"registration"}`)
	require.Equal(t, http.StatusCreated, status)
	created := data(t, body)
	assert.Equal(t, "1", created["id"])
	assert.Equal(t, true, created["active"])

	status, body = do(t, app, http.MethodPut, base+"/1", `{"type":"legal","value":2}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "legal", data(t, body)["type"])
	assert.Equal(t, 2.0, data(t, body)["value"])

	status, body = do(t, app, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, status)
	fees := data(t, body)["fees"].(map[string]interface{})
	assert.Len(t, fees["legal"], 1)
	assert.Empty(t, fees["registration"])

	status, _ = do(t, app, http.MethodPatch, base+"/1/status", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = do(t, app, http.MethodPatch, base+"/1/status", `{"active":false}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, data(t, body)["active"])

	status, _ = do(t, app, http.MethodDelete, base+"/1", "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, app, http.MethodDelete, base+"/1", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, app, http.MethodPut, base+"/404", `{"name":"Ghost"}`)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAssetFees_StoreFailure(t *testing.T) {
	store := &memoryStore{}
	app := newApp(t, store, nil, nil)
	const base = "/api/assets/asset-2/fees"

	status, _ := do(t, app, http.MethodPost, base, `{"name":"Broker","value":50000,"type":"brokerage"}`)
	require.Equal(t, http.StatusCreated, status)

	store.setFail(errors.New("connection reset"))

	status, _ = do(t, app, http.MethodPost, base, `{"name":"Notary","value":900,"type":"legal"}`)
	assert.Equal(t, http.StatusBadGateway, status)

	status, _ = do(t, app, http.MethodDelete, base+"/1", "")
	assert.Equal(t, http.StatusBadGateway, status)

	// each failure drops the cached registry, so the listing is reloaded
	// from confirmed state
	listsBefore := store.listCalls()
	store.setFail(nil)
	status, body := do(t, app, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, listsBefore+1, store.listCalls())
	fees := data(t, body)["fees"].(map[string]interface{})
	require.Len(t, fees["brokerage"], 1)
	assert.Equal(t, "1", fees["brokerage"].([]interface{})[0].(map[string]interface{})["id"])
	assert.Empty(t, fees["legal"])

	status, _ = do(t, app, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, listsBefore+1, store.listCalls())
}

func TestHealth(t *testing.T) {
	healthy := newApp(t, &memoryStore{}, map[string]handlers.HealthCheck{
		"database": func(context.Context) error { return nil },
	}, map[string]handlers.StatsFunc{
		"redis_pool": func() interface{} { return map[string]int{"total_conns": 3} },
	})
	status, body := do(t, healthy, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	pool := body["stats"].(map[string]interface{})["redis_pool"].(map[string]interface{})
	assert.Equal(t, 3.0, pool["total_conns"])

	degraded := newApp(t, &memoryStore{}, map[string]handlers.HealthCheck{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("dial tcp: refused") },
	}, nil)
	status, body = do(t, degraded, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "unavailable", body["services"].(map[string]interface{})["redis"])
	assert.NotContains(t, body, "stats")
}
