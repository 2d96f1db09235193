package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-integration/internal/application/dto"
	apperp "github.com/jhoicas/erp-integration/internal/application/erp"
	"github.com/jhoicas/erp-integration/internal/domain"
	"github.com/jhoicas/erp-integration/internal/domain/entity"
	"github.com/jhoicas/erp-integration/internal/infrastructure/erpfile"
	apphttp "github.com/jhoicas/erp-integration/internal/interfaces/http"
	"github.com/jhoicas/erp-integration/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// memCatalog catálogo en memoria para las pruebas de integración HTTP.
type memCatalog struct {
	products map[string]*entity.Product
	stock    []*entity.SourceItem
}

func (m *memCatalog) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	p, ok := m.products[sku]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memCatalog) Save(_ context.Context, p *entity.Product) error {
	cp := *p
	m.products[p.SKU] = &cp
	return nil
}

func (m *memCatalog) SaveStock(_ context.Context, items []*entity.SourceItem) error {
	m.stock = append(m.stock, items...)
	return nil
}

type erpTestEnv struct {
	app      *fiber.App
	catalog  *memCatalog
	console  *bytes.Buffer
	logs     *bytes.Buffer
	dir      string
	products string
	orders   string
}

func newERPTestEnv(t *testing.T) *erpTestEnv {
	t.Helper()
	dir := t.TempDir()
	env := &erpTestEnv{
		catalog:  &memCatalog{products: map[string]*entity.Product{}},
		console:  &bytes.Buffer{},
		logs:     &bytes.Buffer{},
		dir:      dir,
		products: filepath.Join(dir, "erp_products.json"),
		orders:   filepath.Join(dir, "erp_orders.json"),
	}

	reader, err := erpfile.NewReader("utf-8")
	require.NoError(t, err)
	log, err := logger.New(logger.Config{Env: "production", Level: "info", Out: env.logs})
	require.NoError(t, err)
	reg := prometheus.NewRegistry()
	processor := apperp.NewProcessor(apperp.NewExecutor(env.catalog), apperp.NewMetrics(reg))

	env.app = fiber.New()
	apphttp.Router(env.app, apphttp.RouterDeps{
		ImportUC:     apperp.NewImportUseCase(reader, processor),
		CancelUC:     apperp.NewOrderCancelUseCase(erpfile.NewOrderStore(env.orders)),
		Console:      logger.NewConsole(env.console, logger.Nop()),
		Log:          log,
		ProductsPath: env.products,
		JWTSecret:    testJWTSecret,
		Gatherer:     reg,
	})
	return env
}

func (e *erpTestEnv) post(t *testing.T, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

const importDoc = `[
	{"sku":"A1","action":"new","name":"Widget","price":9.99,"attribute_set_id":4,"type_id":"simple",
	 "status":1,"visibility":4,"sources":[{"source_code":"default","quantity":5}]},
	{"action":"new"},
	{"sku":"A1","action":"disable"}
]`

// ──────────────────────────────────────────────────────────────────────────────
// Importación
// ──────────────────────────────────────────────────────────────────────────────

func TestERPHandler_ImportPayload(t *testing.T) {
	env := newERPTestEnv(t)

	resp := env.post(t, "/api/erp/import", importDoc)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.ImportResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Created)
	assert.Equal(t, 1, body.Disabled)
	assert.False(t, body.NothingProcessed)
	assert.Equal(t, []string{"Record #2: Product data missing SKU, cannot process."}, body.Failures)
	assert.Equal(t, "Total updated: 0 | created: 1 | disabled: 1 | enabled: 0", body.Summary)
	require.Len(t, body.Records, 3)
	assert.Equal(t, "skipped", body.Records[1].Outcome)

	assert.Equal(t, entity.ProductStatusDisabled, env.catalog.products["A1"].Status)
	assert.Equal(t,
		"Created: A1\nDisabled: A1\nRecord #2: Product data missing SKU, cannot process.\n"+
			"Total updated: 0 | created: 1 | disabled: 1 | enabled: 0\n",
		env.console.String())
}

func TestERPHandler_ImportVacio(t *testing.T) {
	env := newERPTestEnv(t)

	resp := env.post(t, "/api/erp/import", `[]`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "No products found in file.")
}

func TestERPHandler_ImportCuerpoInvalido(t *testing.T) {
	env := newERPTestEnv(t)

	resp := env.post(t, "/api/erp/import", `{"sku":"A1"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestERPHandler_ImportFile(t *testing.T) {
	env := newERPTestEnv(t)
	require.NoError(t, os.WriteFile(env.products, []byte(importDoc), 0o644))

	resp := env.post(t, "/api/erp/import/file", "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, env.catalog.products, "A1")
}

func TestERPHandler_ImportFileInexistente(t *testing.T) {
	env := newERPTestEnv(t)

	resp := env.post(t, "/api/erp/import/file", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.True(t, strings.HasPrefix(env.console.String(), "Failed to read ERP file: "))
}

func TestERPHandler_RegistraOperador(t *testing.T) {
	env := newERPTestEnv(t)

	resp := env.post(t, "/api/erp/import", importDoc)
	resp.Body.Close()

	logs := env.logs.String()
	assert.Contains(t, logs, `"user_id":"`+testUserID+`"`)
	assert.Contains(t, logs, `"role":"admin"`)
	assert.Contains(t, logs, `"operation":"import"`)
}

func TestERPHandler_ImportSinToken(t *testing.T) {
	env := newERPTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/api/erp/import", strings.NewReader(importDoc))

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, env.catalog.products)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelación de pedidos
// ──────────────────────────────────────────────────────────────────────────────

func TestERPHandler_CancelOrder(t *testing.T) {
	env := newERPTestEnv(t)
	require.NoError(t, os.WriteFile(env.orders, []byte(`[{"increment_id":"100000001","status":"pending"}]`), 0o644))

	resp := env.post(t, "/api/erp/orders/100000001/cancel", "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.CancelOrderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Marked)
	assert.Equal(t, "Order #100000001 marked as canceled in ERP JSON file.", body.Message)

	data, err := os.ReadFile(env.orders)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status": "canceled"`)
}

func TestERPHandler_CancelOrderSinArchivo(t *testing.T) {
	env := newERPTestEnv(t)

	resp := env.post(t, "/api/erp/orders/7/cancel", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "ERP JSON file does not exist, nothing to update for order #7.\n", env.console.String())
}

// ──────────────────────────────────────────────────────────────────────────────
// Salud y métricas
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_HealthYMetrics(t *testing.T) {
	env := newERPTestEnv(t)
	imp := env.post(t, "/api/erp/import", importDoc)
	imp.Body.Close()

	health, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)

	metrics, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer metrics.Body.Close()
	body, _ := io.ReadAll(metrics.Body)
	assert.Contains(t, string(body), `erp_integration_records_total{action="new",outcome="created"} 1`)
	assert.Contains(t, string(body), "erp_integration_batches_total 1")
}
