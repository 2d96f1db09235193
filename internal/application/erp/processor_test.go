package erp_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperp "github.com/jhoicas/erp-integration/internal/application/erp"
	"github.com/jhoicas/erp-integration/internal/domain"
	"github.com/jhoicas/erp-integration/internal/domain/entity"
	domainerp "github.com/jhoicas/erp-integration/internal/domain/erp"
)

func newProcessor(catalog *fakeCatalog, metrics *apperp.Metrics) *apperp.Processor {
	return apperp.NewProcessor(apperp.NewExecutor(catalog), metrics)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lote
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessBatch_LoteVacio(t *testing.T) {
	_, err := newProcessor(newFakeCatalog(), nil).ProcessBatch(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrEmptyBatch)
}

func TestProcessBatch_CreaUnProducto(t *testing.T) {
	catalog := newFakeCatalog()
	recs := records(t, `[{"sku":"A1","action":"new","name":"Widget","price":9.99,
		"attribute_set_id":4,"type_id":"simple","status":1,"visibility":4,
		"sources":[{"source_code":"default","quantity":5}]}]`)

	report, err := newProcessor(catalog, nil).ProcessBatch(context.Background(), recs)

	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)
	assert.Empty(t, report.Failures)
	assert.False(t, report.NothingProcessed())
	assert.Equal(t, "Total updated: 0 | created: 1 | disabled: 0 | enabled: 0", report.Summary())
	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, 1, report.Outcomes[0].Position)
}

func TestProcessBatch_SinSkuNoPasaPorValidador(t *testing.T) {
	recs := records(t, `[{"action":"new"}, 42, {"sku":"  ","action":"enable"}]`)

	report, err := newProcessor(newFakeCatalog(), nil).ProcessBatch(context.Background(), recs)

	require.NoError(t, err)
	assert.True(t, report.NothingProcessed())
	assert.Equal(t, []string{
		"Record #1: Product data missing SKU, cannot process.",
		"Record #2: Product data missing SKU, cannot process.",
		"Record #3: Product data missing SKU, cannot process.",
	}, report.Failures)
	for _, o := range report.Outcomes {
		assert.Equal(t, domainerp.OutcomeSkipped, o.Kind)
	}
}

func TestProcessBatch_RazonesDeValidacionUnidas(t *testing.T) {
	recs := records(t, `[{"sku":"N1","action":"new","name":"W","price":-1,"attribute_set_id":4,
		"type_id":"simple","status":1,"visibility":4}]`)

	report, err := newProcessor(newFakeCatalog(), nil).ProcessBatch(context.Background(), recs)

	require.NoError(t, err)
	require.Len(t, report.Failures, 1)
	assert.Equal(t,
		`Product with SKU "N1" could not be created: sources array is missing or invalid.; `+
			`Product with SKU "N1" could not be created: price cannot be negative (-1.00)`,
		report.Failures[0])
}

func TestProcessBatch_SinAccionSeRechaza(t *testing.T) {
	catalog := newFakeCatalog(existing("C3", "10", entity.ProductStatusEnabled))
	recs := records(t, `[{"sku":"C3","price":11,"sources":[]}]`)

	report, err := newProcessor(catalog, nil).ProcessBatch(context.Background(), recs)

	require.NoError(t, err)
	assert.Equal(t, []string{`Product with SKU "C3" could not be processed: action is missing.`}, report.Failures)
	assert.Zero(t, catalog.lookups)
	assert.Equal(t, domainerp.ActionUpdate, report.Outcomes[0].Action, "sin acción se enruta como update")
}

// Un error en el registro k no afecta a los demás y el orden de fallos es el de entrada.
func TestProcessBatch_AislamientoPorRegistro(t *testing.T) {
	catalog := newFakeCatalog(
		existing("B2", "1", entity.ProductStatusDisabled),
		existing("D4", "1", entity.ProductStatusEnabled),
	)
	catalog.lookupErr["X1"] = errDBDown
	catalog.panicOnSKU = "P1"
	recs := records(t, `[
		{"sku":"B2","action":"enable"},
		{"sku":"X1","action":"update","price":1,"sources":[]},
		{"sku":"P1","action":"update","price":1,"sources":[]},
		{"sku":"D4","action":"disable"},
		{"sku":"B2","action":"enable"}
	]`)

	report, err := newProcessor(catalog, nil).ProcessBatch(context.Background(), recs)

	require.NoError(t, err)
	assert.Equal(t, 1, report.Enabled)
	assert.Equal(t, 1, report.Disabled)
	assert.Equal(t, []string{
		"Failed to process SKU: X1 - lookup product: connection refused",
		"Failed to process SKU: P1 - panic: catalog exploded",
		`Product with SKU "B2" could not be enabled: already enabled.`,
	}, report.Failures)
	require.Len(t, report.Outcomes, 5)
	for i, o := range report.Outcomes {
		assert.Equal(t, i+1, o.Position)
	}
	assert.Equal(t, "Total updated: 0 | created: 0 | disabled: 1 | enabled: 1", report.Summary())
}

// Sin transacción: el producto queda guardado aunque falle el stock.
func TestProcessBatch_FalloDeStockTrasGuardarProducto(t *testing.T) {
	catalog := newFakeCatalog(existing("U1", "10", entity.ProductStatusEnabled))
	catalog.stockErr = errDBDown
	recs := records(t, `[
		{"sku":"N1","action":"new","name":"W","price":2,"attribute_set_id":4,"type_id":"simple",
		 "status":1,"visibility":4,"sources":[{"source_code":"default","quantity":3}]},
		{"sku":"U1","action":"update","price":11,"sources":[{"quantity":1}]}
	]`)

	report, err := newProcessor(catalog, nil).ProcessBatch(context.Background(), recs)

	require.NoError(t, err)
	assert.True(t, report.NothingProcessed())
	assert.Equal(t, []string{
		"Failed to process SKU: N1 - save stock: connection refused",
		"Failed to process SKU: U1 - save stock: connection refused",
	}, report.Failures)
	assert.Contains(t, catalog.products, "N1")
	assert.Equal(t, "11", catalog.products["U1"].Price.String())
	assert.Empty(t, catalog.stock)
	for _, o := range report.Outcomes {
		assert.Equal(t, domainerp.OutcomeFailed, o.Kind)
	}
}

func TestProcessBatch_SkuRepetidoGanaUltimaEscritura(t *testing.T) {
	catalog := newFakeCatalog(existing("C3", "10", entity.ProductStatusEnabled))
	recs := records(t, `[
		{"sku":"C3","action":"update","price":11,"sources":[]},
		{"sku":"C3","action":"update","price":12,"sources":[]}
	]`)

	report, err := newProcessor(catalog, nil).ProcessBatch(context.Background(), recs)

	require.NoError(t, err)
	assert.Equal(t, 2, report.Updated)
	assert.Equal(t, "12", catalog.products["C3"].Price.String())
}

// ──────────────────────────────────────────────────────────────────────────────
// Métricas
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessBatch_CuentaResultadosEnMetricas(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := apperp.NewMetrics(reg)
	catalog := newFakeCatalog(existing("B2", "1", entity.ProductStatusDisabled))
	recs := records(t, `[
		{"sku":"B2","action":"enable"},
		{"sku":"B2","action":"enable"},
		{"action":"new"}
	]`)

	_, err := newProcessor(catalog, metrics).ProcessBatch(context.Background(), recs)

	require.NoError(t, err)
	counter := metrics.RecordsCounter()
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.WithLabelValues("enable", "enabled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.WithLabelValues("enable", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.WithLabelValues("new", "skipped")))
}

func TestProcessBatch_AccionesDesconocidasCompartenEtiqueta(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := apperp.NewMetrics(reg)
	recs := records(t, `[
		{"sku":"A1","action":"x1"},
		{"sku":"A2","action":"x2"},
		{"sku":"A3","action":"X3"}
	]`)

	_, err := newProcessor(newFakeCatalog(), metrics).ProcessBatch(context.Background(), recs)

	require.NoError(t, err)
	counter := metrics.RecordsCounter()
	assert.Equal(t, 1, testutil.CollectAndCount(counter))
	assert.Equal(t, 3.0, testutil.ToFloat64(counter.WithLabelValues("unknown", "skipped")))
}
