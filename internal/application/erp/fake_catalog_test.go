package erp_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-integration/internal/domain"
	"github.com/jhoicas/erp-integration/internal/domain/entity"
	domainerp "github.com/jhoicas/erp-integration/internal/domain/erp"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeCatalog implementación en memoria de repository.CatalogGateway que registra las llamadas.
type fakeCatalog struct {
	products   map[string]*entity.Product
	stock      [][]*entity.SourceItem
	lookups    int
	saves      int
	lookupErr  map[string]error
	saveErr    map[string]error
	stockErr   error
	panicOnSKU string
}

func newFakeCatalog(products ...*entity.Product) *fakeCatalog {
	f := &fakeCatalog{
		products:  map[string]*entity.Product{},
		lookupErr: map[string]error{},
		saveErr:   map[string]error{},
	}
	for _, p := range products {
		f.products[p.SKU] = p
	}
	return f
}

func (f *fakeCatalog) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	f.lookups++
	if sku == f.panicOnSKU {
		panic("catalog exploded")
	}
	if err := f.lookupErr[sku]; err != nil {
		return nil, err
	}
	p, ok := f.products[sku]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeCatalog) Save(_ context.Context, product *entity.Product) error {
	f.saves++
	if err := f.saveErr[product.SKU]; err != nil {
		return err
	}
	cp := *product
	f.products[product.SKU] = &cp
	return nil
}

func (f *fakeCatalog) SaveStock(_ context.Context, items []*entity.SourceItem) error {
	if f.stockErr != nil {
		return f.stockErr
	}
	f.stock = append(f.stock, items)
	return nil
}

func existing(sku string, price string, status entity.ProductStatus) *entity.Product {
	return &entity.Product{
		ID:             "id-" + sku,
		SKU:            sku,
		Name:           "Existente " + sku,
		Price:          decimal.RequireFromString(price),
		TypeID:         entity.DefaultTypeID,
		AttributeSetID: entity.DefaultAttributeSetID,
		Status:         status,
		Visibility:     entity.DefaultVisibility,
	}
}

func records(t *testing.T, doc string) []domainerp.ProductRecord {
	t.Helper()
	recs, err := domainerp.DecodeRecords([]byte(doc))
	require.NoError(t, err)
	return recs
}

var errDBDown = errors.New("connection refused")
