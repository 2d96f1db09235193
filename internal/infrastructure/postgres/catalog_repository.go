package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-integration/internal/domain"
	"github.com/jhoicas/erp-integration/internal/domain/entity"
	"github.com/jhoicas/erp-integration/internal/domain/repository"
)

var _ repository.CatalogGateway = (*CatalogRepo)(nil)

// CatalogRepo implementación de CatalogGateway sobre PostgreSQL (usable con pool o tx).
//
// Tablas esperadas:
//
//	catalog_products(id uuid pk, sku text unique, name text, price numeric(20,6), type_id text,
//	                 attribute_set_id int, status smallint, visibility smallint, created_at, updated_at)
//	catalog_source_items(sku text, source_code text, quantity numeric(20,4), status smallint,
//	                     updated_at, primary key (sku, source_code))
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador del catálogo. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// GetBySKU obtiene un producto por SKU. Retorna domain.ErrNotFound si no existe.
func (r *CatalogRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	query := `
		SELECT id, sku, name, price, type_id, attribute_set_id, status, visibility, created_at, updated_at
		FROM catalog_products WHERE sku = $1`
	var (
		p      entity.Product
		status int
	)
	err := r.q.QueryRow(ctx, query, sku).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Price, &p.TypeID, &p.AttributeSetID, &status, &p.Visibility,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	p.Status = entity.ProductStatus(status)
	return &p, nil
}

// Save inserta o actualiza el producto por ID. Un SKU repetido con otro ID retorna domain.ErrConflict.
func (r *CatalogRepo) Save(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO catalog_products (id, sku, name, price, type_id, attribute_set_id, status, visibility, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			type_id = EXCLUDED.type_id,
			attribute_set_id = EXCLUDED.attribute_set_id,
			status = EXCLUDED.status,
			visibility = EXCLUDED.visibility,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.SKU, product.Name, product.Price, product.TypeID, product.AttributeSetID,
		int(product.Status), product.Visibility, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("save product: %w", err)
	}
	return nil
}

// SaveStock persiste el lote de stock en un único round-trip (pgx.Batch).
func (r *CatalogRepo) SaveStock(ctx context.Context, items []*entity.SourceItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
		INSERT INTO catalog_source_items (sku, source_code, quantity, status, updated_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, now()))
		ON CONFLICT (sku, source_code)
		DO UPDATE SET quantity = EXCLUDED.quantity, status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`
	batch := &pgx.Batch{}
	for _, it := range items {
		var updatedAt any
		if !it.UpdatedAt.IsZero() {
			updatedAt = it.UpdatedAt
		}
		batch.Queue(query, it.SKU, it.SourceCode, it.Quantity, int(it.Status), updatedAt)
	}

	br := r.q.SendBatch(ctx, batch)
	for _, it := range items {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("save stock %s/%s: %w", it.SKU, it.SourceCode, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("save stock: %w", err)
	}
	return nil
}
