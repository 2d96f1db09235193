package repository

import (
	"context"

	"github.com/jhoicas/erp-integration/internal/domain/entity"
)

// CatalogGateway define el puerto de persistencia del catálogo (productos y stock por origen).
// GetBySKU retorna domain.ErrNotFound si el SKU no existe.
type CatalogGateway interface {
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Save(ctx context.Context, product *entity.Product) error
	// SaveStock persiste el lote completo de registros de stock en una sola operación.
	SaveStock(ctx context.Context, items []*entity.SourceItem) error
}
