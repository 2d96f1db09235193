package repository

import (
	"context"

	"github.com/jhoicas/erp-integration/internal/domain/entity"
)

// OrderExportStore acceso al archivo de pedidos exportados al ERP.
// Load retorna domain.ErrNotFound si el archivo no existe.
type OrderExportStore interface {
	Load(ctx context.Context) ([]*entity.ExportedOrder, error)
	Save(ctx context.Context, orders []*entity.ExportedOrder) error
}
