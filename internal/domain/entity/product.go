package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus estado de publicación del producto en el catálogo.
type ProductStatus int

const (
	ProductStatusEnabled  ProductStatus = 1
	ProductStatusDisabled ProductStatus = 2
)

// Valores por defecto del catálogo cuando el ERP no los envía.
const (
	DefaultAttributeSetID = 4
	DefaultVisibility     = 4
	DefaultTypeID         = "simple"
)

// Product representa un producto del catálogo identificado por SKU.
// El stock por origen (bodega) se maneja en SourceItem.
type Product struct {
	ID             string
	SKU            string // clave única
	Name           string
	Price          decimal.Decimal
	TypeID         string
	AttributeSetID int
	Status         ProductStatus
	Visibility     int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Enabled indica si el producto está habilitado.
func (p *Product) Enabled() bool {
	return p.Status == ProductStatusEnabled
}
