package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus disponibilidad derivada de la cantidad en un origen.
type StockStatus int

const (
	StockStatusOutOfStock StockStatus = 0
	StockStatusInStock    StockStatus = 1
)

// DefaultSourceCode origen usado cuando el ERP no indica source_code.
const DefaultSourceCode = "default"

// SourceItem cantidad de un SKU en un origen (bodega) del catálogo.
type SourceItem struct {
	SKU        string
	SourceCode string
	Quantity   decimal.Decimal
	Status     StockStatus
	UpdatedAt  time.Time
}

// StockStatusFor deriva el estado de stock: cantidad > 0 es InStock, cualquier otra es OutOfStock.
func StockStatusFor(qty decimal.Decimal) StockStatus {
	if qty.GreaterThan(decimal.Zero) {
		return StockStatusInStock
	}
	return StockStatusOutOfStock
}

// NewSourceItem construye el registro de stock con el estado ya derivado.
func NewSourceItem(sku, sourceCode string, qty decimal.Decimal) *SourceItem {
	return &SourceItem{
		SKU:        sku,
		SourceCode: sourceCode,
		Quantity:   qty,
		Status:     StockStatusFor(qty),
	}
}
