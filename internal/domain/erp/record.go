package erp

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ProductRecord registro de producto tal como llega del ERP.
// Los campos opcionales son punteros: nil significa ausente (o null en el JSON).
type ProductRecord struct {
	Position       int // posición 1-based en la entrada
	SKU            string
	Action         string // valor crudo; ver ParseAction
	Name           *string
	Price          *decimal.Decimal
	AttributeSetID *int
	TypeID         *string
	Status         *int
	Visibility     *int
	Sources        []SourceQuantity
	SourcesPresent bool // la clave sources vino en el registro
	SourcesIsList  bool // sources es una secuencia
	// Invalid campos presentes con un valor que no se pudo interpretar, en orden de declaración.
	Invalid []string
}

// SourceQuantity cantidad declarada para un origen.
type SourceQuantity struct {
	SourceCode      *string
	Quantity        *decimal.Decimal
	InvalidQuantity bool
}

// HasSKU indica si el registro trae un SKU utilizable.
func (r ProductRecord) HasSKU() bool {
	return strings.TrimSpace(r.SKU) != ""
}

// RoutedAction acción a ejecutar: Update cuando el registro no trae acción.
func (r ProductRecord) RoutedAction() Action {
	if strings.TrimSpace(r.Action) == "" {
		return ActionUpdate
	}
	a, _ := ParseAction(r.Action)
	return a
}

// CodeOr devuelve el source_code o el valor indicado si no vino.
func (s SourceQuantity) CodeOr(def string) string {
	if s.SourceCode == nil || *s.SourceCode == "" {
		return def
	}
	return *s.SourceCode
}

func (r ProductRecord) isInvalid(field string) bool {
	for _, f := range r.Invalid {
		if f == field {
			return true
		}
	}
	return false
}
