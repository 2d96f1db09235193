package entity

import "encoding/json"

// OrderStatusCanceled estado que se escribe en el export del ERP al cancelar un pedido.
const OrderStatusCanceled = "canceled"

// ExportedOrder pedido tal como aparece en el archivo de exportación hacia el ERP.
// Raw conserva el objeto original para no perder campos desconocidos al reescribirlo.
type ExportedOrder struct {
	IncrementID string
	Status      string
	Raw         json.RawMessage
}
