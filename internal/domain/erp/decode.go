package erp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-integration/internal/domain"
)

// Claves del registro JSON del ERP.
const (
	keyAction         = "action"
	keySKU            = "sku"
	keyName           = "name"
	keyPrice          = "price"
	keyAttributeSetID = "attribute_set_id"
	keyTypeID         = "type_id"
	keyStatus         = "status"
	keyVisibility     = "visibility"
	keySources        = "sources"
	keySourceCode     = "source_code"
	keyQuantity       = "quantity"
)

// DecodeRecords interpreta el documento JSON del ERP: un arreglo de objetos de producto.
// Un elemento que no es objeto se conserva como registro sin SKU para que el lote lo reporte.
func DecodeRecords(data []byte) ([]ProductRecord, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode erp products: %w: %w", domain.ErrInvalidInput, err)
	}
	records := make([]ProductRecord, 0, len(items))
	for i, item := range items {
		records = append(records, decodeRecord(i+1, item))
	}
	return records, nil
}

func decodeRecord(position int, item json.RawMessage) ProductRecord {
	rec := ProductRecord{Position: position}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil {
		return rec
	}

	if s, ok := decodeText(fields[keySKU]); ok {
		rec.SKU = s
	}
	if s, ok := decodeText(fields[keyAction]); ok {
		rec.Action = s
	}
	rec.Name = optional(fields, keyName, decodeText, &rec.Invalid)
	rec.Price = optional(fields, keyPrice, decodeDecimal, &rec.Invalid)
	rec.AttributeSetID = optional(fields, keyAttributeSetID, decodeInt, &rec.Invalid)
	rec.TypeID = optional(fields, keyTypeID, decodeText, &rec.Invalid)
	rec.Status = optional(fields, keyStatus, decodeInt, &rec.Invalid)
	rec.Visibility = optional(fields, keyVisibility, decodeInt, &rec.Invalid)

	raw := fields[keySources]
	if !present(raw) {
		return rec
	}
	rec.SourcesPresent = true
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return rec
	}
	rec.SourcesIsList = true
	rec.Sources = make([]SourceQuantity, 0, len(entries))
	for _, e := range entries {
		rec.Sources = append(rec.Sources, decodeSource(e))
	}
	return rec
}

func decodeSource(raw json.RawMessage) SourceQuantity {
	var src SourceQuantity
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return src
	}
	if code, ok := decodeText(fields[keySourceCode]); ok {
		src.SourceCode = &code
	}
	if q := fields[keyQuantity]; present(q) {
		if d, ok := decodeDecimal(q); ok {
			src.Quantity = &d
		} else {
			src.InvalidQuantity = true
		}
	}
	return src
}

// optional decodifica una clave opcional; si viene con un valor no interpretable
// se anota en invalid y se devuelve nil.
func optional[T any](fields map[string]json.RawMessage, key string, decode func(json.RawMessage) (T, bool), invalid *[]string) *T {
	raw := fields[key]
	if !present(raw) {
		return nil
	}
	v, ok := decode(raw)
	if !ok {
		*invalid = append(*invalid, key)
		return nil
	}
	return &v
}

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// decodeText acepta cadenas y números (los ERP suelen enviar SKU numéricos).
func decodeText(raw json.RawMessage) (string, bool) {
	if !present(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	return "", false
}

// decodeDecimal acepta números JSON y cadenas numéricas ("9.99").
func decodeDecimal(raw json.RawMessage) (decimal.Decimal, bool) {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(bytes.TrimSpace(raw)); err != nil {
		return decimal.Zero, false
	}
	return d, true
}

var (
	minInt = decimal.NewFromInt(math.MinInt32)
	maxInt = decimal.NewFromInt(math.MaxInt32)
)

// decodeInt acepta enteros en el rango de int32; fuera de rango el valor es inválido.
func decodeInt(raw json.RawMessage) (int, bool) {
	d, ok := decodeDecimal(raw)
	if !ok || !d.IsInteger() || d.LessThan(minInt) || d.GreaterThan(maxInt) {
		return 0, false
	}
	return int(d.IntPart()), true
}

// String resumen corto del registro para logs y diagnósticos.
func (r ProductRecord) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d sku=%q action=%q", r.Position, r.SKU, r.Action)
	if len(r.Sources) > 0 {
		fmt.Fprintf(&b, " sources=%d", len(r.Sources))
	}
	return b.String()
}
