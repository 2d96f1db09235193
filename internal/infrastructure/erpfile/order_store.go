package erpfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jhoicas/erp-integration/internal/domain"
	"github.com/jhoicas/erp-integration/internal/domain/entity"
	"github.com/jhoicas/erp-integration/internal/domain/repository"
)

var _ repository.OrderExportStore = (*OrderStore)(nil)

const (
	keyIncrementID = "increment_id"
	keyStatus      = "status"
)

// OrderStore export de pedidos hacia el ERP en un archivo JSON (arreglo de objetos).
// Al guardar se conserva el orden y el contenido de las claves de cada pedido; solo cambia status.
type OrderStore struct {
	path string
}

// NewOrderStore construye el store sobre la ruta del export.
func NewOrderStore(path string) *OrderStore {
	return &OrderStore{path: path}
}

// Load lee el export. Retorna domain.ErrNotFound si el archivo no existe y
// domain.ErrInvalidInput si no es un arreglo JSON.
func (s *OrderStore) Load(ctx context.Context) ([]*entity.ExportedOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("leer export de pedidos: %w", err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: export de pedidos: %v", domain.ErrInvalidInput, err)
	}
	orders := make([]*entity.ExportedOrder, 0, len(items))
	for _, raw := range items {
		orders = append(orders, decodeOrder(raw))
	}
	return orders, nil
}

func decodeOrder(raw json.RawMessage) *entity.ExportedOrder {
	o := &entity.ExportedOrder{Raw: raw}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return o
	}
	o.IncrementID = scalarText(fields[keyIncrementID])
	o.Status = scalarText(fields[keyStatus])
	return o
}

// scalarText texto de un escalar JSON: cadenas sin comillas, números tal cual.
func scalarText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// Save escribe el export con indentación, reemplazando status en los pedidos que cambiaron.
// Escribe a un temporal y renombra para no dejar el archivo a medias.
func (s *OrderStore) Save(ctx context.Context, orders []*entity.ExportedOrder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	items := make([]json.RawMessage, 0, len(orders))
	for _, o := range orders {
		raw, err := encodeOrder(o)
		if err != nil {
			return fmt.Errorf("pedido %s: %w", o.IncrementID, err)
		}
		items = append(items, raw)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("codificar export de pedidos: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".erp_orders-*.json")
	if err != nil {
		return fmt.Errorf("crear temporal: %w", err)
	}
	defer os.Remove(tmp.Name())
	if fi, err := os.Stat(s.path); err == nil {
		_ = tmp.Chmod(fi.Mode().Perm())
	}
	if _, err := tmp.Write(bytes.TrimRight(buf.Bytes(), "\n")); err != nil {
		tmp.Close()
		return fmt.Errorf("escribir export de pedidos: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("escribir export de pedidos: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("reemplazar export de pedidos: %w", err)
	}
	return nil
}

// encodeOrder devuelve el objeto original con status actualizado, sin reordenar claves.
func encodeOrder(o *entity.ExportedOrder) (json.RawMessage, error) {
	if len(o.Raw) == 0 {
		return json.Marshal(map[string]string{keyIncrementID: o.IncrementID, keyStatus: o.Status})
	}
	if scalarText(statusOf(o.Raw)) == o.Status {
		return o.Raw, nil
	}
	return setKey(o.Raw, keyStatus, o.Status)
}

func statusOf(raw json.RawMessage) json.RawMessage {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	return fields[keyStatus]
}

// setKey reescribe un objeto JSON token a token reemplazando (o agregando al final) la clave dada.
func setKey(raw json.RawMessage, key, value string) (json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, fmt.Errorf("el pedido no es un objeto JSON")
	}

	encodedValue, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	out.WriteByte('{')
	replaced := false
	first := true
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, _ := tok.(string)
		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, err
		}
		if name == key {
			val = encodedValue
			replaced = true
		}
		if err := writeMember(&out, name, val, first); err != nil {
			return nil, err
		}
		first = false
	}
	if !replaced {
		if err := writeMember(&out, key, encodedValue, first); err != nil {
			return nil, err
		}
	}
	out.WriteByte('}')
	return out.Bytes(), nil
}

func writeMember(out *bytes.Buffer, name string, val json.RawMessage, first bool) error {
	if !first {
		out.WriteByte(',')
	}
	encodedName, err := json.Marshal(name)
	if err != nil {
		return err
	}
	out.Write(encodedName)
	out.WriteByte(':')
	out.Write(val)
	return nil
}
