// Package erpfile adapta los archivos JSON intercambiados con el ERP:
// la importación de productos y el export de pedidos.
package erpfile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	apperp "github.com/jhoicas/erp-integration/internal/application/erp"
	domainerp "github.com/jhoicas/erp-integration/internal/domain/erp"
)

var _ apperp.RecordSource = (*Reader)(nil)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader lee el archivo de productos del ERP y lo decodifica a registros.
type Reader struct {
	decoder *encoding.Decoder // nil = UTF-8
}

// NewReader construye el lector para la codificación indicada (utf-8, latin1 o windows-1252).
func NewReader(fileEncoding string) (*Reader, error) {
	switch strings.ToLower(fileEncoding) {
	case "", "utf-8", "utf8":
		return &Reader{}, nil
	case "latin1", "iso-8859-1":
		return &Reader{decoder: charmap.ISO8859_1.NewDecoder()}, nil
	case "windows-1252", "cp1252":
		return &Reader{decoder: charmap.Windows1252.NewDecoder()}, nil
	}
	return nil, fmt.Errorf("erpfile: codificación no soportada: %q", fileEncoding)
}

// ReadRecords lee el archivo completo, lo transcodifica a UTF-8 si aplica y decodifica el arreglo JSON.
func (r *Reader) ReadRecords(ctx context.Context, path string) ([]domainerp.ProductRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var in io.Reader = f
	if r.decoder != nil {
		in = transform.NewReader(f, r.decoder)
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", path, err)
	}
	return domainerp.DecodeRecords(bytes.TrimPrefix(data, utf8BOM))
}
