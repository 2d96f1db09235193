package erpfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/erp-integration/internal/domain"
	"github.com/jhoicas/erp-integration/internal/infrastructure/erpfile"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReader_UTF8ConBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`[{"sku":"A1","action":"enable"}]`)...)
	path := writeFile(t, "erp_products.json", data)
	r, err := erpfile.NewReader("utf-8")
	require.NoError(t, err)

	recs, err := r.ReadRecords(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "A1", recs[0].SKU)
	assert.Equal(t, 1, recs[0].Position)
}

func TestReader_Latin1(t *testing.T) {
	doc, err := charmap.ISO8859_1.NewEncoder().String(`[{"sku":"Ñ1","action":"new","name":"Café"}]`)
	require.NoError(t, err)
	path := writeFile(t, "erp_products.json", []byte(doc))
	r, err := erpfile.NewReader("latin1")
	require.NoError(t, err)

	recs, err := r.ReadRecords(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Ñ1", recs[0].SKU)
	require.NotNil(t, recs[0].Name)
	assert.Equal(t, "Café", *recs[0].Name)
}

func TestReader_ArchivoInexistente(t *testing.T) {
	r, err := erpfile.NewReader("")
	require.NoError(t, err)

	_, err = r.ReadRecords(context.Background(), filepath.Join(t.TempDir(), "nope.json"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReader_NoEsArreglo(t *testing.T) {
	path := writeFile(t, "erp_products.json", []byte(`{"sku":"A1"}`))
	r, err := erpfile.NewReader("utf-8")
	require.NoError(t, err)

	_, err = r.ReadRecords(context.Background(), path)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewReader_CodificacionNoSoportada(t *testing.T) {
	_, err := erpfile.NewReader("ebcdic")
	assert.Error(t, err)
}
