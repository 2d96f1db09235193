package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los textos aparecen tal cual en el reporte de integración.
var (
	ErrNotFound     = errors.New("product not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("already exists")
	ErrNoChange     = errors.New("no changes detected")
	ErrEmptyBatch   = errors.New("no records found")
)
