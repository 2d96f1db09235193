package erp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/erp-integration/internal/domain"
	"github.com/jhoicas/erp-integration/internal/domain/entity"
	"github.com/jhoicas/erp-integration/internal/domain/repository"
)

// CancelStatus resultado de marcar un pedido como cancelado en el export del ERP.
type CancelStatus int

const (
	CancelMarked       CancelStatus = iota + 1
	CancelMissingID                 // no se recibió increment_id
	CancelNoExportFile              // el archivo de export no existe
	CancelOrderNotFound
	CancelWriteFailed
)

// CancelOutcome estado y detalle de la operación. Err solo aplica a CancelWriteFailed.
type CancelOutcome struct {
	IncrementID string
	Status      CancelStatus
	Err         error
}

// Message texto para el operador, igual en CLI y HTTP.
func (o CancelOutcome) Message() string {
	switch o.Status {
	case CancelMarked:
		return fmt.Sprintf("Order #%s marked as canceled in ERP JSON file.", o.IncrementID)
	case CancelMissingID:
		return "Order increment_id is missing, cannot update ERP JSON on cancel."
	case CancelNoExportFile:
		return fmt.Sprintf("ERP JSON file does not exist, nothing to update for order #%s.", o.IncrementID)
	case CancelOrderNotFound:
		return fmt.Sprintf("Order #%s not found in ERP JSON file, cannot mark as canceled.", o.IncrementID)
	case CancelWriteFailed:
		return fmt.Sprintf("Failed to update ERP JSON for canceled order #%s: %v", o.IncrementID, o.Err)
	}
	return ""
}

// IsError indica si el resultado debe presentarse como error (y no como comentario).
func (o CancelOutcome) IsError() bool {
	return o.Status == CancelMissingID || o.Status == CancelWriteFailed
}

// OrderCancelUseCase marca pedidos cancelados en el archivo de pedidos exportado al ERP.
type OrderCancelUseCase struct {
	store repository.OrderExportStore
}

// NewOrderCancelUseCase construye el caso de uso.
func NewOrderCancelUseCase(store repository.OrderExportStore) *OrderCancelUseCase {
	return &OrderCancelUseCase{store: store}
}

// MarkCanceled pone status "canceled" en la primera entrada con el increment_id dado.
// Ningún fallo se propaga: todo queda descrito en el CancelOutcome.
func (uc *OrderCancelUseCase) MarkCanceled(ctx context.Context, incrementID string) CancelOutcome {
	incrementID = strings.TrimSpace(incrementID)
	out := CancelOutcome{IncrementID: incrementID}
	if incrementID == "" {
		out.Status = CancelMissingID
		return out
	}

	orders, err := uc.store.Load(ctx)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			out.Status = CancelNoExportFile
			return out
		case errors.Is(err, domain.ErrInvalidInput):
			// un export ilegible se trata como vacío
			out.Status = CancelOrderNotFound
			return out
		}
		out.Status, out.Err = CancelWriteFailed, err
		return out
	}

	var target *entity.ExportedOrder
	for _, o := range orders {
		if o.IncrementID == incrementID {
			target = o
			break
		}
	}
	if target == nil {
		out.Status = CancelOrderNotFound
		return out
	}

	target.Status = entity.OrderStatusCanceled
	if err := uc.store.Save(ctx, orders); err != nil {
		out.Status, out.Err = CancelWriteFailed, err
		return out
	}
	out.Status = CancelMarked
	return out
}
