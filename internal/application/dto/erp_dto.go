package dto

import (
	domainerp "github.com/jhoicas/erp-integration/internal/domain/erp"
)

// ImportResponse resultado de una corrida de importación.
type ImportResponse struct {
	Created          int             `json:"created"`
	Updated          int             `json:"updated"`
	Enabled          int             `json:"enabled"`
	Disabled         int             `json:"disabled"`
	NothingProcessed bool            `json:"nothing_processed"`
	Failures         []string        `json:"failures"`
	Summary          string          `json:"summary"`
	Records          []RecordOutcome `json:"records"`
}

// RecordOutcome resultado de un registro, en orden de entrada.
type RecordOutcome struct {
	Position int    `json:"position"`
	SKU      string `json:"sku"`
	Action   string `json:"action"`
	Outcome  string `json:"outcome"`
	Message  string `json:"message"`
}

// ToImportResponse convierte el reporte del lote en la respuesta HTTP.
func ToImportResponse(r domainerp.BatchReport) ImportResponse {
	out := ImportResponse{
		Created:          r.Created,
		Updated:          r.Updated,
		Enabled:          r.Enabled,
		Disabled:         r.Disabled,
		NothingProcessed: r.NothingProcessed(),
		Failures:         r.Failures,
		Summary:          r.Summary(),
		Records:          make([]RecordOutcome, 0, len(r.Outcomes)),
	}
	if out.Failures == nil {
		out.Failures = []string{}
	}
	for _, o := range r.Outcomes {
		out.Records = append(out.Records, RecordOutcome{
			Position: o.Position,
			SKU:      o.SKU,
			Action:   string(o.Action),
			Outcome:  o.Kind.String(),
			Message:  o.Message(),
		})
	}
	return out
}

// CancelOrderResponse resultado de marcar un pedido como cancelado.
type CancelOrderResponse struct {
	IncrementID string `json:"increment_id"`
	Marked      bool   `json:"marked"`
	Message     string `json:"message"`
}
