package erp

import "fmt"

// OutcomeKind tipo de resultado de un registro.
type OutcomeKind int

const (
	OutcomeCreated OutcomeKind = iota + 1
	OutcomeUpdated
	OutcomeEnabled
	OutcomeDisabled
	OutcomeSkipped // el registro no llegó a ejecutarse (sin SKU o inválido)
	OutcomeFailed  // la acción se intentó y no se aplicó
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeEnabled:
		return "enabled"
	case OutcomeDisabled:
		return "disabled"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// Succeeded indica si el resultado cuenta como cambio aplicado.
func (k OutcomeKind) Succeeded() bool {
	return k >= OutcomeCreated && k <= OutcomeDisabled
}

// Outcome resultado de un registro. Se devuelve por valor; Reason solo aplica a Skipped/Failed.
type Outcome struct {
	Position int
	SKU      string
	Action   Action
	Kind     OutcomeKind
	Reason   string
}

// Created, Updated, Enabled y Disabled construyen resultados exitosos.
func Created(sku string) Outcome  { return Outcome{SKU: sku, Action: ActionNew, Kind: OutcomeCreated} }
func Updated(sku string) Outcome  { return Outcome{SKU: sku, Action: ActionUpdate, Kind: OutcomeUpdated} }
func Enabled(sku string) Outcome  { return Outcome{SKU: sku, Action: ActionEnable, Kind: OutcomeEnabled} }
func Disabled(sku string) Outcome { return Outcome{SKU: sku, Action: ActionDisable, Kind: OutcomeDisabled} }

// Failed resultado de una acción que no se aplicó.
func Failed(sku string, action Action, reason string) Outcome {
	return Outcome{SKU: sku, Action: action, Kind: OutcomeFailed, Reason: reason}
}

// Skipped resultado de un registro descartado antes de ejecutarse.
func Skipped(sku string, action Action, reason string) Outcome {
	return Outcome{SKU: sku, Action: action, Kind: OutcomeSkipped, Reason: reason}
}

// Message texto para presentar el resultado ("Created: A1" o el motivo del fallo).
func (o Outcome) Message() string {
	switch o.Kind {
	case OutcomeCreated:
		return "Created: " + o.SKU
	case OutcomeUpdated:
		return "Updated: " + o.SKU
	case OutcomeEnabled:
		return "Enabled: " + o.SKU
	case OutcomeDisabled:
		return "Disabled: " + o.SKU
	}
	if o.Reason == "" {
		return fmt.Sprintf("Unknown error for SKU: %s", o.SKU)
	}
	return o.Reason
}
