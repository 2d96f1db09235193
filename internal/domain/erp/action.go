// Package erp contiene las reglas de dominio de la integración de productos desde el ERP:
// registros de entrada, validación por acción, resultados por registro y el reporte del lote.
// No tiene efectos secundarios ni dependencias de infraestructura.
package erp

import "strings"

// Action acción solicitada por el ERP para un registro.
type Action string

const (
	ActionNew     Action = "new"
	ActionUpdate  Action = "update"
	ActionEnable  Action = "enable"
	ActionDisable Action = "disable"
)

// Actions devuelve el conjunto cerrado de acciones soportadas.
func Actions() []Action {
	return []Action{ActionNew, ActionUpdate, ActionEnable, ActionDisable}
}

// ParseAction normaliza el valor recibido (sin distinguir mayúsculas) y lo valida.
func ParseAction(raw string) (Action, bool) {
	a := Action(strings.ToLower(strings.TrimSpace(raw)))
	switch a {
	case ActionNew, ActionUpdate, ActionEnable, ActionDisable:
		return a, true
	}
	return a, false
}

// Verb participio usado en los mensajes ("created", "updated", ...).
func (a Action) Verb() string {
	switch a {
	case ActionNew:
		return "created"
	case ActionUpdate:
		return "updated"
	case ActionEnable:
		return "enabled"
	case ActionDisable:
		return "disabled"
	}
	return "processed"
}
