package erp

import "fmt"

// BatchReport contadores por acción y fallos en orden de entrada.
type BatchReport struct {
	Created  int
	Updated  int
	Enabled  int
	Disabled int
	Failures []string
	Outcomes []Outcome
}

// Add incorpora el resultado de un registro al reporte.
func (r *BatchReport) Add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Kind {
	case OutcomeCreated:
		r.Created++
	case OutcomeUpdated:
		r.Updated++
	case OutcomeEnabled:
		r.Enabled++
	case OutcomeDisabled:
		r.Disabled++
	default:
		r.Failures = append(r.Failures, o.Message())
	}
}

// Processed cantidad de registros con cambio aplicado.
func (r BatchReport) Processed() int {
	return r.Created + r.Updated + r.Enabled + r.Disabled
}

// Total cantidad de registros considerados (aplicados + fallidos).
func (r BatchReport) Total() int {
	return len(r.Outcomes)
}

// NothingProcessed es true si ningún registro se aplicó (todos fallaron o se omitieron).
func (r BatchReport) NothingProcessed() bool {
	return r.Processed() == 0
}

// Summary línea final del lote.
func (r BatchReport) Summary() string {
	return fmt.Sprintf("Total updated: %d | created: %d | disabled: %d | enabled: %d",
		r.Updated, r.Created, r.Disabled, r.Enabled)
}
