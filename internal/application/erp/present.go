package erp

import domainerp "github.com/jhoicas/erp-integration/internal/domain/erp"

// Presenter destino de los mensajes para el operador. Lo implementa *logger.Console.
type Presenter interface {
	Info(msg string)
	Error(msg string)
	Comment(msg string)
}

// PresentReport emite el lote en el orden del comando: avances por registro, aviso si nada
// se aplicó, fallos en orden de entrada y la línea de resumen.
func PresentReport(p Presenter, report domainerp.BatchReport) {
	for _, o := range report.Outcomes {
		if o.Kind.Succeeded() {
			p.Info(o.Message())
		}
	}
	if report.NothingProcessed() {
		p.Comment("No records were processed.")
	}
	for _, f := range report.Failures {
		p.Error(f)
	}
	p.Comment(report.Summary())
}

// PresentCancel emite el resultado de la cancelación con su nivel.
func PresentCancel(p Presenter, out CancelOutcome) {
	switch {
	case out.IsError():
		p.Error(out.Message())
	case out.Status == CancelMarked:
		p.Info(out.Message())
	default:
		p.Comment(out.Message())
	}
}
