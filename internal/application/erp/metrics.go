package erp

import (
	"github.com/prometheus/client_golang/prometheus"

	domainerp "github.com/jhoicas/erp-integration/internal/domain/erp"
)

const unknownActionLabel = "unknown"

// Metrics contadores Prometheus de registros procesados por acción y resultado.
type Metrics struct {
	records *prometheus.CounterVec
	batches prometheus.Counter
}

// NewMetrics registra los contadores en reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "erp_integration",
			Name:      "records_total",
			Help:      "Registros del ERP procesados, por acción y resultado.",
		}, []string{"action", "outcome"}),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "erp_integration",
			Name:      "batches_total",
			Help:      "Lotes del ERP procesados.",
		}),
	}
	reg.MustRegister(m.records, m.batches)
	return m
}

// RecordsCounter expone el vector para pruebas y tableros.
func (m *Metrics) RecordsCounter() *prometheus.CounterVec {
	return m.records
}

func (m *Metrics) observe(o domainerp.Outcome) {
	if m == nil {
		return
	}
	m.records.WithLabelValues(actionLabel(o.Action), o.Kind.String()).Inc()
}

// actionLabel acota la etiqueta a las acciones conocidas.
func actionLabel(a domainerp.Action) string {
	if parsed, ok := domainerp.ParseAction(string(a)); ok {
		return string(parsed)
	}
	return unknownActionLabel
}

func (m *Metrics) observeBatch() {
	if m == nil {
		return
	}
	m.batches.Inc()
}
