package erp

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/erp-integration/internal/domain"
	domainerp "github.com/jhoicas/erp-integration/internal/domain/erp"
)

const tracerName = "github.com/jhoicas/erp-integration/internal/application/erp"

// RecordExecutor aplica un registro validado. Lo implementa *Executor.
type RecordExecutor interface {
	Execute(ctx context.Context, rec domainerp.ProductRecord) (domainerp.Outcome, error)
}

// Processor recorre el lote en orden de entrada: valida, despacha y acumula el reporte.
// Secuencial; con SKUs repetidos gana el último registro.
type Processor struct {
	executor RecordExecutor
	metrics  *Metrics
	tracer   trace.Tracer
}

// NewProcessor construye el procesador. metrics puede ser nil.
func NewProcessor(executor RecordExecutor, metrics *Metrics) *Processor {
	return &Processor{
		executor: executor,
		metrics:  metrics,
		tracer:   otel.Tracer(tracerName),
	}
}

// ProcessBatch procesa todos los registros. Solo retorna error con el lote vacío
// (domain.ErrEmptyBatch); los fallos por registro quedan en el reporte.
func (p *Processor) ProcessBatch(ctx context.Context, records []domainerp.ProductRecord) (domainerp.BatchReport, error) {
	if len(records) == 0 {
		return domainerp.BatchReport{}, domain.ErrEmptyBatch
	}
	ctx, span := p.tracer.Start(ctx, "erp.ProcessBatch")
	defer span.End()
	span.SetAttributes(attribute.Int("erp.records", len(records)))

	report := domainerp.BatchReport{
		Failures: make([]string, 0),
		Outcomes: make([]domainerp.Outcome, 0, len(records)),
	}
	for i, rec := range records {
		if rec.Position == 0 {
			rec.Position = i + 1
		}
		out := p.processRecord(ctx, rec)
		p.metrics.observe(out)
		report.Add(out)
	}

	p.metrics.observeBatch()
	span.SetAttributes(
		attribute.Int("erp.created", report.Created),
		attribute.Int("erp.updated", report.Updated),
		attribute.Int("erp.enabled", report.Enabled),
		attribute.Int("erp.disabled", report.Disabled),
		attribute.Int("erp.failures", len(report.Failures)),
	)
	return report, nil
}

// processRecord aísla el registro: cualquier error o panic se convierte en Outcome Failed.
func (p *Processor) processRecord(ctx context.Context, rec domainerp.ProductRecord) (out domainerp.Outcome) {
	action := rec.RoutedAction()
	ctx, span := p.tracer.Start(ctx, "erp.ProcessRecord", trace.WithAttributes(
		attribute.Int("erp.position", rec.Position),
		attribute.String("erp.sku", rec.SKU),
		attribute.String("erp.action", string(action)),
	))
	defer func() {
		if r := recover(); r != nil {
			out = unexpected(rec, action, fmt.Errorf("panic: %v", r))
		}
		span.SetAttributes(attribute.String("erp.outcome", out.Kind.String()))
		if !out.Kind.Succeeded() {
			span.SetStatus(codes.Error, out.Reason)
		}
		span.End()
	}()

	if !rec.HasSKU() {
		msg := fmt.Sprintf("Record #%d: Product data missing SKU, cannot process.", rec.Position)
		return withPosition(domainerp.Skipped("", action, msg), rec.Position)
	}
	if res := domainerp.Validate(rec); !res.Valid {
		return withPosition(domainerp.Skipped(rec.SKU, action, strings.Join(res.Reasons, "; ")), rec.Position)
	}
	out, err := p.executor.Execute(ctx, rec)
	if err != nil {
		span.RecordError(err)
		return unexpected(rec, action, err)
	}
	return withPosition(out, rec.Position)
}

func unexpected(rec domainerp.ProductRecord, action domainerp.Action, err error) domainerp.Outcome {
	msg := fmt.Sprintf("Failed to process SKU: %s - %s", rec.SKU, err.Error())
	return withPosition(domainerp.Failed(rec.SKU, action, msg), rec.Position)
}

func withPosition(o domainerp.Outcome, position int) domainerp.Outcome {
	o.Position = position
	return o
}
