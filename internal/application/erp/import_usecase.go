package erp

import (
	"context"

	domainerp "github.com/jhoicas/erp-integration/internal/domain/erp"
)

// RecordSource lee los registros de producto exportados por el ERP.
type RecordSource interface {
	ReadRecords(ctx context.Context, path string) ([]domainerp.ProductRecord, error)
}

// BatchProcessor procesa un lote ya decodificado. Lo implementa *Processor.
type BatchProcessor interface {
	ProcessBatch(ctx context.Context, records []domainerp.ProductRecord) (domainerp.BatchReport, error)
}

// ImportUseCase corrida completa de importación: leer, decodificar y procesar el lote.
type ImportUseCase struct {
	source    RecordSource
	processor BatchProcessor
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(source RecordSource, processor BatchProcessor) *ImportUseCase {
	return &ImportUseCase{source: source, processor: processor}
}

// RunFile importa el archivo indicado. Los errores de lectura se devuelven tal cual;
// un archivo sin registros retorna domain.ErrEmptyBatch.
func (uc *ImportUseCase) RunFile(ctx context.Context, path string) (domainerp.BatchReport, error) {
	records, err := uc.source.ReadRecords(ctx, path)
	if err != nil {
		return domainerp.BatchReport{}, err
	}
	return uc.processor.ProcessBatch(ctx, records)
}

// RunPayload importa un documento JSON recibido directamente (por ejemplo, por HTTP).
func (uc *ImportUseCase) RunPayload(ctx context.Context, data []byte) (domainerp.BatchReport, error) {
	records, err := domainerp.DecodeRecords(data)
	if err != nil {
		return domainerp.BatchReport{}, err
	}
	return uc.processor.ProcessBatch(ctx, records)
}
