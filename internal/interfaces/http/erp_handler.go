package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-integration/internal/application/dto"
	apperp "github.com/jhoicas/erp-integration/internal/application/erp"
	"github.com/jhoicas/erp-integration/internal/domain"
	domainerp "github.com/jhoicas/erp-integration/internal/domain/erp"
	"github.com/jhoicas/erp-integration/pkg/logger"
)

// importRunner contrato mínimo del caso de uso de importación; lo implementa *apperp.ImportUseCase.
type importRunner interface {
	RunFile(ctx context.Context, path string) (domainerp.BatchReport, error)
	RunPayload(ctx context.Context, data []byte) (domainerp.BatchReport, error)
}

// orderCanceler lo implementa *apperp.OrderCancelUseCase.
type orderCanceler interface {
	MarkCanceled(ctx context.Context, incrementID string) apperp.CancelOutcome
}

// ERPHandler expone la importación de productos y la cancelación de pedidos (protegido, rol admin).
type ERPHandler struct {
	importer     importRunner
	canceler     orderCanceler
	console      apperp.Presenter
	log          *logger.Logger
	productsPath string
}

// NewERPHandler construye el handler. productsPath es el archivo usado por POST /import/file.
// log puede ser nil.
func NewERPHandler(importer importRunner, canceler orderCanceler, console apperp.Presenter, log *logger.Logger, productsPath string) *ERPHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ERPHandler{importer: importer, canceler: canceler, console: console, log: log, productsPath: productsPath}
}

// audit registra qué operador disparó la operación.
func (h *ERPHandler) audit(c *fiber.Ctx, operation string) {
	h.log.Info().
		Str("user_id", GetUserID(c)).
		Str("role", GetRole(c)).
		Str("operation", operation).
		Msg("operación ERP solicitada")
}

// Import procesa el arreglo JSON de productos recibido en el cuerpo.
// @Router /api/erp/import [post]
func (h *ERPHandler) Import(c *fiber.Ctx) error {
	h.audit(c, "import")
	report, err := h.importer.RunPayload(c.UserContext(), c.Body())
	return h.respondImport(c, report, err)
}

// ImportFile procesa el archivo de productos configurado en el servidor.
// @Router /api/erp/import/file [post]
func (h *ERPHandler) ImportFile(c *fiber.Ctx) error {
	h.audit(c, "import_file")
	report, err := h.importer.RunFile(c.UserContext(), h.productsPath)
	if err != nil && !errors.Is(err, domain.ErrEmptyBatch) {
		msg := "Failed to read ERP file: " + err.Error()
		h.console.Error(msg)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "READ_FAILED", Message: msg})
	}
	return h.respondImport(c, report, err)
}

func (h *ERPHandler) respondImport(c *fiber.Ctx, report domainerp.BatchReport, err error) error {
	switch {
	case errors.Is(err, domain.ErrEmptyBatch):
		h.console.Error("No products found in file.")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "EMPTY_BATCH", Message: "No products found in file."})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	apperp.PresentReport(h.console, report)
	return c.Status(fiber.StatusOK).JSON(dto.ToImportResponse(report))
}

// CancelOrder marca el pedido como cancelado en el export del ERP.
// @Router /api/erp/orders/{increment_id}/cancel [post]
func (h *ERPHandler) CancelOrder(c *fiber.Ctx) error {
	h.audit(c, "cancel_order")
	out := h.canceler.MarkCanceled(c.UserContext(), strings.TrimSpace(c.Params("increment_id")))
	apperp.PresentCancel(h.console, out)

	resp := dto.CancelOrderResponse{IncrementID: out.IncrementID, Marked: out.Status == apperp.CancelMarked, Message: out.Message()}
	switch out.Status {
	case apperp.CancelMarked:
		return c.Status(fiber.StatusOK).JSON(resp)
	case apperp.CancelMissingID:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_INCREMENT_ID", Message: resp.Message})
	case apperp.CancelNoExportFile, apperp.CancelOrderNotFound:
		return c.Status(fiber.StatusNotFound).JSON(resp)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "WRITE_FAILED", Message: resp.Message})
	}
}
