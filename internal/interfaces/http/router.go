package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperp "github.com/jhoicas/erp-integration/internal/application/erp"
	"github.com/jhoicas/erp-integration/pkg/logger"
)

// RoleAdmin rol autorizado para disparar corridas del ERP.
const RoleAdmin = "admin"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ImportUC     *apperp.ImportUseCase
	CancelUC     *apperp.OrderCancelUseCase
	Console      apperp.Presenter
	Log          *logger.Logger
	ProductsPath string
	JWTSecret    string
	Gatherer     prometheus.Gatherer // nil = sin /metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	// ERP (protegido: Bearer Token + rol admin)
	erpGroup := api.Group("/erp", AuthMiddleware(deps.JWTSecret), RequireRole(RoleAdmin))
	erpHandler := NewERPHandler(deps.ImportUC, deps.CancelUC, deps.Console, deps.Log, deps.ProductsPath)
	erpGroup.Post("/import", erpHandler.Import)
	erpGroup.Post("/import/file", erpHandler.ImportFile)
	erpGroup.Post("/orders/:increment_id/cancel", erpHandler.CancelOrder)
}
