package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	apperp "github.com/jhoicas/erp-integration/internal/application/erp"
	"github.com/jhoicas/erp-integration/internal/domain"
	"github.com/jhoicas/erp-integration/internal/infrastructure/erpfile"
	"github.com/jhoicas/erp-integration/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/erp-integration/internal/interfaces/http"
	"github.com/jhoicas/erp-integration/pkg/config"
	"github.com/jhoicas/erp-integration/pkg/logger"
	"github.com/jhoicas/erp-integration/pkg/tracing"
)

const version = "1.0.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run ejecuta el subcomando y devuelve el código de salida.
func run(args []string, stdout io.Writer) int {
	cmd, err := parseCommand(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		return 1
	}

	log, err := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		File:  cfg.ERP.LogPath(),
		Out:   os.Stderr,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer log.Close()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("command", cmd.name).
		Msg("iniciando")

	ctx := context.Background()
	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		ServiceName:    cfg.App.Name,
		ServiceVersion: version,
		Endpoint:       cfg.Otel.Endpoint,
		AuthHeader:     cfg.Otel.AuthHeader,
	})
	if err != nil {
		log.Error().Err(err).Msg("configurar tracing")
		return 1
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn().Err(err).Msg("cerrar tracing")
		}
	}()

	switch cmd.name {
	case cmdCancelOrder:
		console := logger.NewConsole(stdout, log)
		return cancelOrder(ctx, cfg, console, cmd.arg)
	case cmdServe:
		return serve(ctx, cfg, log)
	default:
		console := logger.NewConsole(stdout, log)
		return importFile(ctx, cfg, log, console, cmd.arg)
	}
}

// importFile corre la importación de productos desde archivo. El archivo se lee antes de
// abrir la conexión a PostgreSQL: un archivo ausente o vacío no requiere base de datos.
func importFile(ctx context.Context, cfg *config.Config, log *logger.Logger, console *logger.Console, path string) int {
	if path == "" {
		path = cfg.ERP.ProductsPath()
	} else {
		path = cfg.ERP.Resolve(path)
	}

	reader, err := erpfile.NewReader(cfg.ERP.FileEncoding)
	if err != nil {
		console.Error(err.Error())
		return 1
	}
	records, err := reader.ReadRecords(ctx, path)
	if err != nil {
		console.Error("Failed to read ERP file: " + err.Error())
		return 1
	}
	if len(records) == 0 {
		console.Error("No products found in file.")
		return 1
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("conexión a PostgreSQL")
		console.Error("Failed to connect to catalog database: " + err.Error())
		return 1
	}
	defer pool.Close()

	report, err := newProcessor(pool, nil).ProcessBatch(ctx, records)
	if errors.Is(err, domain.ErrEmptyBatch) {
		console.Error("No products found in file.")
		return 1
	}
	apperp.PresentReport(console, report)
	return 0
}

// cancelOrder marca un pedido como cancelado en el export de pedidos.
func cancelOrder(ctx context.Context, cfg *config.Config, console *logger.Console, incrementID string) int {
	uc := apperp.NewOrderCancelUseCase(erpfile.NewOrderStore(cfg.ERP.OrdersPath()))
	out := uc.MarkCanceled(ctx, incrementID)
	apperp.PresentCancel(console, out)
	if out.IsError() {
		return 1
	}
	return 0
}

// serve expone la integración por HTTP hasta recibir SIGINT/SIGTERM.
func serve(ctx context.Context, cfg *config.Config, log *logger.Logger) int {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("conexión a PostgreSQL")
		return 1
	}
	defer pool.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	importUC, err := newImportUseCase(cfg, pool, apperp.NewMetrics(reg))
	if err != nil {
		log.Error().Err(err).Msg("lector del ERP")
		return 1
	}
	cancelUC := apperp.NewOrderCancelUseCase(erpfile.NewOrderStore(cfg.ERP.OrdersPath()))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Minute * 5,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    64 * 1024 * 1024,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		ImportUC:     importUC,
		CancelUC:     cancelUC,
		Console:      logger.NewConsole(nil, log),
		Log:          log,
		ProductsPath: cfg.ERP.ProductsPath(),
		JWTSecret:    cfg.JWT.Secret,
		Gatherer:     reg,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	log.Info().Msg("aplicación detenida")
	return 0
}

func newProcessor(q postgres.Querier, metrics *apperp.Metrics) *apperp.Processor {
	return apperp.NewProcessor(apperp.NewExecutor(postgres.NewCatalogRepository(q)), metrics)
}

func newImportUseCase(cfg *config.Config, q postgres.Querier, metrics *apperp.Metrics) (*apperp.ImportUseCase, error) {
	reader, err := erpfile.NewReader(cfg.ERP.FileEncoding)
	if err != nil {
		return nil, err
	}
	return apperp.NewImportUseCase(reader, newProcessor(q, metrics)), nil
}
