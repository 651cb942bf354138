package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Almacen-api/internal/application/forms"
	"github.com/jhoicas/Almacen-api/internal/application/importer"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/reservation"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/csvform"
	infrapdf "github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/supplier"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	dbLog := log.Component("db")
	httpLog := log.Component("http")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		dbLog.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.ApplyMigrations(ctx, pool); err != nil {
		dbLog.Fatal().Err(err).Msg("aplicar migraciones")
	}

	// Repositorios atados al pool (lecturas fuera de transacción)
	partRepo := postgres.NewPartRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	allocationRepo := postgres.NewAllocationRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	schemaRepo := postgres.NewSchemaRepository(pool)

	txRunner := postgres.NewTxRunner(pool, cfg.Store.MaxRetries,
		time.Duration(cfg.Store.BackoffMs)*time.Millisecond)

	// Casos de uso
	stockUC := ledger.NewStockUseCase(txRunner, partRepo, locationRepo, projectRepo)
	queryUC := ledger.NewQueryUseCase(transactionRepo, partRepo, projectRepo, reportRepo)
	reservationUC := reservation.NewUseCase(txRunner, partRepo, locationRepo, projectRepo, allocationRepo)
	batchImporter := importer.NewBatchImporter(txRunner, partRepo, locationRepo, projectRepo, cfg.Import.MaxRows)
	catalogImporter := importer.NewCatalogImporter(partRepo, locationRepo, batchImporter)
	partUC := usecase.NewPartUseCase(partRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	projectUC := usecase.NewProjectUseCase(projectRepo, bomRepo, partRepo)
	reportUC := usecase.NewReportUseCase(reportRepo, projectRepo)
	schemaUC := usecase.NewSchemaUseCase(schemaRepo)
	stockQueryUC := usecase.NewStockQueryUseCase(stockRepo)
	formsUC := forms.NewUseCase(projectRepo, bomRepo, partRepo, stockRepo, allocationRepo)

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		// Los valores de query/params cruzan a los casos de uso y sobreviven
		// al handler; sin esto fasthttp reutiliza el buffer subyacente.
		Immutable:    true,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Stock:        httpRouter.NewStockHandler(stockUC, stockQueryUC),
		Reservations: httpRouter.NewReservationHandler(reservationUC),
		Ledger:       httpRouter.NewLedgerHandler(queryUC),
		Imports:      httpRouter.NewImportHandler(batchImporter, catalogImporter, xlsx.NewReader(), supplier.NewReader()),
		Parts:        httpRouter.NewPartHandler(partUC),
		Locations:    httpRouter.NewLocationHandler(locationUC),
		Projects: httpRouter.NewProjectHandler(projectUC, reportUC, reservationUC, formsUC,
			map[string]forms.Renderer{
				"pdf": infrapdf.NewFormRenderer(),
				"csv": csvform.NewFormRenderer(),
			}),
		Schema: httpRouter.NewSchemaHandler(schemaUC),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			httpLog.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		httpLog.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
