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

	appledger "github.com/jhoicas/Pallets-api/internal/application/ledger"
	"github.com/jhoicas/Pallets-api/internal/application/reports"
	"github.com/jhoicas/Pallets-api/internal/domain/repository"
	infrapdf "github.com/jhoicas/Pallets-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Pallets-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Pallets-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Pallets-api/internal/infrastructure/token"
	httpRouter "github.com/jhoicas/Pallets-api/internal/interfaces/http"
	"github.com/jhoicas/Pallets-api/pkg/config"
	"github.com/jhoicas/Pallets-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Almacenamiento del libro según el driver configurado: postgres para el
	// servicio multi-estación, sqlite para una instalación de una sola máquina.
	var (
		units  repository.UnitRepository
		logs   repository.TransactionLogRepository
		runner appledger.TxRunner
	)
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.DB.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DB.SQLitePath).Msg("abrir base sqlite")
		}
		defer store.Close()
		units = sqlite.NewUnitRepository(store.DB())
		logs = sqlite.NewTransactionLogRepository(store.DB())
		runner = sqlite.NewTxRunner(store)
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		units = postgres.NewUnitRepository(pool)
		logs = postgres.NewTransactionLogRepository(pool)
		runner = postgres.NewTxRunner(pool)
	}

	codec := token.NewCodec(0)

	applyUC := appledger.NewApplyTransactionUseCase(runner)
	registerUC := appledger.NewRegisterUnitUseCase(runner, codec)
	scanUC := appledger.NewScanUseCase(codec, applyUC, units)
	reportUC := reports.NewReportUseCase(units, logs)
	pdfReportUC := reports.NewPDFReportUseCase(reportUC, infrapdf.NewMarotoReportGenerator())
	labelUC := reports.NewLabelUseCase(units, codec, infrapdf.NewMarotoLabelGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Pallets API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegisterUC:  registerUC,
		ApplyUC:     applyUC,
		ScanUC:      scanUC,
		ReportUC:    reportUC,
		PDFReportUC: pdfReportUC,
		LabelUC:     labelUC,
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
}
