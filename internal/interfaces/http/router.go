package http

import (
	"github.com/gofiber/fiber/v2"

	appledger "github.com/jhoicas/Pallets-api/internal/application/ledger"
	"github.com/jhoicas/Pallets-api/internal/application/reports"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegisterUC  *appledger.RegisterUnitUseCase
	ApplyUC     *appledger.ApplyTransactionUseCase
	ScanUC      *appledger.ScanUseCase
	ReportUC    *reports.ReportUseCase
	PDFReportUC *reports.PDFReportUseCase
	LabelUC     *reports.LabelUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Estibas: alta, consulta, token y etiqueta
	units := api.Group("/units")
	unitHandler := NewUnitHandler(deps.RegisterUC, deps.ReportUC, deps.LabelUC)
	units.Post("/", unitHandler.Register)
	units.Get("/", unitHandler.List)
	units.Get("/:id", unitHandler.GetByID)
	units.Get("/:id/token", unitHandler.Token)
	units.Get("/:id/label", unitHandler.Label)
	units.Get("/:id/logs", unitHandler.Logs)

	// Movimientos del libro y conciliación
	ledgerHandler := NewLedgerHandler(deps.ApplyUC, deps.ReportUC)
	units.Post("/:id/transactions", ledgerHandler.ApplyTransaction)
	api.Get("/logs", ledgerHandler.RecentLogs)
	ledgerGroup := api.Group("/ledger")
	ledgerGroup.Get("/verify", ledgerHandler.VerifyAll)
	ledgerGroup.Get("/verify/:id", ledgerHandler.VerifyUnit)

	// Escaneo de tokens
	scan := api.Group("/scan")
	scanHandler := NewScanHandler(deps.ScanUC)
	scan.Post("/", scanHandler.Lookup)
	scan.Post("/transactions", scanHandler.Process)

	// Reportes y dashboard
	reportHandler := NewReportHandler(deps.ReportUC, deps.PDFReportUC)
	api.Get("/reports/units", reportHandler.Units)
	api.Get("/dashboard/summary", reportHandler.Summary)
}
