package cli

import (
	appledger "github.com/jhoicas/Pallets-api/internal/application/ledger"
	"github.com/jhoicas/Pallets-api/internal/application/reports"
	"github.com/jhoicas/Pallets-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Pallets-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Pallets-api/internal/infrastructure/token"
)

// ledgerApp agrupa el store SQLite y los casos de uso ya cableados. Cada
// subcomando abre la base, opera y cierra.
type ledgerApp struct {
	store      *sqlite.Store
	apply      *appledger.ApplyTransactionUseCase
	register   *appledger.RegisterUnitUseCase
	scan       *appledger.ScanUseCase
	reports    *reports.ReportUseCase
	pdfReports *reports.PDFReportUseCase
	labels     *reports.LabelUseCase
}

// openApp abre (o crea) la base y cablea la aplicación completa.
func openApp(path string) (*ledgerApp, error) {
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, err
	}

	units := sqlite.NewUnitRepository(store.DB())
	logs := sqlite.NewTransactionLogRepository(store.DB())
	runner := sqlite.NewTxRunner(store)
	codec := token.NewCodec(0)

	apply := appledger.NewApplyTransactionUseCase(runner)
	reportUC := reports.NewReportUseCase(units, logs)
	return &ledgerApp{
		store:      store,
		apply:      apply,
		register:   appledger.NewRegisterUnitUseCase(runner, codec),
		scan:       appledger.NewScanUseCase(codec, apply, units),
		reports:    reportUC,
		pdfReports: reports.NewPDFReportUseCase(reportUC, pdf.NewMarotoReportGenerator()),
		labels:     reports.NewLabelUseCase(units, codec, pdf.NewMarotoLabelGenerator()),
	}, nil
}

func (a *ledgerApp) Close() error {
	return a.store.Close()
}
