package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Pallets-api/internal/application/dto"
)

// PDFReportUseCase genera el reporte PDF tabulado del inventario de estibas.
// Aplica los mismos filtros que el listado JSON/CSV y delega el dibujo en el
// generador inyectado.
type PDFReportUseCase struct {
	reports   *ReportUseCase
	generator ReportGenerator
}

// NewPDFReportUseCase construye el caso de uso.
func NewPDFReportUseCase(reports *ReportUseCase, generator ReportGenerator) *PDFReportUseCase {
	return &PDFReportUseCase{reports: reports, generator: generator}
}

// UnitsPDF arma el reporte con las estibas que cumplen el filtro.
//
// Retorna:
//   - (pdfBytes, filename, nil)   si todo sale bien.
//   - domain.ErrInvalidInput      si el filtro trae valores fuera de dominio.
func (uc *PDFReportUseCase) UnitsPDF(ctx context.Context, q dto.ReportQuery) (pdfBytes []byte, filename string, err error) {
	units, err := uc.reports.ListUnits(ctx, q)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	pdfBytes, err = uc.generator.Generate(units, now)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("estibas_%s.pdf", now.Format("20060102"))
	return pdfBytes, filename, nil
}
