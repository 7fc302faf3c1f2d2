package http

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pallets-api/internal/application/dto"
	"github.com/jhoicas/Pallets-api/internal/application/reports"
)

// ReportHandler maneja los reportes de estibas y el resumen del dashboard.
type ReportHandler struct {
	uc    *reports.ReportUseCase
	pdfUC *reports.PDFReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase, pdfUC *reports.PDFReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc, pdfUC: pdfUC}
}

// Units godoc
// @Summary      Reporte de estibas
// @Description  Listado filtrado sin paginar, pensado para exportar. Con
// @Description  format=csv devuelve el archivo en texto plano y con
// @Description  format=pdf el reporte tabulado imprimible.
// @Tags         reports
// @Produce      json
// @Produce      text/csv
// @Produce      application/pdf
// @Param        status           query  string  false  "Filtrar por estado"
// @Param        level            query  string  false  "Filtrar por nivel"
// @Param        critical_below   query  int     false  "Stock crítico: quantity < N"
// @Param        due_within_days  query  int     false  "Fecha límite dentro de N días"
// @Param        order_by         query  string  false  "deadline | last_updated | quantity"
// @Param        format           query  string  false  "json (default) | csv | pdf"
// @Success      200  {array}   dto.UnitResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/units [get]
func (h *ReportHandler) Units(c *fiber.Ctx) error {
	var q dto.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}

	if q.Format == "pdf" {
		out, filename, err := h.pdfUC.UnitsPDF(c.Context(), q)
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
		return c.Send(out)
	}

	items, err := h.uc.ListUnits(c.Context(), q)
	if err != nil {
		return respondError(c, err)
	}

	if q.Format == "csv" {
		var buf bytes.Buffer
		if err := reports.WriteUnitsCSV(&buf, items); err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="estibas.csv"`)
		return c.Send(buf.Bytes())
	}
	return c.JSON(items)
}

// Summary devuelve el resumen de la pantalla principal: últimas estibas
// tocadas y últimos movimientos del libro.
// GET /api/dashboard/summary
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	units, err := h.uc.RecentUnits(c.Context(), 0)
	if err != nil {
		return respondError(c, err)
	}
	logs, err := h.uc.RecentTransactions(c.Context(), 0)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.DashboardSummaryResponse{
		RecentUnits:        units,
		RecentTransactions: logs,
	})
}
