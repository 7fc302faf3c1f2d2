package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pallets-api/internal/application/dto"
	appledger "github.com/jhoicas/Pallets-api/internal/application/ledger"
	"github.com/jhoicas/Pallets-api/internal/application/reports"
)

// LedgerHandler maneja los movimientos del libro y su conciliación.
type LedgerHandler struct {
	apply   *appledger.ApplyTransactionUseCase
	reports *reports.ReportUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(apply *appledger.ApplyTransactionUseCase, reportsUC *reports.ReportUseCase) *LedgerHandler {
	return &LedgerHandler{apply: apply, reports: reportsUC}
}

// ApplyTransaction godoc
// @Summary      Aplicar un movimiento a una estiba
// @Description  Única vía de mutación: valida, aplica y anexa al libro en una
// @Description  sola transacción. Operaciones: entry, exit, level_change,
// @Description  status_change, stock_adjust.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Identificador de la estiba"
// @Param        body  body  dto.TransactionRequest  true  "operation y sus parámetros"
// @Success      200   {object}  dto.UnitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/units/{id}/transactions [post]
func (h *LedgerHandler) ApplyTransaction(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.TransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	unit, err := h.apply.Apply(c.Context(), appledger.TransactionInputDTO{
		UnitID:    id,
		Operation: in.Operation,
		Quantity:  in.Quantity,
		Level:     in.Level,
		Status:    in.Status,
		Label:     in.Label,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewUnitResponse(unit))
}

// RecentLogs godoc
// @Summary      Últimos movimientos del sistema
// @Tags         ledger
// @Produce      json
// @Param        limit  query  int  false  "Cantidad de filas"  default(20)
// @Success      200    {array}  dto.TransactionLogResponse
// @Router       /api/logs [get]
func (h *LedgerHandler) RecentLogs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	out, err := h.reports.RecentTransactions(c.Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// VerifyAll godoc
// @Summary      Conciliar el sistema completo
// @Description  Reproduce el libro de cada estiba y compara contra la
// @Description  cantidad almacenada.
// @Tags         ledger
// @Produce      json
// @Success      200  {object}  dto.VerifyReportResponse
// @Router       /api/ledger/verify [get]
func (h *LedgerHandler) VerifyAll(c *fiber.Ctx) error {
	out, err := h.reports.VerifyAll(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// VerifyUnit godoc
// @Summary      Conciliar una estiba
// @Tags         ledger
// @Produce      json
// @Param        id   path  string  true  "Identificador de la estiba"
// @Success      200  {object}  dto.VerifyResultResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/verify/{id} [get]
func (h *LedgerHandler) VerifyUnit(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.reports.VerifyUnit(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
