package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pallets-api/internal/application/dto"
	appledger "github.com/jhoicas/Pallets-api/internal/application/ledger"
)

// ScanHandler maneja el flujo de escaneo: consulta por token y
// entrada/salida en un solo paso.
type ScanHandler struct {
	scan *appledger.ScanUseCase
}

// NewScanHandler construye el handler.
func NewScanHandler(scan *appledger.ScanUseCase) *ScanHandler {
	return &ScanHandler{scan: scan}
}

// Lookup godoc
// @Summary      Consultar una estiba por su token
// @Description  Decodifica el texto emitido por el lector y devuelve la carga
// @Description  junto con el estado actual. registered=false si el lote aún
// @Description  no está dado de alta.
// @Tags         scan
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanRequest  true  "data: texto leído del QR"
// @Success      200   {object}  dto.ScanResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/scan [post]
func (h *ScanHandler) Lookup(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	payload, unit, err := h.scan.Lookup(c.Context(), []byte(in.Data))
	if err != nil {
		return respondError(c, err)
	}
	out := dto.ScanResponse{
		Payload:    dto.NewTokenPayloadResponse(payload),
		Registered: unit != nil,
	}
	if unit != nil {
		resp := dto.NewUnitResponse(unit)
		out.Unit = &resp
	}
	return c.JSON(out)
}

// Process godoc
// @Summary      Aplicar una entrada o salida desde un escaneo
// @Description  Decodifica el token y aplica la operación con la cantidad de
// @Description  la carga. Una entrada sobre un lote desconocido lo da de
// @Description  alta; una salida sobre un lote desconocido falla.
// @Tags         scan
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanProcessRequest  true  "data y operation (entry | exit)"
// @Success      200   {object}  dto.UnitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/scan/transactions [post]
func (h *ScanHandler) Process(c *fiber.Ctx) error {
	var in dto.ScanProcessRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	unit, err := h.scan.Process(c.Context(), []byte(in.Data), in.Operation)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewUnitResponse(unit))
}
