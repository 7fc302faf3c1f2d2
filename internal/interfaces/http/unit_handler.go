package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pallets-api/internal/application/dto"
	appledger "github.com/jhoicas/Pallets-api/internal/application/ledger"
	"github.com/jhoicas/Pallets-api/internal/application/reports"
)

// UnitHandler maneja las peticiones HTTP de estibas: alta, consulta, token y
// etiqueta.
type UnitHandler struct {
	register *appledger.RegisterUnitUseCase
	reports  *reports.ReportUseCase
	labels   *reports.LabelUseCase
}

// NewUnitHandler construye el handler.
func NewUnitHandler(register *appledger.RegisterUnitUseCase, reportsUC *reports.ReportUseCase, labels *reports.LabelUseCase) *UnitHandler {
	return &UnitHandler{register: register, reports: reportsUC, labels: labels}
}

// Register godoc
// @Summary      Registrar estiba
// @Description  Da de alta una estiba, genera su identificador y devuelve el
// @Description  token QR en PNG (base64 en el JSON).
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterUnitRequest  true  "label, company, level, deadline (YYYY-MM-DD), initial_quantity"
// @Success      201   {object}  dto.RegisterUnitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/units [post]
func (h *UnitHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	deadline, ok := in.ParseDeadline()
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "deadline debe ser YYYY-MM-DD"})
	}

	unit, tokenPNG, err := h.register.Register(c.Context(), appledger.RegisterInputDTO{
		Label:           in.Label,
		Company:         in.Company,
		Level:           in.Level,
		Deadline:        deadline,
		InitialQuantity: in.InitialQuantity,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterUnitResponse{
		Unit:     dto.NewUnitResponse(unit),
		TokenPNG: tokenPNG,
	})
}

// List godoc
// @Summary      Listar estibas
// @Tags         units
// @Produce      json
// @Param        status           query  string  false  "Filtrar por estado"
// @Param        level            query  string  false  "Filtrar por nivel"
// @Param        critical_below   query  int     false  "Stock crítico: quantity < N"
// @Param        due_within_days  query  int     false  "Fecha límite dentro de N días"
// @Param        order_by         query  string  false  "deadline | last_updated | quantity"
// @Param        limit            query  int     false  "Límite"   default(20)
// @Param        offset           query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.UnitListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/units [get]
func (h *UnitHandler) List(c *fiber.Ctx) error {
	var q dto.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	q.DefaultPage()
	if q.Limit > 100 {
		q.Limit = 100
	}

	items, err := h.reports.ListUnits(c.Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.UnitListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Count: len(items)},
	})
}

// GetByID godoc
// @Summary      Obtener estiba por ID
// @Tags         units
// @Produce      json
// @Param        id   path  string  true  "Identificador de la estiba"
// @Success      200  {object}  dto.UnitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/units/{id} [get]
func (h *UnitHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.reports.GetUnit(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Token godoc
// @Summary      Token QR de la estiba
// @Description  Regenera el PNG del token con la cantidad actual.
// @Tags         units
// @Produce      png
// @Param        id   path  string  true  "Identificador de la estiba"
// @Success      200  {string}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/units/{id}/token [get]
func (h *UnitHandler) Token(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	img, err := h.labels.TokenPNG(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Type("png")
	return c.Send(img)
}

// Label godoc
// @Summary      Etiqueta imprimible de la estiba
// @Tags         units
// @Produce      application/pdf
// @Param        id   path  string  true  "Identificador de la estiba"
// @Success      200  {string}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/units/{id}/label [get]
func (h *UnitHandler) Label(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	doc, err := h.labels.LabelPDF(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Type("pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", id+".pdf"))
	return c.Send(doc)
}

// Logs godoc
// @Summary      Historial de una estiba
// @Description  La estiba junto con su libro completo en orden de anexado.
// @Tags         units
// @Produce      json
// @Param        id   path  string  true  "Identificador de la estiba"
// @Success      200  {object}  dto.UnitHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/units/{id}/logs [get]
func (h *UnitHandler) Logs(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.reports.UnitHistory(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
