package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/billing"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/dto"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/ports"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain"
)

// BillingHandler cobros: cuentas pendientes, liquidación y periodos de cobro.
type BillingHandler struct {
	periods     *billing.PeriodUseCase
	collections *billing.CollectionUseCase
}

// NewBillingHandler construye el handler de cobros.
func NewBillingHandler(periods *billing.PeriodUseCase, collections *billing.CollectionUseCase) *BillingHandler {
	return &BillingHandler{periods: periods, collections: collections}
}

// PendingAccounts godoc
// @Summary      Cuentas pendientes por usuario
// @Tags         cobros
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CuentaPendiente
// @Router       /cobros/ [get]
func (h *BillingHandler) PendingAccounts(c *fiber.Ctx) error {
	list, err := h.collections.PendingAccounts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// UserDetail godoc
// @Summary      Ventas pendientes de un usuario
// @Tags         cobros
// @Security     Bearer
// @Produce      json
// @Param        usuario  path  string  true  "username"
// @Success      200  {array}  dto.LineaDetalle
// @Router       /cobros/detalle/{usuario} [get]
func (h *BillingHandler) UserDetail(c *fiber.Ctx) error {
	list, err := h.collections.UserDetail(c.UserContext(), c.Params("usuario"))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// FortnightSummary godoc
// @Summary      Resumen de quincena
// @Tags         cobros
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ResumenUsuario
// @Router       /cobros/resumen-quincena [get]
func (h *BillingHandler) FortnightSummary(c *fiber.Ctx) error {
	list, err := h.collections.FortnightSummary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// Liquidate godoc
// @Summary      Liquidar cuenta de un usuario
// @Description  Mueve sus ventas pendientes (fuera de periodos) al historial.
// @Tags         cobros
// @Security     Bearer
// @Produce      json
// @Param        usuario  path  string  true  "username"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /cobros/liquidar/{usuario} [post]
func (h *BillingHandler) Liquidate(c *fiber.Ctx) error {
	out, err := h.collections.LiquidateUser(c.UserContext(), c.Params("usuario"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Pay godoc
// @Summary      Pagar cuenta de un usuario
// @Description  Salda sus ventas pendientes (fuera de periodos) si el monto cubre toda la deuda.
// @Tags         cobros
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PagoRequest  true  "usuario y monto"
// @Success      200   {object}  dto.PagoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /cobros/pagar [post]
func (h *BillingHandler) Pay(c *fiber.Ctx) error {
	var in dto.PagoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.collections.PayAccount(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Preview godoc
// @Summary      Previsualizar periodo de cobro
// @Tags         cobros
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PeriodRangeRequest  true  "inicio y fin (YYYY-MM-DD)"
// @Success      200   {object}  dto.PreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /cobros/preview [post]
func (h *BillingHandler) Preview(c *fiber.Ctx) error {
	inicio, fin, err := parseRange(c)
	if err != nil {
		return err
	}
	out, err := h.periods.Preview(c.UserContext(), inicio, fin)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Generate godoc
// @Summary      Generar periodo de cobro
// @Tags         cobros
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PeriodRangeRequest  true  "inicio y fin (YYYY-MM-DD)"
// @Success      201   {object}  dto.GenerateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /cobros/generar [post]
func (h *BillingHandler) Generate(c *fiber.Ctx) error {
	inicio, fin, err := parseRange(c)
	if err != nil {
		return err
	}
	out, err := h.periods.Generate(c.UserContext(), inicio, fin)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPeriods godoc
// @Summary      Listar periodos de cobro
// @Tags         cobros
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PeriodoResponse
// @Router       /cobros/periodos [get]
func (h *BillingHandler) ListPeriods(c *fiber.Ctx) error {
	list, err := h.periods.ListPeriods(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// PeriodSummary godoc
// @Summary      Resumen por usuario de un periodo
// @Tags         cobros
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del periodo"
// @Success      200  {array}   dto.CobroResumen
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /cobros/periodos/{id}/resumen [get]
func (h *BillingHandler) PeriodSummary(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	list, err := h.periods.PeriodSummary(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// PeriodDetail godoc
// @Summary      Ventas de un periodo
// @Tags         cobros
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del periodo"
// @Success      200  {array}   dto.DetalleVenta
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /cobros/periodos/{id}/detalle [get]
func (h *BillingHandler) PeriodDetail(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	list, err := h.periods.PeriodDetail(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// MarkSettled godoc
// @Summary      Marcar periodo como descontado
// @Description  Idempotente: repetirlo sobre un periodo descontado devuelve already=true.
// @Tags         cobros
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del periodo"
// @Success      200  {object}  dto.MarkSettledResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /cobros/periodos/{id}/marcar-descontado [post]
func (h *BillingHandler) MarkSettled(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.periods.MarkSettled(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar periodo
// @Tags         cobros
// @Security     Bearer
// @Produce      octet-stream
// @Param        id        path   int     true   "ID del periodo"
// @Param        format    query  string  false  "csv (por defecto), xlsx o pdf"
// @Param        encoding  query  string  false  "utf-8 (por defecto) o windows-1252; sólo csv"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /cobros/periodos/{id}/export [get]
func (h *BillingHandler) Export(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	res, err := h.periods.Export(c.UserContext(), id, c.Query("format"), ports.ExportOptions{Encoding: c.Query("encoding")})
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, res.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, res.Filename))
	return c.Send(res.Body)
}

func parseRange(c *fiber.Ctx) (inicio, fin time.Time, err error) {
	var in dto.PeriodRangeRequest
	if err = c.BodyParser(&in); err != nil {
		return inicio, fin, fmt.Errorf("cuerpo inválido: %w", domain.ErrInvalidInput)
	}
	if inicio, err = billing.ParseDate(in.Inicio); err != nil {
		return inicio, fin, err
	}
	if fin, err = billing.ParseDate(in.Fin); err != nil {
		return inicio, fin, err
	}
	return inicio, fin, nil
}
