package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/audit"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/dto"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/inventory"
)

// InventoryHandler entradas de mercadería y tomas físicas.
type InventoryHandler struct {
	entries *inventory.EntryUseCase
	counts  *audit.CountUseCase
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(entries *inventory.EntryUseCase, counts *audit.CountUseCase) *InventoryHandler {
	return &InventoryHandler{entries: entries, counts: counts}
}

// RegisterEntry godoc
// @Summary      Registrar entrada de mercadería
// @Description  Suma stock, actualiza el costo y recalcula el precio de venta con el margen del producto.
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InventoryEntryRequest  true  "producto_id, cantidad, costo_unitario"
// @Success      201   {object}  dto.InventoryEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /inventario/entrada [post]
func (h *InventoryHandler) RegisterEntry(c *fiber.Ctx) error {
	var in dto.InventoryEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.ProductoID <= 0 || in.Cantidad <= 0 || !in.CostoUnitario.IsPositive() {
		return badRequest(c, "VALIDATION", "producto_id, cantidad > 0 y costo_unitario > 0 son requeridos")
	}
	out, err := h.entries.RegisterEntry(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListEntries godoc
// @Summary      Listar entradas de mercadería
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InventoryEntryResponse
// @Router       /inventario/entradas [get]
func (h *InventoryHandler) ListEntries(c *fiber.Ctx) error {
	list, err := h.entries.ListEntries(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// RecordPhysicalCount godoc
// @Summary      Registrar toma física
// @Description  Compara lo contado con el stock actual. Los productos inexistentes se omiten y se reportan.
// @Tags         auditoria
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PhysicalCountRequest  true  "usuarios participantes y detalles contados"
// @Success      201   {object}  dto.PhysicalCountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /auditoria/toma-fisica [post]
func (h *InventoryHandler) RecordPhysicalCount(c *fiber.Ctx) error {
	var in dto.PhysicalCountRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.counts.RecordPhysicalCount(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetDifferences godoc
// @Summary      Diferencias de una auditoría
// @Tags         auditoria
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la auditoría"
// @Success      200  {array}   dto.DiferenciaInventario
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /auditorias/diferencias/{id} [get]
func (h *InventoryHandler) GetDifferences(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	list, err := h.counts.GetDifferences(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(list)
}
