package http

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/dto"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/ports"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/sales"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/pkg/logger"
)

// HeaderIdempotencyKey cabecera opcional de POST /ventas.
const HeaderIdempotencyKey = "Idempotency-Key"

const maxIdempotencyKeyLen = 128

// createSaleBody acepta una sola línea ({producto_id, cantidad}) o un lote ({items: [...]}).
type createSaleBody struct {
	dto.SaleItemRequest
	Items []dto.SaleItemRequest `json:"items"`
}

// SaleHandler ventas del usuario autenticado.
type SaleHandler struct {
	uc    *sales.SaleUseCase
	store ports.IdempotencyStore
	ttl   time.Duration
	log   *logger.Logger
}

// NewSaleHandler construye el handler. Si store es nil la cabecera Idempotency-Key se ignora.
func NewSaleHandler(uc *sales.SaleUseCase, store ports.IdempotencyStore, ttl time.Duration, log *logger.Logger) *SaleHandler {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SaleHandler{uc: uc, store: store, ttl: ttl, log: log.Component("ventas")}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Un producto ({producto_id, cantidad}) o varios ({items}); todo o nada.
// @Description  Con Idempotency-Key una respuesta completada se repite sin volver a vender.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                 false  "clave de idempotencia"
// @Param        body             body    dto.CreateSaleRequest  true   "items o producto_id/cantidad"
// @Success      201   {object}  dto.CreateSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /ventas [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in createSaleBody
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	username := GetUsername(c)

	key := c.Get(HeaderIdempotencyKey)
	if key == "" || h.store == nil {
		status, body, err := h.execute(c, username, in)
		if err != nil {
			return err
		}
		return sendJSON(c, status, body)
	}
	if len(key) > maxIdempotencyKeyLen {
		return badRequest(c, "VALIDATION", "Idempotency-Key demasiado larga")
	}

	ctx := c.UserContext()
	scoped := username + ":" + key
	if stored, err := h.store.Get(ctx, scoped); err != nil {
		return err
	} else if stored != nil {
		c.Set("Idempotent-Replayed", "true")
		return sendJSON(c, stored.Status, stored.Body)
	}
	reserved, err := h.store.Reserve(ctx, scoped, h.ttl)
	if err != nil {
		return err
	}
	if !reserved {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "IDEMPOTENCY_IN_PROGRESS",
			Message: "ya hay una venta en curso con esta Idempotency-Key",
		})
	}

	status, body, err := h.execute(c, username, in)
	if err != nil {
		if rerr := h.store.Release(ctx, scoped); rerr != nil {
			h.log.Warn().Err(rerr).Str("key", key).Msg("liberar Idempotency-Key")
		}
		return err
	}
	if err := h.store.Complete(ctx, scoped, ports.StoredResponse{Status: status, Body: body}, h.ttl); err != nil {
		h.log.Warn().Err(err).Str("key", key).Msg("guardar respuesta idempotente")
	}
	return sendJSON(c, status, body)
}

func (h *SaleHandler) execute(c *fiber.Ctx, username string, in createSaleBody) (int, []byte, error) {
	var (
		out any
		err error
	)
	if in.Items != nil {
		out, err = h.uc.CreateSaleBatch(c.UserContext(), username, in.Items)
	} else {
		out, err = h.uc.CreateSale(c.UserContext(), username, in.SaleItemRequest)
	}
	if err != nil {
		return 0, nil, err
	}
	body, err := json.Marshal(out)
	if err != nil {
		return 0, nil, err
	}
	return fiber.StatusCreated, body, nil
}

func sendJSON(c *fiber.Ctx, status int, body []byte) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(status).Send(body)
}

// ListMine godoc
// @Summary      Mis ventas
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SaleResponse
// @Router       /ventas/mis-ventas [get]
func (h *SaleHandler) ListMine(c *fiber.Ctx) error {
	list, err := h.uc.ListMySales(c.UserContext(), GetUsername(c))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// Delete godoc
// @Summary      Eliminar venta propia
// @Description  Devuelve el stock. No se puede eliminar una venta incluida en un periodo de cobro.
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /ventas/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.DeleteSale(c.UserContext(), id, GetUsername(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
