package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// TopSellers godoc
// @Summary      Productos más vendidos
// @Description  Top 10 por unidades, incluyendo ventas liquidadas.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductoMasVendido
// @Router       /dashboard/mas-vendidos [get]
func (h *DashboardHandler) TopSellers(c *fiber.Ctx) error {
	list, err := h.uc.TopSellers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// Forecast godoc
// @Summary      Pronóstico de demanda
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PronosticoDemanda
// @Router       /dashboard/pronostico [get]
func (h *DashboardHandler) Forecast(c *fiber.Ctx) error {
	list, err := h.uc.Forecast(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetSummary godoc
// @Summary      Dashboard combinado
// @Description  Más vendidos y pronóstico en una sola respuesta.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResumen
// @Router       /dashboard/resumen [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}
