package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/analytics"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/audit"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/auth"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/billing"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/inventory"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/ports"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/sales"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/usecase"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/access"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ProductUC    *usecase.ProductUseCase
	EntryUC      *inventory.EntryUseCase
	CountUC      *audit.CountUseCase
	SaleUC       *sales.SaleUseCase
	PeriodUC     *billing.PeriodUseCase
	CollectionUC *billing.CollectionUseCase
	DashboardUC  *appanalytics.DashboardUseCase

	Idempotency    ports.IdempotencyStore // opcional
	IdempotencyTTL time.Duration

	// Ping verifica la BD en /health; nil = siempre ok.
	Ping func(ctx context.Context) error

	ServiceName string
	JWTSecret   string
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	app.Get("/health", healthHandler(deps.ServiceName, deps.Ping))

	// Auth (público; el registro de roles privilegiados exige token de admin)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := app.Group("/auth")
	authGroup.Post("/register", OptionalAuth(deps.JWTSecret), authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Catálogo: la lectura es pública
	productHandler := NewProductHandler(deps.ProductUC)
	app.Get("/productos", productHandler.List)

	// Rutas protegidas (requieren Bearer Token)
	protected := app.Group("/", AuthMiddleware(deps.JWTSecret))

	products := protected.Group("/productos")
	products.Post("/", Require(access.ProductWrite), productHandler.Create)
	products.Put("/:id", Require(access.ProductWrite), productHandler.Update)

	inventoryHandler := NewInventoryHandler(deps.EntryUC, deps.CountUC)
	inv := protected.Group("/inventario")
	inv.Post("/entrada", Require(access.InventoryWrite), inventoryHandler.RegisterEntry)
	inv.Get("/entradas", Require(access.InventoryRead), inventoryHandler.ListEntries)

	protected.Post("/auditoria/toma-fisica", Require(access.AuditWrite), inventoryHandler.RecordPhysicalCount)
	protected.Get("/auditorias/diferencias/:id", Require(access.AuditRead), inventoryHandler.GetDifferences)

	saleHandler := NewSaleHandler(deps.SaleUC, deps.Idempotency, deps.IdempotencyTTL, log)
	ventas := protected.Group("/ventas", Require(access.SaleOwn))
	ventas.Post("/", saleHandler.Create)
	ventas.Get("/mis-ventas", saleHandler.ListMine)
	ventas.Delete("/:id", saleHandler.Delete)

	billingHandler := NewBillingHandler(deps.PeriodUC, deps.CollectionUC)
	cobros := protected.Group("/cobros")
	cobros.Get("/", Require(access.BillingRead), billingHandler.PendingAccounts)
	cobros.Get("/detalle/:usuario", Require(access.BillingRead), billingHandler.UserDetail)
	cobros.Get("/resumen-quincena", Require(access.BillingRead), billingHandler.FortnightSummary)
	cobros.Post("/liquidar/:usuario", Require(access.BillingWrite), billingHandler.Liquidate)
	cobros.Post("/pagar", Require(access.BillingWrite), billingHandler.Pay)
	cobros.Post("/preview", Require(access.BillingRead), billingHandler.Preview)
	cobros.Post("/generar", Require(access.BillingWrite), billingHandler.Generate)
	cobros.Get("/periodos", Require(access.BillingRead), billingHandler.ListPeriods)
	cobros.Get("/periodos/:id/resumen", Require(access.BillingRead), billingHandler.PeriodSummary)
	cobros.Get("/periodos/:id/detalle", Require(access.BillingRead), billingHandler.PeriodDetail)
	cobros.Post("/periodos/:id/marcar-descontado", Require(access.BillingWrite), billingHandler.MarkSettled)
	cobros.Get("/periodos/:id/export", Require(access.BillingExport), billingHandler.Export)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard := protected.Group("/dashboard", Require(access.DashboardRead))
	dashboard.Get("/mas-vendidos", dashboardHandler.TopSellers)
	dashboard.Get("/pronostico", dashboardHandler.Forecast)
	dashboard.Get("/resumen", dashboardHandler.GetSummary)
}

// healthHandler godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func healthHandler(service string, ping func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": service, "db": "down"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": service})
	}
}
