package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/swaggo/swag"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/docs"
	appanalytics "github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/analytics"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/audit"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/auth"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/billing"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/inventory"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/ports"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/sales"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/usecase"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/infrastructure/cache"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/infrastructure/export"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/infrastructure/postgres"
	httpRouter "github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/interfaces/http"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/pkg/config"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/pkg/logger"
)

// @title                       Pulpería POS API
// @version                     1.0
// @description                 API del punto de venta de la pulpería: catálogo, inventario, ventas, auditorías y cobros.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	repos := postgres.NewRepos(pool)
	txRunner := postgres.NewTxRunner(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)

	var idem ports.IdempotencyStore = cache.NewMemoryIdempotencyStore()
	if cfg.Redis.Enabled() {
		redisStore := cache.NewRedisIdempotencyStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisStore.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, idempotencia en memoria")
			_ = redisStore.Close()
		} else {
			defer redisStore.Close()
			idem = redisStore
			log.Info().Str("addr", cfg.Redis.Addr).Msg("idempotencia en Redis")
		}
	}

	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(txRunner, repos.Products)
	entryUC := inventory.NewEntryUseCase(txRunner, repos.Entries)
	countUC := audit.NewCountUseCase(txRunner, repos.Audits, log)
	saleUC := sales.NewSaleUseCase(txRunner, repos.Sales, log)
	periodUC := billing.NewPeriodUseCase(txRunner, repos.Sales, repos.Billing, log,
		export.NewCSVExporter(),
		export.NewXLSXExporter(),
		export.NewPDFExporter(cfg.App.Name),
	)
	collectionUC := billing.NewCollectionUseCase(txRunner, repos.Sales, log)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:         cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	}, log)

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    docs.SwaggerInfo.Title,
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProductUC:      productUC,
		EntryUC:        entryUC,
		CountUC:        countUC,
		SaleUC:         saleUC,
		PeriodUC:       periodUC,
		CollectionUC:   collectionUC,
		DashboardUC:    dashboardUC,
		Idempotency:    idem,
		IdempotencyTTL: time.Duration(cfg.Idempotency.TTLMinutes) * time.Minute,
		Ping:           pool.Ping,
		ServiceName:    cfg.App.Name,
		JWTSecret:      cfg.JWT.Secret,
		Log:            log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
