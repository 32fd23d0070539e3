package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/buildlink/marketplace-api/internal/application/analytics"
	"github.com/buildlink/marketplace-api/internal/application/auth"
	"github.com/buildlink/marketplace-api/internal/application/catalog"
	"github.com/buildlink/marketplace-api/internal/application/orders"
	infrapdf "github.com/buildlink/marketplace-api/internal/infrastructure/pdf"
	"github.com/buildlink/marketplace-api/internal/infrastructure/postgres"
	httpRouter "github.com/buildlink/marketplace-api/internal/interfaces/http"
	"github.com/buildlink/marketplace-api/pkg/config"
	"github.com/buildlink/marketplace-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// El handle de almacenamiento tolera arrancar sin base de datos: el
	// supervisor reconecta en segundo plano y el login/salud siguen
	// respondiendo mientras tanto.
	superviseCtx, stopSupervise := context.WithCancel(context.Background())
	defer stopSupervise()

	db := postgres.NewHandle(superviseCtx, cfg.DB, log)
	defer db.Close()
	go db.Supervise(superviseCtx)

	employeeRepo := postgres.NewEmployeeRepository(db)
	partnerRepo := postgres.NewPartnerRepository(db)
	contractorRepo := postgres.NewContractorRepository(db)
	projectRepo := postgres.NewProjectRepository(db)
	supplierRepo := postgres.NewSupplierRepository(db)
	orderQueryRepo := postgres.NewOrderQueryRepository(db)
	analyticsRepo := postgres.NewAnalyticsRepository(db)
	txRunner := postgres.NewTxRunner(db)

	authUC := auth.NewAuthUseCase(employeeRepo, partnerRepo, contractorRepo, auth.TokenConfig{
		Secret:     cfg.Token.Secret,
		ExpMinutes: cfg.Token.Expiration,
		Issuer:     cfg.Token.Issuer,
	})
	catalogUC := catalog.NewCatalogUseCase(supplierRepo, projectRepo)
	ordersUC := orders.NewCreateOrderUseCase(txRunner, projectRepo, supplierRepo, orderQueryRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)
	docGen := infrapdf.NewPODocumentGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "BuildLink API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		status := "ok"
		if _, err := db.Pool(); err != nil {
			status = "degraded"
		}
		return c.JSON(fiber.Map{"status": status, "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		DashboardUC: dashboardUC,
		CatalogUC:   catalogUC,
		OrdersUC:    ordersUC,
		DocGen:      docGen,
		TokenSecret: cfg.Token.Secret,
		ExpMinutes:  cfg.Token.Expiration,
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
	stopSupervise()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
