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
	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/events"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/purchase"
	"github.com/jhoicas/Almacen-api/internal/application/replenishment"
	"github.com/jhoicas/Almacen-api/internal/domain/event"
	domrep "github.com/jhoicas/Almacen-api/internal/domain/replenishment"
	infrapdf "github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	requestRepo := postgres.NewPurchaseRequestRepository(pool)
	decisionRepo := postgres.NewApprovalDecisionRepository(pool)
	policyRepo := postgres.NewReplenishmentPolicyRepository(pool)
	indicatorRepo := postgres.NewIndicatorRepository(pool)
	ledgerTxRunner := postgres.NewLedgerTxRunner(pool)
	purchaseTxRunner := postgres.NewPurchaseTxRunner(pool)

	// Bus de eventos: los caminos de escritura publican después del commit,
	// los observadores corren aislados (su fallo no revierte escrituras).
	bus := events.NewBus(log)
	bus.Subscribe(events.NewLowStockObserver(productRepo, log), event.TypeStockChanged)
	bus.Subscribe(events.NewIndicatorObserver(indicatorRepo),
		event.TypeStockChanged, event.TypeRequestStateChanged)

	catalogUC := inventory.NewCatalogUseCase(productRepo)
	ledgerUC := inventory.NewLedgerUseCase(ledgerTxRunner, movementRepo, bus)
	suggestionUC := replenishment.NewSuggestionUseCase(
		productRepo, policyRepo, movementRepo, domrep.DefaultRegistry(),
	)
	purchaseUC := purchase.NewUseCase(
		purchaseTxRunner, requestRepo, decisionRepo, productRepo,
		suggestionUC, bus, cfg.Approval.EscalationThreshold,
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	pdfGenerator := infrapdf.NewPurchaseOrderGenerator()

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
		Title:    "Almacen API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:    catalogUC,
		LedgerUC:     ledgerUC,
		PurchaseUC:   purchaseUC,
		SuggestionUC: suggestionUC,
		AuthUC:       authUC,
		ProductRepo:  productRepo,
		PDFGen:       pdfGenerator,
		JWTSecret:    cfg.JWT.Secret,
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
