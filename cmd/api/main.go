package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/gemline/repair-service/internal/api/http"
	"github.com/gemline/repair-service/internal/api/http/handlers"
	"github.com/gemline/repair-service/internal/auth"
	"github.com/gemline/repair-service/internal/config"
	"github.com/gemline/repair-service/internal/events"
	"github.com/gemline/repair-service/internal/line"
	"github.com/gemline/repair-service/internal/observability"
	"github.com/gemline/repair-service/internal/payment"
	"github.com/gemline/repair-service/internal/persistence"
	"github.com/gemline/repair-service/internal/repository"
	"github.com/gemline/repair-service/internal/service"
	"github.com/gemline/repair-service/internal/shipping"
	"github.com/gemline/repair-service/internal/storage"
	"github.com/gemline/repair-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	customerRepo := repository.NewCustomerRepository(pool)
	addressRepo := repository.NewAddressRepository(pool)
	repairRepo := repository.NewRepairRepository(pool)
	historyRepo := repository.NewRepairHistoryRepository(pool)
	locationRepo := repository.NewLocationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	lineClient := line.NewClient(cfg.Line)
	beamClient := payment.NewClient(cfg.Payment)
	shippingClient := shipping.NewClient(cfg.Shipping)
	uploadSigner := storage.NewSigner(cfg.Storage)

	authService := service.NewAuthService(*cfg, customerRepo, addressRepo)
	customerService := service.NewCustomerService(customerRepo, addressRepo)
	locationService := service.NewLocationService(locationRepo, redis, logger)
	repairService := service.NewRepairService(service.RepairDependencies{
		RepairRepo:   repairRepo,
		CustomerRepo: customerRepo,
		HistoryRepo:  historyRepo,
		Dispatcher:   dispatcher,
	})
	paymentService := service.NewPaymentService(repairRepo, beamClient, cfg.Payment, cfg.Site)
	shipmentService := service.NewShipmentService(repairRepo, historyRepo, shippingClient)
	webhookService := service.NewWebhookService(lineClient, cfg.Site, logger)
	notificationService := service.NewNotificationService(dispatcher, repairRepo, customerRepo, lineClient, cfg.Site, logger)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), customerRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Profile:        handlers.NewProfileHandler(customerService),
		Repairs:        handlers.NewRepairsHandler(repairService),
		Payments:       handlers.NewPaymentsHandler(paymentService),
		Shipments:      handlers.NewShipmentsHandler(shipmentService),
		Uploads:        handlers.NewUploadsHandler(uploadSigner),
		Locations:      handlers.NewLocationsHandler(locationService),
		Webhook:        handlers.NewWebhookHandler(webhookService, cfg.Line),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
