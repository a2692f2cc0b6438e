package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appfinance "github.com/goodsflow/backend/internal/application/finance"
	apppurchasing "github.com/goodsflow/backend/internal/application/purchasing"
	"github.com/goodsflow/backend/internal/domain/purchasing"
	"github.com/goodsflow/backend/internal/infrastructure/auth"
	"github.com/goodsflow/backend/internal/infrastructure/cache"
	"github.com/goodsflow/backend/internal/infrastructure/config"
	"github.com/goodsflow/backend/internal/infrastructure/event"
	"github.com/goodsflow/backend/internal/infrastructure/logger"
	"github.com/goodsflow/backend/internal/infrastructure/persistence"
	"github.com/goodsflow/backend/internal/infrastructure/telemetry"
	"github.com/goodsflow/backend/internal/interfaces/http/handler"
	"github.com/goodsflow/backend/internal/interfaces/http/middleware"
	"github.com/goodsflow/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting GoodsFlow backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	// Database
	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("Failed to close database", zap.Error(err))
		}
	}()

	// Idempotency result store: Redis when reachable, in-memory otherwise
	storeFactory := cache.NewResultStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	)
	resultStore, err := storeFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create result store", zap.Error(err))
	}
	defer func() {
		if err := resultStore.Close(); err != nil {
			log.Warn("Failed to close result store", zap.Error(err))
		}
	}()

	// Telemetry
	ctx := context.Background()
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.ExportInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Warn("Failed to shut down meter provider", zap.Error(err))
		}
	}()

	businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Enabled: cfg.Telemetry.Enabled,
		Meter:   meterProvider,
		Logger:  log,
	})
	if err != nil {
		log.Fatal("Failed to initialize business metrics", zap.Error(err))
	}

	// Receiving behavior
	policy, err := purchasing.ParseOverReceiptPolicy(cfg.Receiving.OverReceiptPolicy)
	if err != nil {
		log.Fatal("Invalid over-receipt policy", zap.Error(err))
	}
	log.Info("Receiving configured",
		zap.String("over_receipt_policy", string(policy)),
		zap.Duration("idempotency_ttl", cfg.Receiving.IdempotencyTTL))

	// In-process event bus with the audit subscriber
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Repositories and services
	scope := persistence.NewGormTransactionScope(db.DB)
	orderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	movementRepo := persistence.NewGormFinancialMovementRepository(db.DB)
	shiftRepo := persistence.NewGormCashShiftRepository(db.DB)
	accountRepo := persistence.NewGormBankAccountRepository(db.DB)

	orderService := apppurchasing.NewPurchaseOrderService(scope, orderRepo, eventBus)
	receptionService := apppurchasing.NewReceptionService(
		scope,
		apppurchasing.NewStatusCoordinator(),
		appfinance.NewPostingService(),
		apppurchasing.NewRecordingCostAllocator(),
		resultStore,
		businessMetrics,
		eventBus,
		policy,
		cfg.Receiving.IdempotencyTTL,
	)
	movementService := appfinance.NewMovementService(movementRepo, shiftRepo, accountRepo)

	jwtService := auth.NewJWTService(cfg.JWT)

	middleware.SetupValidator()

	engine, err := router.New(router.Dependencies{
		Config:           cfg,
		Logger:           log,
		JWTService:       jwtService,
		SystemHandler:    handler.NewSystemHandler(db.DB, cfg.App.Name),
		OrderHandler:     handler.NewPurchaseOrderHandler(orderService),
		ReceptionHandler: handler.NewReceptionHandler(receptionService),
		FinanceHandler:   handler.NewFinanceHandler(movementService),
	})
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Warn("Failed to stop event bus", zap.Error(err))
	}

	log.Info("Server exited")
}
