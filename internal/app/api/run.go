package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/afero"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	cartserver "github.com/vegefoods/cart-service/go"

	cartobs "github.com/vegefoods/cart-service/internal/domains/cart/adapters/observability"
	cartfile "github.com/vegefoods/cart-service/internal/domains/cart/adapters/persistence/file"
	cartpostgres "github.com/vegefoods/cart-service/internal/domains/cart/adapters/persistence/postgres"
	cartwatch "github.com/vegefoods/cart-service/internal/domains/cart/adapters/watch"
	cartapp "github.com/vegefoods/cart-service/internal/domains/cart/application"
	cartdomain "github.com/vegefoods/cart-service/internal/domains/cart/domain"
	cartports "github.com/vegefoods/cart-service/internal/domains/cart/ports"

	checkoutmemory "github.com/vegefoods/cart-service/internal/domains/checkout/adapters/memory"
	checkoutobs "github.com/vegefoods/cart-service/internal/domains/checkout/adapters/observability"
	checkoutpostgres "github.com/vegefoods/cart-service/internal/domains/checkout/adapters/persistence/postgres"
	checkoutworkflows "github.com/vegefoods/cart-service/internal/domains/checkout/adapters/workflows"
	checkoutapp "github.com/vegefoods/cart-service/internal/domains/checkout/application"
	checkoutports "github.com/vegefoods/cart-service/internal/domains/checkout/ports"

	"github.com/vegefoods/cart-service/internal/platform/migrations"
	platformobservability "github.com/vegefoods/cart-service/internal/platform/observability"
	platformpostgres "github.com/vegefoods/cart-service/internal/platform/postgres"
)

// Run boots the cart HTTP API with observability, persistence, the
// external-change watcher, and checkout workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "vegefoods-cart-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	repo, watcher, cleanupRepo, err := buildCartRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanupRepo()

	coreStore := cartapp.NewStore(repo, cartdomain.DefaultCatalog(), cartapp.WithLogger(logger))
	cartService := cartobs.New(
		coreStore,
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)

	if watcher != nil {
		defer watcher.Close()
		go watchExternalChanges(ctx, watcher, coreStore, logger)
	}

	archive, cleanupArchive := buildOrderArchive(ctx, cfg, logger)
	defer cleanupArchive()
	coreCheckout := checkoutapp.NewService(cartService,
		checkoutapp.WithArchive(archive),
		checkoutapp.WithLogger(logger))
	checkoutService := checkoutobs.New(
		coreCheckout,
		checkoutobs.WithLogger(logger),
		checkoutobs.WithTracer(instruments.Tracer("internal.checkout.application")),
		checkoutobs.WithMeter(instruments.Meter("internal.checkout.application")),
	)

	var orderWorkflows checkoutports.WorkflowOrchestrator = checkoutworkflows.NewInlineOrderWorkflows(checkoutService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline order submission", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = checkoutworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := cartserver.ApiHandleFunctions{
		CartAPI:     cartserver.NewCartAPI(cartService),
		ViewsAPI:    cartserver.NewViewsAPI(cartService),
		CheckoutAPI: cartserver.NewCheckoutAPI(checkoutService, orderWorkflows),
	}

	router := cartserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("cart API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("cart API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// buildCartRepository selects PostgreSQL when a DSN is configured and
// otherwise falls back to the file store, whose record other local
// processes may rewrite; only the file store gets a change watcher.
func buildCartRepository(ctx context.Context, cfg Config, logger *slog.Logger) (cartports.Repository, cartports.ChangeWatcher, func(), error) {
	if cfg.PostgresDSN != "" {
		if store, cleanup, ok := buildPostgresRepository(ctx, cfg, logger); ok {
			return store, nil, cleanup, nil
		}
	}

	store, err := cartfile.NewStore(afero.NewOsFs(), cfg.DataDir,
		cartfile.WithStorageKey(cfg.StorageKey),
		cartfile.WithLogger(logger))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open cart file store: %w", err)
	}
	logger.Info("cart repository configured with file store", slog.String("path", store.Path()))
	watcher, err := cartwatch.NewFileWatcher(store.Path(), logger)
	if err != nil {
		logger.Warn("external-change watcher unavailable", slog.String("error", err.Error()))
		return store, nil, func() {}, nil
	}
	return store, watcher, func() {}, nil
}

func buildPostgresRepository(ctx context.Context, cfg Config, logger *slog.Logger) (cartports.Repository, func(), bool) {
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to file store", slog.String("error", err.Error()))
		return nil, nil, false
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to file store", slog.String("error", err.Error()))
		return nil, nil, false
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to apply migrations, falling back to file store", slog.String("error", err.Error()))
		sqlDB.Close()
		return nil, nil, false
	}
	logger.Info("cart repository configured with postgres")
	store := cartpostgres.NewStore(db,
		cartpostgres.WithStorageKey(cfg.StorageKey),
		cartpostgres.WithLogger(logger))
	return store, func() { _ = sqlDB.Close() }, true
}

// watchExternalChanges refreshes the store when another process rewrote
// the cart record, the server-side analog of reacting to a storage
// event from a second browser tab.
func watchExternalChanges(ctx context.Context, watcher cartports.ChangeWatcher, store *cartapp.Store, logger *slog.Logger) {
	events, err := watcher.Watch(ctx)
	if err != nil {
		logger.Warn("failed to start external-change watcher", slog.String("error", err.Error()))
		return
	}
	for range events {
		if err := store.Refresh(ctx); err != nil {
			logger.Warn("failed to refresh cart after external change", slog.String("error", err.Error()))
		}
	}
}

func buildOrderArchive(ctx context.Context, cfg Config, logger *slog.Logger) (checkoutports.OrderArchive, func()) {
	if cfg.PostgresDSN == "" {
		return checkoutmemory.NewArchive(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("order archive unavailable, keeping orders in memory", slog.String("error", err.Error()))
		return checkoutmemory.NewArchive(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("order archive unavailable, keeping orders in memory", slog.String("error", err.Error()))
		return checkoutmemory.NewArchive(), func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("order archive migrations failed, keeping orders in memory", slog.String("error", err.Error()))
		sqlDB.Close()
		return checkoutmemory.NewArchive(), func() {}
	}
	logger.Info("order archive configured with postgres")
	return checkoutpostgres.NewArchive(db), func() { _ = sqlDB.Close() }
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
