package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	cartfile "github.com/vegefoods/cart-service/internal/domains/cart/adapters/persistence/file"
	cartpostgres "github.com/vegefoods/cart-service/internal/domains/cart/adapters/persistence/postgres"
	cartapp "github.com/vegefoods/cart-service/internal/domains/cart/application"
	cartdomain "github.com/vegefoods/cart-service/internal/domains/cart/domain"
	cartports "github.com/vegefoods/cart-service/internal/domains/cart/ports"
	checkoutmemory "github.com/vegefoods/cart-service/internal/domains/checkout/adapters/memory"
	checkoutpostgres "github.com/vegefoods/cart-service/internal/domains/checkout/adapters/persistence/postgres"
	checkoutapp "github.com/vegefoods/cart-service/internal/domains/checkout/application"
	checkoutports "github.com/vegefoods/cart-service/internal/domains/checkout/ports"
	checkoutactivities "github.com/vegefoods/cart-service/internal/durable/temporal/activities/checkout"
	checkoutworkflows "github.com/vegefoods/cart-service/internal/durable/temporal/workflows/checkout"
	"github.com/vegefoods/cart-service/internal/platform/migrations"
	platformobservability "github.com/vegefoods/cart-service/internal/platform/observability"
	platformpostgres "github.com/vegefoods/cart-service/internal/platform/postgres"
)

func main() {
	ctx := context.Background()
	const serviceName = "vegefoods-cart-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cartRepo, archive, cleanup := buildCollaborators(ctx, logger)
	defer cleanup()
	cartStore := cartapp.NewStore(cartRepo, cartdomain.DefaultCatalog(), cartapp.WithLogger(logger))
	checkoutService := checkoutapp.NewService(cartStore,
		checkoutapp.WithArchive(archive),
		checkoutapp.WithLogger(logger))
	activities := checkoutactivities.NewActivities(checkoutService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, checkoutworkflows.OrderSubmissionTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(checkoutworkflows.OrderSubmissionWorkflow, workflow.RegisterOptions{Name: checkoutworkflows.OrderSubmissionWorkflowName})
	w.RegisterActivityWithOptions(activities.SubmitOrder, activity.RegisterOptions{Name: checkoutactivities.SubmitOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", checkoutworkflows.OrderSubmissionTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

// buildCollaborators picks the same persistence the API uses so both
// processes mutate the same cart record.
func buildCollaborators(ctx context.Context, logger *slog.Logger) (cartports.Repository, checkoutports.OrderArchive, func()) {
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn != "" {
		db, err := platformpostgres.Connect(ctx, dsn)
		if err == nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				if err := migrations.Run(db); err != nil {
					logger.Warn("worker failed to apply migrations (falling back to file store)", slog.String("error", err.Error()))
					sqlDB.Close()
				} else {
					logger.Info("worker repositories configured with postgres")
					repo := cartpostgres.NewStore(db,
						cartpostgres.WithStorageKey(envOrDefault("CART_STORAGE_KEY", cartdomain.StorageKey)),
						cartpostgres.WithLogger(logger))
					return repo, checkoutpostgres.NewArchive(db), func() { _ = sqlDB.Close() }
				}
			}
		} else {
			logger.Warn("worker failed to connect to postgres (falling back to file store)", slog.String("error", err.Error()))
		}
	}

	store, err := cartfile.NewStore(afero.NewOsFs(), envOrDefault("CART_DATA_DIR", "./data"),
		cartfile.WithStorageKey(envOrDefault("CART_STORAGE_KEY", cartdomain.StorageKey)),
		cartfile.WithLogger(logger))
	if err != nil {
		log.Fatalf("failed to open cart file store: %v", err)
	}
	logger.Info("worker cart repository configured with file store", slog.String("path", store.Path()))
	return store, checkoutmemory.NewArchive(), func() {}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
