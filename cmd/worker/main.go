package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/worker"

	"github.com/firaolassefa/restaurant-management-system/internal/app/api"
	"github.com/firaolassefa/restaurant-management-system/internal/platform/migrations"
	platformobservability "github.com/firaolassefa/restaurant-management-system/internal/platform/observability"
	platformpostgres "github.com/firaolassefa/restaurant-management-system/internal/platform/postgres"
	orderactivities "github.com/firaolassefa/restaurant-management-system/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/firaolassefa/restaurant-management-system/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "restaurant-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Settings{
		ServiceName: serviceName,
		LogLevel:    cfg.LogLevel,
	})
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

	db, closeDB := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	defer closeDB()
	if db == nil {
		logger.Warn("worker is placing orders into an in-memory store the API cannot see")
	}
	if err := migrations.Run(db); err != nil {
		logger.Error("failed to migrate schema", slog.String("error", err.Error()))
		os.Exit(1)
	}
	stores := api.NewStores(db)

	publisher, closeBroker, err := api.ConnectBroker(cfg, logger)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, order events from the worker are not published", slog.String("error", err.Error()))
	}
	defer closeBroker()
	orderService := api.NewOrderService(stores.Orders, publisher, instruments)
	activities := orderactivities.NewActivities(orderService)

	temporalClient, err := api.ConnectTemporalClient(cfg, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	orderworkflows.Register(w, activities)

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
