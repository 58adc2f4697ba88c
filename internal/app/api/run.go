package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	restaurantserver "github.com/firaolassefa/restaurant-management-system/go"
	cartmemory "github.com/firaolassefa/restaurant-management-system/internal/domains/cart/adapters/memory"
	cartobs "github.com/firaolassefa/restaurant-management-system/internal/domains/cart/adapters/observability"
	cartapp "github.com/firaolassefa/restaurant-management-system/internal/domains/cart/application"
	orderevents "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/adapters/events"
	ordersworkflows "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/adapters/workflows"
	ordersports "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/ports"
	staffobs "github.com/firaolassefa/restaurant-management-system/internal/domains/staff/adapters/observability"
	stafftokens "github.com/firaolassefa/restaurant-management-system/internal/domains/staff/adapters/tokens"
	staffapp "github.com/firaolassefa/restaurant-management-system/internal/domains/staff/application"
	"github.com/firaolassefa/restaurant-management-system/internal/platform/migrations"
	platformobservability "github.com/firaolassefa/restaurant-management-system/internal/platform/observability"
	platformpostgres "github.com/firaolassefa/restaurant-management-system/internal/platform/postgres"
)

const serviceName = "restaurant-api"

// Run boots the restaurant HTTP API and blocks until ctx is cancelled, then
// drains in-flight requests.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Settings{
		ServiceName: serviceName,
		LogLevel:    cfg.LogLevel,
	})
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

	db, closeDB := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	defer closeDB()
	if err := migrations.Run(db); err != nil {
		return err
	}
	stores := NewStores(db)

	menuService := NewMenuService(stores.Menu, instruments)
	if cfg.SeedMenu {
		seeded, err := SeedMenu(ctx, stores.Menu)
		if err != nil {
			return err
		}
		if seeded {
			logger.Info("starter menu loaded")
		}
	}

	hub := orderevents.NewHub(orderevents.WithHubLogger(logger))
	publishers := orderevents.Multi{hub}
	broker, closeBroker, err := ConnectBroker(cfg, logger)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, order events stay in-process", slog.String("error", err.Error()))
	} else if broker != nil {
		publishers = append(publishers, broker)
		logger.Info("order events published to RabbitMQ", slog.String("exchange", cfg.RabbitMQExchange))
	}
	defer closeBroker()
	orderService := NewOrderService(stores.Orders, publishers, instruments)

	var placer ordersports.PlacementOrchestrator = ordersworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := ConnectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		placer = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	carts := cartmemory.NewRepository()
	go PurgeIdleCartsEvery(ctx, carts, cfg.CartIdleTTL, cfg.CartPurgeInterval, logger)
	cartService := cartobs.New(
		cartapp.NewService(carts, menuService, placer, cartapp.WithTaxRate(cfg.TaxRate)),
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)

	secret, err := jwtSecret(cfg, logger)
	if err != nil {
		return err
	}
	issuer, err := stafftokens.NewJWTIssuer(secret)
	if err != nil {
		return err
	}
	coreStaff := staffapp.NewService(stores.Members, stores.Sessions, issuer, staffapp.WithSessionTTL(cfg.SessionTTL))
	if cfg.AdminEmail != "" {
		created, err := coreStaff.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			return fmt.Errorf("seed admin account: %w", err)
		}
		if created {
			logger.Info("admin account created", slog.String("email", cfg.AdminEmail))
		}
	}
	staffService := staffobs.New(
		coreStaff,
		staffobs.WithLogger(logger),
		staffobs.WithTracer(instruments.Tracer("internal.staff.application")),
		staffobs.WithMeter(instruments.Meter("internal.staff.application")),
	)
	if cfg.SessionPurgeInterval > 0 {
		go PurgeSessionsEvery(ctx, stores.Sessions, cfg.SessionPurgeInterval, logger)
	}

	handlers := restaurantserver.ApiHandleFunctions{
		MenuAPI:       restaurantserver.NewMenuAPI(menuService),
		CartAPI:       restaurantserver.NewCartAPI(cartService, orderService),
		OrderAPI:      restaurantserver.NewOrderAPI(orderService),
		StaffAPI:      restaurantserver.NewStaffAPI(staffService),
		AuthAPI:       restaurantserver.NewAuthAPI(staffService),
		TrackingAPI:   restaurantserver.NewTrackingAPI(hub, logger, cfg.CORSOrigins...),
		Authenticator: staffService,
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), otelgin.Middleware(serviceName), cors.New(corsConfig(cfg.CORSOrigins)))
	router := restaurantserver.NewRouterWithGinEngine(engine, handlers)

	return serve(ctx, &http.Server{Addr: cfg.Addr(), Handler: router, ReadHeaderTimeout: 10 * time.Second}, cfg.ShutdownTimeout, logger)
}

func serve(ctx context.Context, server *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("restaurant API listening", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("restaurant API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("restaurant API shutting down")
	return server.Shutdown(shutdownCtx)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type", restaurantserver.IdempotencyKeyHeader},
		ExposeHeaders: []string{"Content-Length", "Location"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
