package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	cartports "github.com/firaolassefa/restaurant-management-system/internal/domains/cart/ports"
	menumemory "github.com/firaolassefa/restaurant-management-system/internal/domains/menu/adapters/memory"
	menuobs "github.com/firaolassefa/restaurant-management-system/internal/domains/menu/adapters/observability"
	menupostgres "github.com/firaolassefa/restaurant-management-system/internal/domains/menu/adapters/persistence/postgres"
	menuapp "github.com/firaolassefa/restaurant-management-system/internal/domains/menu/application"
	menudomain "github.com/firaolassefa/restaurant-management-system/internal/domains/menu/domain"
	menuports "github.com/firaolassefa/restaurant-management-system/internal/domains/menu/ports"
	orderevents "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/adapters/events"
	ordersmemory "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/adapters/memory"
	ordersobs "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/application"
	ordersports "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/ports"
	staffmemory "github.com/firaolassefa/restaurant-management-system/internal/domains/staff/adapters/memory"
	staffpostgres "github.com/firaolassefa/restaurant-management-system/internal/domains/staff/adapters/persistence/postgres"
	staffports "github.com/firaolassefa/restaurant-management-system/internal/domains/staff/ports"
	platformobservability "github.com/firaolassefa/restaurant-management-system/internal/platform/observability"
	"github.com/firaolassefa/restaurant-management-system/internal/platform/rabbitmq"
)

// Stores groups the repositories of every persistent domain. Carts are
// short-lived and always kept in memory.
type Stores struct {
	Menu     menuports.Repository
	Orders   ordersports.Repository
	Members  staffports.Repository
	Sessions staffports.SessionStore
}

// NewStores returns PostgreSQL-backed stores, or in-memory ones when db is nil.
func NewStores(db *gorm.DB) Stores {
	if db == nil {
		return Stores{
			Menu:     menumemory.NewRepository(),
			Orders:   ordersmemory.NewRepository(),
			Members:  staffmemory.NewRepository(),
			Sessions: staffmemory.NewSessionStore(),
		}
	}
	return Stores{
		Menu:     menupostgres.NewRepository(db),
		Orders:   orderspostgres.NewRepository(db),
		Members:  staffpostgres.NewRepository(db),
		Sessions: staffpostgres.NewSessionStore(db),
	}
}

// NewMenuService wraps the catalog service with logging, tracing and metrics.
func NewMenuService(repo menuports.Repository, instruments *platformobservability.Instruments) menuports.Service {
	return menuobs.New(
		menuapp.NewService(repo),
		menuobs.WithLogger(effectiveLogger(instruments)),
		menuobs.WithTracer(instruments.Tracer("internal.menu.application")),
		menuobs.WithMeter(instruments.Meter("internal.menu.application")),
	)
}

// NewOrderService wraps the order lifecycle service. publisher may be nil.
func NewOrderService(repo ordersports.Repository, publisher ordersports.EventPublisher, instruments *platformobservability.Instruments) ordersports.Service {
	return ordersobs.New(
		ordersapp.NewService(repo, ordersapp.WithEventPublisher(publisher)),
		ordersobs.WithLogger(effectiveLogger(instruments)),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
}

// SeedMenu loads the starter catalog when the menu is empty. It reports whether it did.
func SeedMenu(ctx context.Context, repo menuports.Repository) (bool, error) {
	seeded, err := menuapp.NewService(repo).Seed(ctx, menudomain.DefaultMenu())
	if err != nil {
		return false, fmt.Errorf("seed menu: %w", err)
	}
	return seeded, nil
}

// ConnectBroker dials RabbitMQ and returns an order event publisher. It
// returns a nil publisher when no broker is configured.
func ConnectBroker(cfg Config, logger *slog.Logger) (ordersports.EventPublisher, func(), error) {
	if cfg.RabbitMQURL == "" {
		return nil, func() {}, nil
	}
	broker, err := rabbitmq.Dial(cfg.RabbitMQURL)
	if err != nil {
		return nil, func() {}, fmt.Errorf("dial rabbitmq: %w", err)
	}
	if err := broker.DeclareTopicExchange(cfg.RabbitMQExchange); err != nil {
		broker.Close()
		return nil, func() {}, fmt.Errorf("declare exchange %s: %w", cfg.RabbitMQExchange, err)
	}
	return orderevents.NewBrokerPublisher(broker, cfg.RabbitMQExchange, logger), broker.Close, nil
}

// ConnectTemporalClient dials Temporal with tracing and structured logging.
func ConnectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer("temporal-client"),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

// PurgeSessionsEvery deletes expired sessions on every tick until ctx is done.
func PurgeSessionsEvery(ctx context.Context, sessions staffports.SessionStore, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sessions.PurgeExpired(ctx)
			if err != nil {
				logger.Warn("session purge failed", slog.String("error", err.Error()))
				continue
			}
			if n > 0 {
				logger.Info("expired sessions purged", slog.Int64("count", n))
			}
		}
	}
}

// PurgeIdleCartsEvery drops carts untouched for idleTTL on every tick until ctx is done.
func PurgeIdleCartsEvery(ctx context.Context, carts cartports.Repository, idleTTL, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := carts.PurgeIdle(ctx, now.Add(-idleTTL))
			if err != nil {
				logger.Warn("cart purge failed", slog.String("error", err.Error()))
				continue
			}
			if n > 0 {
				logger.Info("idle carts purged", slog.Int("count", n))
			}
		}
	}
}

// jwtSecret falls back to a random per-process secret, which signs everyone out on restart.
func jwtSecret(cfg Config, logger *slog.Logger) (string, error) {
	if cfg.JWTSecret != "" {
		return cfg.JWTSecret, nil
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	logger.Warn("JWT_SECRET not set, using an ephemeral signing key")
	return hex.EncodeToString(buf), nil
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
