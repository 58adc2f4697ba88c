package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/firaolassefa/restaurant-management-system/internal/app/api"
	staffpostgres "github.com/firaolassefa/restaurant-management-system/internal/domains/staff/adapters/persistence/postgres"
	platformobservability "github.com/firaolassefa/restaurant-management-system/internal/platform/observability"
	platformpostgres "github.com/firaolassefa/restaurant-management-system/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := platformobservability.NewLogger(os.Stdout, cfg.LogLevel).With(slog.String("service", "restaurant-session-purger"))
	db, cleanup := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge sessions")
	}

	purged, err := staffpostgres.NewSessionStore(db).PurgeExpired(ctx)
	if err != nil {
		log.Fatalf("failed to purge sessions: %v", err)
	}
	logger.Info("session purge completed", slog.Int64("purged", purged))
}
