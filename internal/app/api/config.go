package api

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.temporal.io/sdk/client"

	staffapp "github.com/firaolassefa/restaurant-management-system/internal/domains/staff/application"
	"github.com/firaolassefa/restaurant-management-system/internal/platform/rabbitmq"
	"github.com/firaolassefa/restaurant-management-system/internal/shared/money"
)

const minJWTSecretLength = 16

// Config carries environment-driven settings for the restaurant processes.
type Config struct {
	Port              string
	LogLevel          string
	PostgresDSN       string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	// RabbitMQURL enables broker event publishing when set.
	RabbitMQURL      string
	RabbitMQExchange string
	TaxRate          decimal.Decimal
	// SeedMenu loads the starter catalog into an empty menu.
	SeedMenu   bool
	JWTSecret  string
	SessionTTL time.Duration
	// AdminEmail and AdminPassword seed the first administrator; both or neither.
	AdminName     string
	AdminEmail    string
	AdminPassword string
	CORSOrigins   []string
	// SessionPurgeInterval is zero when the API should not purge sessions itself.
	SessionPurgeInterval time.Duration
	// Carts untouched for CartIdleTTL are dropped every CartPurgeInterval.
	CartIdleTTL       time.Duration
	CartPurgeInterval time.Duration
	ShutdownTimeout   time.Duration
}

// LoadConfig primes the environment from a .env file when one exists, then
// reads, defaults and validates every setting.
func LoadConfig(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		LogLevel:          envDefault("LOG_LEVEL", "info"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		RabbitMQURL:       strings.TrimSpace(os.Getenv("RABBITMQ_URL")),
		RabbitMQExchange:  envDefault("RABBITMQ_EXCHANGE", rabbitmq.DefaultExchange),
		TaxRate:           money.DefaultTaxRate,
		SeedMenu:          true,
		JWTSecret:         strings.TrimSpace(os.Getenv("JWT_SECRET")),
		SessionTTL:        staffapp.DefaultSessionTTL,
		AdminName:         envDefault("ADMIN_NAME", "Administrator"),
		AdminEmail:        strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		CORSOrigins:       splitList(envDefault("CORS_ORIGINS", "*")),
		CartIdleTTL:       2 * time.Hour,
		CartPurgeInterval: 10 * time.Minute,
		ShutdownTimeout:   10 * time.Second,
	}
	if raw := strings.TrimSpace(os.Getenv("TAX_RATE")); raw != "" {
		rate, err := money.ParseRate(raw)
		if err != nil {
			return Config{}, fmt.Errorf("TAX_RATE: %w", err)
		}
		cfg.TaxRate = rate
	}
	if raw := strings.TrimSpace(os.Getenv("SEED_MENU")); raw != "" {
		seed, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("SEED_MENU must be a boolean")
		}
		cfg.SeedMenu = seed
	}
	if cfg.JWTSecret != "" && len(cfg.JWTSecret) < minJWTSecretLength {
		return Config{}, fmt.Errorf("JWT_SECRET must be at least %d bytes", minJWTSecretLength)
	}
	if hours, err := positiveInt("SESSION_TTL_HOURS"); err != nil {
		return Config{}, err
	} else if hours > 0 {
		cfg.SessionTTL = time.Duration(hours) * time.Hour
	}
	if minutes, err := positiveInt("SESSION_PURGE_INTERVAL_MINUTES"); err != nil {
		return Config{}, err
	} else if minutes > 0 {
		cfg.SessionPurgeInterval = time.Duration(minutes) * time.Minute
	}
	if minutes, err := positiveInt("CART_IDLE_TTL_MINUTES"); err != nil {
		return Config{}, err
	} else if minutes > 0 {
		cfg.CartIdleTTL = time.Duration(minutes) * time.Minute
	}
	if minutes, err := positiveInt("CART_PURGE_INTERVAL_MINUTES"); err != nil {
		return Config{}, err
	} else if minutes > 0 {
		cfg.CartPurgeInterval = time.Duration(minutes) * time.Minute
	}
	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		return Config{}, fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// positiveInt returns 0 when key is unset.
func positiveInt(key string) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
