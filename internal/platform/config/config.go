package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// StorageDriver selects the backing store.
type StorageDriver string

const (
	StoragePostgres StorageDriver = "postgres"
	StorageMemory   StorageDriver = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	StorageDriver StorageDriver

	// LockTimeout bounds how long a mutation waits for an account lock.
	LockTimeout time.Duration
	// RequestTimeout is the upper bound for any request; clients may lower it per request.
	RequestTimeout time.Duration

	JWTSecret string
	JWTIssuer string

	AMQPURL        string
	EventsExchange string

	// ReconcileSchedule is a cron expression; empty disables the job.
	ReconcileSchedule string

	RateLimit          string
	CORSAllowedOrigins []string
	HighValueThreshold decimal.Decimal
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("STORAGE_DRIVER", string(StoragePostgres))
	viper.SetDefault("LOCK_TIMEOUT", "2s")
	viper.SetDefault("REQUEST_TIMEOUT", "10s")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "bank-backoffice")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("EVENTS_EXCHANGE", "ledger_events")
	viper.SetDefault("RECONCILE_SCHEDULE", "@every 1h")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("HIGH_VALUE_THRESHOLD", "50000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.StorageDriver = StorageDriver(strings.ToLower(viper.GetString("STORAGE_DRIVER")))
	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StorageMemory:
		log.Println("Warning: STORAGE_DRIVER=memory, ledger state is lost on restart.")
	default:
		log.Printf("Warning: unknown STORAGE_DRIVER '%s'. Defaulting to %s.\n", cfg.StorageDriver, StoragePostgres)
		cfg.StorageDriver = StoragePostgres
	}

	cfg.LockTimeout = parseDuration("LOCK_TIMEOUT", 2*time.Second)
	cfg.RequestTimeout = parseDuration("REQUEST_TIMEOUT", 10*time.Second)

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.AMQPURL = viper.GetString("AMQP_URL")
	if cfg.AMQPURL == "" {
		log.Println("Warning: AMQP_URL not set. Ledger events will not be published.")
	}
	cfg.EventsExchange = viper.GetString("EVENTS_EXCHANGE")
	cfg.ReconcileSchedule = viper.GetString("RECONCILE_SCHEDULE")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	threshold, err := decimal.NewFromString(viper.GetString("HIGH_VALUE_THRESHOLD"))
	if err != nil || threshold.IsNegative() {
		threshold = decimal.NewFromInt(50000)
		log.Printf("Warning: Invalid value for HIGH_VALUE_THRESHOLD. Defaulting to %s.\n", threshold.String())
	}
	cfg.HighValueThreshold = threshold

	return cfg, nil
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
