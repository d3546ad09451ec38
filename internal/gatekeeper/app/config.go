package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Identity provider connection. The provider owns credentials and
	// sessions; this service only orchestrates around it.
	ProviderURL        string // Base URL of the identity provider (e.g. https://project.example.co/auth/v1)
	ProviderAnonKey    string // Publishable API key sent with every provider request
	ProviderServiceKey string // Optional: privileged key; enables admin-created identities with rollback
	ProviderJWTSecret  string // Shared HMAC secret used to verify provider-issued session tokens
	ProviderMode       string // "remote" talks to ProviderURL, "embedded" runs an in-process provider (default: remote)

	ApprovalPolicy string // "manual" holds new profiles for review, "auto" approves at creation (default: manual)

	DatabaseFile string // Path to the SQLite profile database (default: ./gatekeeper.db)
	PublicDir    string // Optional: directory of static pages to serve behind the page guard

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Stale signup cleanup cadence (default: 1h)
	MaxPendingAgeDays    int           // Unconfirmed signups older than this are pruned (default: 7)
}

func LoadConfig() Config {
	return Config{
		ProviderURL:        os.Getenv("PROVIDER_URL"),
		ProviderAnonKey:    os.Getenv("PROVIDER_ANON_KEY"),
		ProviderServiceKey: os.Getenv("PROVIDER_SERVICE_KEY"), // Optional
		ProviderJWTSecret:  os.Getenv("PROVIDER_JWT_SECRET"),
		ProviderMode:       getEnvOrDefault("PROVIDER_MODE", "remote"),

		ApprovalPolicy: getEnvOrDefault("APPROVAL_POLICY", "manual"),

		DatabaseFile: getEnvOrDefault("GATEKEEPER_DATABASE_FILE", "gatekeeper.db"),
		PublicDir:    os.Getenv("GATEKEEPER_PUBLIC_DIR"), // Optional: empty means API-only

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		MaxPendingAgeDays:    getEnvIntOrDefault("MAX_PENDING_AGE_DAYS", 7),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Accept duration syntax ("1h", "30m", "90s").
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are read as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
