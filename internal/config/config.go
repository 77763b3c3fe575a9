package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is the full process configuration, read from the environment.
type Config struct {
	AppEnv       string
	Port         string
	DBDriver     string
	DBPath       string
	DatabaseURL  string
	SeedPath     string
	RedisAddr    string
	AMQPURL      string
	AMQPExchange string

	// Average vehicle speed for trip ETAs. Zero keeps the service default.
	AvgSpeedKmh float64
}

// Get returns the trimmed env value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// LoadDotEnv loads .env into the environment if present. It reports whether
// a file was found; a missing file is not an error.
func LoadDotEnv(paths ...string) bool {
	return godotenv.Load(paths...) == nil
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:       Get("APP_ENV", "development"),
		Port:         Get("PORT", "8080"),
		DBDriver:     strings.ToLower(Get("DB_DRIVER", DriverSqlite)),
		DBPath:       Get("DB_PATH", "data/rides.db"),
		DatabaseURL:  Get("DATABASE_URL", ""),
		SeedPath:     Get("SEED_PATH", "data/seeds/fleet.yaml"),
		RedisAddr:    Get("REDIS_ADDR", ""),
		AMQPURL:      Get("AMQP_URL", ""),
		AMQPExchange: Get("AMQP_EXCHANGE", "ride_topic"),
	}

	if raw := Get("AVG_SPEED_KMH", ""); raw != "" {
		kmh, err := strconv.ParseFloat(raw, 64)
		if err != nil || kmh <= 0 {
			return nil, fmt.Errorf("load config: AVG_SPEED_KMH must be a positive number, got %q", raw)
		}
		cfg.AvgSpeedKmh = kmh
	}

	switch cfg.DBDriver {
	case DriverSqlite, DriverMemory:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("load config: DATABASE_URL is required when DB_DRIVER=%s", DriverPostgres)
		}
	default:
		return nil, fmt.Errorf("load config: unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, nil
}
