package main

import (
	"fmt"
	"os"
	"ride-dispatch-service/internal/adapters/repositories"
	"ride-dispatch-service/internal/config"
	"ride-dispatch-service/internal/platform/db"
	"ride-dispatch-service/internal/platform/logging"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

// dbtool initializes the Postgres schema used by DB_DRIVER=postgres.
func main() {
	foundEnv := config.LoadDotEnv()

	log, err := logging.New(config.Get("APP_ENV", "development"), "dbtool")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if !foundEnv {
		log.Info("no .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	log.Info("initializing database schema...")
	if err := repositories.InitPostgresSchema(conn); err != nil {
		log.Fatal("schema initialization failed", zap.Error(err))
	}
	log.Info("schema ready")
}
