package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"ride-dispatch-service/internal/adapters/cache"
	"ride-dispatch-service/internal/adapters/events"
	"ride-dispatch-service/internal/adapters/repositories"
	"ride-dispatch-service/internal/api"
	"ride-dispatch-service/internal/config"
	"ride-dispatch-service/internal/platform/db"
	"ride-dispatch-service/internal/platform/logging"
	"ride-dispatch-service/internal/ports"
	"ride-dispatch-service/internal/services"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const locationTTL = 10 * time.Minute

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres, Redis, RabbitMQ) behind ports
// and starts the HTTP server.
func main() {
	foundEnv := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.AppEnv, "server")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if !foundEnv {
		log.Info("no .env file found (using environment variables)")
	}

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rides, locations, closeStore, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		locations = cache.NewRedisLocationCache(client, locationTTL)
		log.Info("location cache: redis", zap.String("addr", cfg.RedisAddr))
	}

	var publisher ports.EventPublisher = events.NewLogPublisher(log.Named("events"))
	if cfg.AMQPURL != "" {
		amqpPub, err := events.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange, log.Named("amqp"))
		if err != nil {
			return err
		}
		defer amqpPub.Close()

		publisher = events.Fanout{publisher, amqpPub}
		log.Info("ride events: rabbitmq", zap.String("exchange", cfg.AMQPExchange))
	}

	fleet, passengers, err := repositories.LoadFleetSeed(cfg.SeedPath)
	if err != nil {
		return err
	}

	opts := []services.Option{
		services.WithLogger(log.Named("rides")),
		services.WithEventPublisher(publisher),
		services.WithSpeed(cfg.AvgSpeedKmh),
	}
	if locations != nil {
		opts = append(opts, services.WithLocationCache(locations))
	}

	svc, err := services.NewRideService(fleet, rides, opts...)
	if err != nil {
		return err
	}
	for _, p := range passengers {
		if err := svc.RegisterPassenger(p); err != nil {
			return err
		}
	}
	if err := svc.SyncLocations(ctx); err != nil {
		log.Warn("initial location sync failed", zap.Error(err))
	}

	log.Info("fleet loaded",
		zap.String("fleet_id", fleet.ID),
		zap.String("operator", fleet.OperatorName),
		zap.Int("vehicles", len(fleet.Vehicles())),
		zap.Int("passengers", len(passengers)),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(svc, log.Named("http")),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore picks the ride repository and, for SQL drivers, a table-backed
// location cache on the same database.
func openStore(
	cfg *config.Config,
	log *zap.Logger,
) (ports.RideRepository, ports.VehicleLocationCache, func(), error) {
	var (
		conn *sql.DB
		err  error
	)

	switch cfg.DBDriver {
	case config.DriverMemory:
		log.Info("ride store: memory")
		return repositories.NewMemoryRideRepository(), nil, func() {}, nil

	case config.DriverPostgres:
		if conn, err = db.Open(cfg.DatabaseURL); err != nil {
			return nil, nil, nil, err
		}
		if err := repositories.InitPostgresSchema(conn); err != nil {
			conn.Close()
			return nil, nil, nil, err
		}
		log.Info("ride store: postgres")
		return repositories.NewSQLRideRepository(conn, log.Named("store")),
			cache.NewSQLLocationCache(conn, log.Named("store")),
			func() { conn.Close() }, nil

	default:
		if conn, err = db.OpenSqlite(cfg.DBPath); err != nil {
			return nil, nil, nil, err
		}
		if err := repositories.InitSchema(conn); err != nil {
			conn.Close()
			return nil, nil, nil, err
		}
		log.Info("ride store: sqlite", zap.String("path", cfg.DBPath))
		return repositories.NewSqliteRideRepository(conn, log.Named("store")),
			cache.NewSqliteLocationCache(conn),
			func() { conn.Close() }, nil
	}
}
