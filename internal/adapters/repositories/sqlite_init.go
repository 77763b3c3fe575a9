package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
// Timestamps are stored as unix milliseconds.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createRidesQuery := `
	CREATE TABLE IF NOT EXISTS rides (
		ride_id TEXT PRIMARY KEY,
		passenger_id TEXT NOT NULL,
		vehicle_id TEXT NOT NULL,
		route_id TEXT NOT NULL,
		pickup_lat REAL NOT NULL,
		pickup_lon REAL NOT NULL,
		dropoff_lat REAL NOT NULL,
		dropoff_lon REAL NOT NULL,
		distance_km REAL NOT NULL,
		status TEXT NOT NULL,
		requested_at INTEGER NOT NULL,
		started_at INTEGER,
		completed_at INTEGER,
		cancelled_at INTEGER
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_rides_vehicle_status
	ON rides(vehicle_id, status);
	`

	createLocationsQuery := `
	CREATE TABLE IF NOT EXISTS vehicle_locations (
		vehicle_id TEXT PRIMARY KEY,
		lat REAL NOT NULL,
		lon REAL NOT NULL
	);
	`

	return execSchema(db, "init schema", createRidesQuery, createIndexQuery, createLocationsQuery)
}

// Initialize the Postgres database schema.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	createRidesQuery := `
	CREATE TABLE IF NOT EXISTS rides (
		ride_id TEXT PRIMARY KEY,
		passenger_id TEXT NOT NULL,
		vehicle_id TEXT NOT NULL,
		route_id TEXT NOT NULL,
		pickup_lat DOUBLE PRECISION NOT NULL,
		pickup_lon DOUBLE PRECISION NOT NULL,
		dropoff_lat DOUBLE PRECISION NOT NULL,
		dropoff_lon DOUBLE PRECISION NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL,
		status TEXT NOT NULL,
		requested_at TIMESTAMPTZ NOT NULL,
		started_at TIMESTAMPTZ,
		completed_at TIMESTAMPTZ,
		cancelled_at TIMESTAMPTZ
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_rides_vehicle_status
	ON rides(vehicle_id, status);
	`

	createLocationsQuery := `
	CREATE TABLE IF NOT EXISTS vehicle_locations (
		vehicle_id TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`

	return execSchema(db, "init postgres schema", createRidesQuery, createIndexQuery, createLocationsQuery)
}

func execSchema(db *sql.DB, op string, statements ...string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("%s: exec statement #%d: %w", op, i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit tx: %w", op, err)
	}

	return nil
}
