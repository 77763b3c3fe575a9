package db

import (
	"database/sql"
	"fmt"
	"time"
)

type poolConfig struct {
	maxOpen     int
	maxIdle     int
	maxLifetime time.Duration
}

// Open a Postgres pool through the pgx stdlib driver.
// The caller must blank-import github.com/jackc/pgx/v5/stdlib.
func Open(databaseURL string) (*sql.DB, error) {
	return open("pgx", databaseURL, "postgres", poolConfig{
		maxOpen:     10,
		maxIdle:     10,
		maxLifetime: 30 * time.Minute,
	})
}

// Open a SQLite database through modernc.org/sqlite.
// The caller must blank-import modernc.org/sqlite.
//
// SQLite serializes writers, and a single connection also keeps ":memory:"
// databases from splitting across connections.
func OpenSqlite(dbPath string) (*sql.DB, error) {
	return open("sqlite", dbPath, fmt.Sprintf("sqlite %q", dbPath), poolConfig{maxOpen: 1})
}

func open(driver, dsn, label string, pool poolConfig) (*sql.DB, error) {
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("openDB: open %s database: %w", label, err)
	}

	conn.SetMaxOpenConns(pool.maxOpen)
	if pool.maxIdle > 0 {
		conn.SetMaxIdleConns(pool.maxIdle)
	}
	if pool.maxLifetime > 0 {
		conn.SetConnMaxLifetime(pool.maxLifetime)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("openDB: verify %s connection: %w", label, err)
	}

	return conn, nil
}
