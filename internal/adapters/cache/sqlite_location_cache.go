package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ride-dispatch-service/internal/domain"
	"strings"
)

// SQLite backed cache mapping vehicle IDs to their last reported location.
type SqliteLocationCache struct {
	DB *sql.DB
}

func NewSqliteLocationCache(db *sql.DB) *SqliteLocationCache {
	return &SqliteLocationCache{DB: db}
}

func (s *SqliteLocationCache) GetLocation(ctx context.Context, vehicleID string) (domain.Location, bool, error) {
	if s.DB == nil {
		return domain.Location{}, false, errors.New("location cache: db is nil")
	}

	var loc domain.Location
	err := s.DB.QueryRowContext(ctx, `
	SELECT
        lat,
        lon
    FROM vehicle_locations
    WHERE vehicle_id = ?;
	`, vehicleID).Scan(&loc.Lat, &loc.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Location{}, false, nil
	}
	if err != nil {
		return domain.Location{}, false, fmt.Errorf("get location cache vehicle=%q: %w", vehicleID, err)
	}

	return loc, true, nil
}

func (s *SqliteLocationCache) PutLocation(ctx context.Context, vehicleID string, loc domain.Location) error {
	if s.DB == nil {
		return errors.New("location cache: db is nil")
	}
	if strings.TrimSpace(vehicleID) == "" {
		return errors.New("insert location cache: empty vehicle id")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO vehicle_locations (
        vehicle_id,
        lat,
        lon
    )
    VALUES (?, ?, ?);
	`, vehicleID, loc.Lat, loc.Lon)
	if err != nil {
		return fmt.Errorf("insert location cache vehicle=%q: %w", vehicleID, err)
	}

	return nil
}
