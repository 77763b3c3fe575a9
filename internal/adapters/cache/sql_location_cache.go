package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ride-dispatch-service/internal/domain"
	"ride-dispatch-service/internal/platform/obs"
	"strings"

	"go.uber.org/zap"
)

// SQLLocationCache is a Postgres-backed cache of last known vehicle positions.
type SQLLocationCache struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewSQLLocationCache(db *sql.DB, log *zap.Logger) *SQLLocationCache {
	return &SQLLocationCache{DB: db, Log: log}
}

func (s *SQLLocationCache) GetLocation(
	ctx context.Context,
	vehicleID string,
) (_ domain.Location, _ bool, err error) {
	defer obs.Time(ctx, s.Log, "location.cache.GetLocation")(&err)

	if s.DB == nil {
		return domain.Location{}, false, errors.New("location cache: db is nil")
	}

	var loc domain.Location
	err = s.DB.QueryRowContext(ctx, `
	SELECT lat, lon
    FROM vehicle_locations
    WHERE vehicle_id = $1;
	`, vehicleID).Scan(&loc.Lat, &loc.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Location{}, false, nil
	}
	if err != nil {
		return domain.Location{}, false, fmt.Errorf("get location cache vehicle=%q: %w", vehicleID, err)
	}

	return loc, true, nil
}

func (s *SQLLocationCache) PutLocation(ctx context.Context, vehicleID string, loc domain.Location) (err error) {
	defer obs.Time(ctx, s.Log, "location.cache.PutLocation")(&err)

	if s.DB == nil {
		return errors.New("location cache: db is nil")
	}
	if strings.TrimSpace(vehicleID) == "" {
		return errors.New("insert location cache: empty vehicle id")
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO vehicle_locations (vehicle_id, lat, lon, updated_at)
    VALUES ($1, $2, $3, NOW())
	ON CONFLICT (vehicle_id) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		updated_at = EXCLUDED.updated_at;
	`, vehicleID, loc.Lat, loc.Lon)
	if err != nil {
		return fmt.Errorf("insert location cache vehicle=%q: %w", vehicleID, err)
	}

	return nil
}
