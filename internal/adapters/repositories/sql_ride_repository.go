package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ride-dispatch-service/internal/domain"
	"ride-dispatch-service/internal/platform/obs"
	"time"

	"go.uber.org/zap"
)

// SQLRideRepository is a Postgres-backed RideRepository (pgx stdlib driver).
type SQLRideRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewSQLRideRepository(db *sql.DB, log *zap.Logger) *SQLRideRepository {
	return &SQLRideRepository{DB: db, Log: log}
}

func (s *SQLRideRepository) SaveRide(ctx context.Context, ride *domain.Ride) (err error) {
	defer obs.Time(ctx, s.Log, "rides.sql.SaveRide")(&err)

	if s.DB == nil {
		return errors.New("ride repository: db is nil")
	}
	if ride == nil || ride.ID == "" {
		return errors.New("save ride: ride id must not be empty")
	}

	q := `
	INSERT INTO rides (
		ride_id, passenger_id, vehicle_id, route_id,
		pickup_lat, pickup_lon, dropoff_lat, dropoff_lon,
		distance_km, status, requested_at, started_at, completed_at, cancelled_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (ride_id) DO UPDATE
	SET status = EXCLUDED.status,
		started_at = EXCLUDED.started_at,
		completed_at = EXCLUDED.completed_at,
		cancelled_at = EXCLUDED.cancelled_at;
	`

	_, err = s.DB.ExecContext(ctx, q,
		ride.ID, ride.PassengerID, ride.VehicleID, ride.RouteID,
		ride.Pickup.Lat, ride.Pickup.Lon, ride.Dropoff.Lat, ride.Dropoff.Lon,
		ride.DistanceKm, string(ride.Status), ride.RequestedAt,
		ride.StartedAt, ride.CompletedAt, ride.CancelledAt,
	)
	if err != nil {
		return fmt.Errorf("save ride ride_id=%q: %w", ride.ID, err)
	}

	return nil
}

func (s *SQLRideRepository) GetRide(ctx context.Context, id string) (_ *domain.Ride, err error) {
	defer obs.Time(ctx, s.Log, "rides.sql.GetRide")(&err)

	if s.DB == nil {
		return nil, errors.New("ride repository: db is nil")
	}

	row := s.DB.QueryRowContext(ctx, selectRidesQuery+` WHERE ride_id = $1;`, id)
	ride, err := scanSQLRide(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get ride %q: %w", id, domain.ErrRideNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get ride %q: %w", id, err)
	}

	return ride, nil
}

func (s *SQLRideRepository) ListRides(ctx context.Context) (_ []*domain.Ride, err error) {
	defer obs.Time(ctx, s.Log, "rides.sql.ListRides")(&err)

	if s.DB == nil {
		return nil, errors.New("ride repository: db is nil")
	}

	rows, err := s.DB.QueryContext(ctx, selectRidesQuery+` ORDER BY requested_at, ride_id;`)
	if err != nil {
		return nil, fmt.Errorf("list rides: query rides table: %w", err)
	}
	defer rows.Close()

	rides := make([]*domain.Ride, 0, 16)
	for rows.Next() {
		ride, err := scanSQLRide(rows)
		if err != nil {
			return nil, fmt.Errorf("list rides: scan rows: %w", err)
		}
		rides = append(rides, ride)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rides: row iteration: %w", err)
	}

	return rides, nil
}

func scanSQLRide(row rowScanner) (*domain.Ride, error) {
	var (
		r                             domain.Ride
		status                        string
		started, completed, cancelled sql.NullTime
	)

	err := row.Scan(
		&r.ID, &r.PassengerID, &r.VehicleID, &r.RouteID,
		&r.Pickup.Lat, &r.Pickup.Lon, &r.Dropoff.Lat, &r.Dropoff.Lon,
		&r.DistanceKm, &status, &r.RequestedAt,
		&started, &completed, &cancelled,
	)
	if err != nil {
		return nil, err
	}

	if r.Status, err = domain.ParseRideStatus(status); err != nil {
		return nil, err
	}
	r.StartedAt = nullTimePtr(started)
	r.CompletedAt = nullTimePtr(completed)
	r.CancelledAt = nullTimePtr(cancelled)

	return &r, nil
}

func nullTimePtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	return cloneTime(&n.Time)
}
