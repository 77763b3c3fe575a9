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

// SQLite-backed implementation of the RideRepository port.
type SqliteRideRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewSqliteRideRepository(db *sql.DB, log *zap.Logger) *SqliteRideRepository {
	return &SqliteRideRepository{DB: db, Log: log}
}

func (s *SqliteRideRepository) SaveRide(ctx context.Context, ride *domain.Ride) (err error) {
	defer obs.Time(ctx, s.Log, "rides.sqlite.SaveRide")(&err)

	if s.DB == nil {
		return errors.New("sqlite ride repository: DB is nil")
	}
	if ride == nil || ride.ID == "" {
		return errors.New("save ride: ride id must not be empty")
	}

	query := `
	INSERT OR REPLACE INTO rides (
		ride_id,
		passenger_id,
		vehicle_id,
		route_id,
		pickup_lat,
		pickup_lon,
		dropoff_lat,
		dropoff_lon,
		distance_km,
		status,
		requested_at,
		started_at,
		completed_at,
		cancelled_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	_, err = s.DB.ExecContext(ctx, query,
		ride.ID,
		ride.PassengerID,
		ride.VehicleID,
		ride.RouteID,
		ride.Pickup.Lat,
		ride.Pickup.Lon,
		ride.Dropoff.Lat,
		ride.Dropoff.Lon,
		ride.DistanceKm,
		string(ride.Status),
		ride.RequestedAt.UnixMilli(),
		toMillis(ride.StartedAt),
		toMillis(ride.CompletedAt),
		toMillis(ride.CancelledAt),
	)
	if err != nil {
		return fmt.Errorf("save ride ride_id=%q: %w", ride.ID, err)
	}

	return nil
}

func (s *SqliteRideRepository) GetRide(ctx context.Context, id string) (_ *domain.Ride, err error) {
	defer obs.Time(ctx, s.Log, "rides.sqlite.GetRide")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite ride repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, selectRidesQuery+` WHERE ride_id = ?;`, id)
	ride, err := scanSqliteRide(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get ride %q: %w", id, domain.ErrRideNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get ride %q: %w", id, err)
	}

	return ride, nil
}

func (s *SqliteRideRepository) ListRides(ctx context.Context) (_ []*domain.Ride, err error) {
	defer obs.Time(ctx, s.Log, "rides.sqlite.ListRides")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite ride repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, selectRidesQuery+` ORDER BY requested_at, ride_id;`)
	if err != nil {
		return nil, fmt.Errorf("list rides: query rides table: %w", err)
	}
	defer rows.Close()

	rides := make([]*domain.Ride, 0, 16)
	for rows.Next() {
		ride, err := scanSqliteRide(rows)
		if err != nil {
			return nil, fmt.Errorf("list rides: scan row: %w", err)
		}
		rides = append(rides, ride)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rides: row iteration: %w", err)
	}

	return rides, nil
}

const selectRidesQuery = `
	SELECT
		ride_id,
		passenger_id,
		vehicle_id,
		route_id,
		pickup_lat,
		pickup_lon,
		dropoff_lat,
		dropoff_lon,
		distance_km,
		status,
		requested_at,
		started_at,
		completed_at,
		cancelled_at
	FROM rides`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSqliteRide(row rowScanner) (*domain.Ride, error) {
	var (
		r                             domain.Ride
		status                        string
		requested                     int64
		started, completed, cancelled sql.NullInt64
	)

	err := row.Scan(
		&r.ID,
		&r.PassengerID,
		&r.VehicleID,
		&r.RouteID,
		&r.Pickup.Lat,
		&r.Pickup.Lon,
		&r.Dropoff.Lat,
		&r.Dropoff.Lon,
		&r.DistanceKm,
		&status,
		&requested,
		&started,
		&completed,
		&cancelled,
	)
	if err != nil {
		return nil, err
	}

	if r.Status, err = domain.ParseRideStatus(status); err != nil {
		return nil, err
	}
	r.RequestedAt = time.UnixMilli(requested).UTC()
	r.StartedAt = fromMillis(started)
	r.CompletedAt = fromMillis(completed)
	r.CancelledAt = fromMillis(cancelled)

	return &r, nil
}

func toMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
}

func fromMillis(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := time.UnixMilli(n.Int64).UTC()
	return &t
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
