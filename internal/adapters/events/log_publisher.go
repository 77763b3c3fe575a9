package events

import (
	"context"
	"errors"
	"ride-dispatch-service/internal/ports"

	"go.uber.org/zap"
)

// LogPublisher writes ride events to the structured log.
// It is the default publisher when no broker is configured.
type LogPublisher struct {
	Log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogPublisher{Log: log}
}

func (p *LogPublisher) Publish(_ context.Context, ev ports.RideEvent) error {
	p.Log.Info("ride event",
		zap.String("type", ev.Type),
		zap.String("ride_id", ev.RideID),
		zap.String("vehicle_id", ev.VehicleID),
		zap.String("passenger_id", ev.PassengerID),
		zap.Time("occurred_at", ev.OccurredAt),
		zap.String("message", ev.Message),
	)
	return nil
}

// Fanout publishes each event to every wrapped publisher and joins failures.
type Fanout []ports.EventPublisher

func (f Fanout) Publish(ctx context.Context, ev ports.RideEvent) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
