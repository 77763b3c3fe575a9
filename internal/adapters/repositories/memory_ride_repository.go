package repositories

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"ride-dispatch-service/internal/domain"
	"slices"
	"sync"
)

// In-process RideRepository used by the simulator and in tests.
// Rides are copied on the way in and out so callers never share state
// with the store.
type MemoryRideRepository struct {
	mu    sync.RWMutex
	rides map[string]domain.Ride
}

func NewMemoryRideRepository() *MemoryRideRepository {
	return &MemoryRideRepository{rides: make(map[string]domain.Ride)}
}

func (m *MemoryRideRepository) SaveRide(_ context.Context, ride *domain.Ride) error {
	if ride == nil || ride.ID == "" {
		return errors.New("save ride: ride id must not be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = cloneRide(*ride)
	return nil
}

func (m *MemoryRideRepository) GetRide(_ context.Context, id string) (*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rides[id]
	if !ok {
		return nil, fmt.Errorf("get ride %q: %w", id, domain.ErrRideNotFound)
	}
	out := cloneRide(r)
	return &out, nil
}

func (m *MemoryRideRepository) ListRides(_ context.Context) ([]*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Ride, 0, len(m.rides))
	for _, r := range m.rides {
		c := cloneRide(r)
		out = append(out, &c)
	}

	slices.SortFunc(out, func(a, b *domain.Ride) int {
		if c := a.RequestedAt.Compare(b.RequestedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func cloneRide(r domain.Ride) domain.Ride {
	r.StartedAt = cloneTime(r.StartedAt)
	r.CompletedAt = cloneTime(r.CompletedAt)
	r.CancelledAt = cloneTime(r.CancelledAt)
	return r
}
