package repositories

import (
	"context"
	"ride-dispatch-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRideRepositoryCopiesRides(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRideRepository()

	requested := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	ride := sampleRide(t, "ride_1", requested)
	require.NoError(t, repo.SaveRide(ctx, ride))

	// Mutating the caller's copy must not leak into the store.
	require.NoError(t, ride.Start(requested.Add(time.Minute)))

	got, err := repo.GetRide(ctx, "ride_1")
	require.NoError(t, err)
	assert.Equal(t, domain.RideDispatched, got.Status)
	assert.Nil(t, got.StartedAt)
}

func TestMemoryRideRepositoryGetMissing(t *testing.T) {
	_, err := NewMemoryRideRepository().GetRide(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrRideNotFound)
}

func TestMemoryRideRepositoryListOrdering(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRideRepository()

	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveRide(ctx, sampleRide(t, "b", base)))
	require.NoError(t, repo.SaveRide(ctx, sampleRide(t, "a", base)))
	require.NoError(t, repo.SaveRide(ctx, sampleRide(t, "c", base.Add(-time.Hour))))

	rides, err := repo.ListRides(ctx)
	require.NoError(t, err)

	ids := make([]string, 0, len(rides))
	for _, r := range rides {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}
