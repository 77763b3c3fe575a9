package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"ride-dispatch-service/internal/adapters/cache"
	"ride-dispatch-service/internal/adapters/repositories"
	"ride-dispatch-service/internal/api/dto"
	"ride-dispatch-service/internal/domain"
	"ride-dispatch-service/internal/platform/db"
	"ride-dispatch-service/internal/services"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T) (http.Handler, *services.RideService) {
	t.Helper()

	fleet := domain.NewFleet("fleet_01", "Gemini Transit")
	robo := domain.NewRoboTaxi("rt_101", domain.NewLocation(40.7128, -74.0060), 4)
	require.NoError(t, robo.AddSensor(domain.NewSensor("lidar_01", domain.SensorLidar, domain.Position{Z: 1.5})))
	taxi := domain.NewTaxi("taxi_202", domain.NewLocation(40.7580, -73.9855), 4)
	fleet.AddVehicle(robo)
	fleet.AddVehicle(taxi)

	svc, err := services.NewRideService(fleet, repositories.NewMemoryRideRepository())
	require.NoError(t, err)

	return NewRouter(svc, zap.NewNop()), svc
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDIsPropagated(t *testing.T) {
	h, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestListVehicles(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/vehicles", "")
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[dto.ListVehicleResponse](t, rec)
	require.Len(t, res.Vehicles, 2)
	assert.Equal(t, "rt_101", res.Vehicles[0].ID)
	assert.Equal(t, "robotaxi", res.Vehicles[0].Kind)
	assert.Equal(t, "IDLE", res.Vehicles[0].Status)
	require.Len(t, res.Vehicles[0].Sensors, 1)

	rec = do(t, h, http.MethodGet, "/vehicles?status=EN_ROUTE", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[dto.ListVehicleResponse](t, rec).Vehicles)

	rec = do(t, h, http.MethodGet, "/vehicles?status=FLYING", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetVehicleNotFound(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/vehicles/ghost", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDriveVehicle(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/vehicles/rt_101/drive", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[dto.DriveResponse](t, rec)
	require.Len(t, res.Readings, 1)
	assert.InDelta(t, 42.0, res.Readings[0].Value, 1e-9)

	// The taxi has no driver yet.
	rec = do(t, h, http.MethodPost, "/vehicles/taxi_202/drive", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateVehicleLocation(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodPut, "/vehicles/taxi_202/location", `{"lat":40.6892,"lon":-74.0445}`)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[dto.VehicleResponse](t, rec)
	require.NotNil(t, res.Location.Lat)
	assert.InDelta(t, 40.6892, *res.Location.Lat, 1e-9)

	rec = do(t, h, http.MethodPut, "/vehicles/taxi_202/location", `{"lat":140,"lon":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPut, "/vehicles/taxi_202/location", `{"lat":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPut, "/vehicles/taxi_202/location", `{"lat":1,"lon":2,"alt":3}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVehicleLocation(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/vehicles/rt_101/location", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[dto.VehicleLocationResponse](t, rec)
	assert.Equal(t, "rt_101", res.VehicleID)
	require.NotNil(t, res.Location.Lat)
	assert.InDelta(t, 40.7128, *res.Location.Lat, 1e-9)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/vehicles/ghost/location", "").Code)
}

func TestVehicleLocationReadsCache(t *testing.T) {
	conn, err := db.OpenSqlite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, repositories.InitSchema(conn))

	locations := cache.NewSqliteLocationCache(conn)
	fleet := domain.NewFleet("fleet_01", "Gemini Transit")
	fleet.AddVehicle(domain.NewTaxi("taxi_202", domain.NewLocation(40.7580, -73.9855), 4))
	svc, err := services.NewRideService(fleet, repositories.NewMemoryRideRepository(),
		services.WithLocationCache(locations))
	require.NoError(t, err)
	h := NewRouter(svc, zap.NewNop())

	// Reported by another instance; the local fleet still has the old position.
	require.NoError(t, locations.PutLocation(context.Background(), "taxi_202", domain.NewLocation(40.6892, -74.0445)))

	rec := do(t, h, http.MethodGet, "/vehicles/taxi_202/location", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[dto.VehicleLocationResponse](t, rec)
	require.NotNil(t, res.Location.Lat)
	assert.InDelta(t, 40.6892, *res.Location.Lat, 1e-9)
}

func TestRideFlow(t *testing.T) {
	h, svc := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/passengers", `{"id":"p_alex","name":"Alex","phone":"555-0101"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "fleet_01", decode[dto.PassengerResponse](t, rec).FleetID)

	rec = do(t, h, http.MethodPost, "/passengers", `{"id":"p_alex","name":"Alex"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	body := `{
		"passenger_id": "p_alex",
		"pickup": {"lat": 40.7128, "lon": -74.0060},
		"dropoff": {"lat": 40.7580, "lon": -73.9855}
	}`
	rec = do(t, h, http.MethodPost, "/rides", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	ride := decode[dto.RideResponse](t, rec)
	assert.Equal(t, "rt_101", ride.VehicleID)
	assert.Equal(t, "dispatched", ride.Status)

	rec = do(t, h, http.MethodGet, "/rides/"+ride.ID+"/plan", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[dto.TripPlanResponse](t, rec).Stops, 2)

	rec = do(t, h, http.MethodPost, "/rides/"+ride.ID+"/complete", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/rides/"+ride.ID+"/start", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "in_progress", decode[dto.RideResponse](t, rec).Status)

	rec = do(t, h, http.MethodGet, "/passengers/p_alex", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "rt_101", decode[dto.PassengerResponse](t, rec).VehicleID)

	rec = do(t, h, http.MethodPost, "/rides/"+ride.ID+"/complete", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "completed", decode[dto.RideResponse](t, rec).Status)

	rec = do(t, h, http.MethodGet, "/rides", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[dto.ListRideResponse](t, rec).Rides, 1)

	rec = do(t, h, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[dto.StatsResponse](t, rec)
	assert.Equal(t, 1, stats.RidesCompleted)
	assert.Equal(t, "Gemini Transit", stats.Operator)
	assert.Equal(t, svc.Stats().RidesCompleted, stats.RidesCompleted)
}

func TestRequestRideErrors(t *testing.T) {
	h, svc := newTestRouter(t)
	require.NoError(t, svc.RegisterPassenger(domain.NewPassenger("p_orphan", "Orphan", "", nil)))

	tests := []struct {
		name string
		body string
		want int
	}{
		{"invalid json", `{`, http.StatusBadRequest},
		{"two objects", `{"passenger_id":"x"}{}`, http.StatusBadRequest},
		{"missing passenger", `{"pickup":{"lat":1,"lon":1},"dropoff":{"lat":1,"lon":1}}`, http.StatusBadRequest},
		{"missing dropoff", `{"passenger_id":"x","pickup":{"lat":1,"lon":1}}`, http.StatusBadRequest},
		{"unknown passenger", `{"passenger_id":"ghost","pickup":{"lat":1,"lon":1},"dropoff":{"lat":2,"lon":2}}`, http.StatusNotFound},
		{"bad location", `{"passenger_id":"p_orphan","pickup":{"lat":100,"lon":1},"dropoff":{"lat":2,"lon":2}}`, http.StatusBadRequest},
		{"no fleet", `{"passenger_id":"p_orphan","pickup":{"lat":1,"lon":1},"dropoff":{"lat":2,"lon":2}}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/rides", tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestNoVehicleAvailable(t *testing.T) {
	h, _ := newTestRouter(t)

	for _, id := range []string{"a", "b", "c"} {
		rec := do(t, h, http.MethodPost, "/passengers", `{"id":"`+id+`"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	ride := func(id string) int {
		body := `{"passenger_id":"` + id + `","pickup":{"lat":1,"lon":1},"dropoff":{"lat":2,"lon":2}}`
		return do(t, h, http.MethodPost, "/rides", body).Code
	}
	assert.Equal(t, http.StatusCreated, ride("a"))
	assert.Equal(t, http.StatusCreated, ride("b"))
	assert.Equal(t, http.StatusConflict, ride("c"))
}

func TestSecondRideForSamePassengerConflicts(t *testing.T) {
	h, _ := newTestRouter(t)

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/passengers", `{"id":"a"}`).Code)

	body := `{"passenger_id":"a","pickup":{"lat":1,"lon":1},"dropoff":{"lat":2,"lon":2}}`
	rec := do(t, h, http.MethodPost, "/rides", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	ride := decode[dto.RideResponse](t, rec)

	assert.Equal(t, http.StatusConflict, do(t, h, http.MethodPost, "/rides", body).Code)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/rides/"+ride.ID+"/cancel", "").Code)
	assert.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/rides", body).Code)
}

func TestGetRideNotFound(t *testing.T) {
	h, _ := newTestRouter(t)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/rides/nope", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/rides/nope/cancel", "").Code)
}
