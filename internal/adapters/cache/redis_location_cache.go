package cache

import (
	"context"
	"errors"
	"fmt"
	"ride-dispatch-service/internal/domain"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const locationKeyPrefix = "vehicle:location:"

// RedisLocationCache stores each vehicle position as a hash
// {lat, lon, updated_at} under vehicle:location:<id>.
type RedisLocationCache struct {
	Client *redis.Client
	// Entries expire after TTL; zero keeps them forever.
	TTL time.Duration
}

func NewRedisLocationCache(client *redis.Client, ttl time.Duration) *RedisLocationCache {
	return &RedisLocationCache{Client: client, TTL: ttl}
}

func locationKey(vehicleID string) string { return locationKeyPrefix + vehicleID }

func (c *RedisLocationCache) PutLocation(ctx context.Context, vehicleID string, loc domain.Location) error {
	if c.Client == nil {
		return errors.New("location cache: redis client is nil")
	}
	if strings.TrimSpace(vehicleID) == "" {
		return errors.New("put location cache: empty vehicle id")
	}

	key := locationKey(vehicleID)
	pipe := c.Client.TxPipeline()
	pipe.HSet(ctx, key,
		"lat", strconv.FormatFloat(loc.Lat, 'f', -1, 64),
		"lon", strconv.FormatFloat(loc.Lon, 'f', -1, 64),
		"updated_at", time.Now().UTC().Format(time.RFC3339),
	)
	if c.TTL > 0 {
		pipe.Expire(ctx, key, c.TTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("put location cache vehicle=%q: %w", vehicleID, err)
	}

	return nil
}

func (c *RedisLocationCache) GetLocation(ctx context.Context, vehicleID string) (domain.Location, bool, error) {
	if c.Client == nil {
		return domain.Location{}, false, errors.New("location cache: redis client is nil")
	}

	fields, err := c.Client.HGetAll(ctx, locationKey(vehicleID)).Result()
	if err != nil {
		return domain.Location{}, false, fmt.Errorf("get location cache vehicle=%q: %w", vehicleID, err)
	}
	if len(fields) == 0 {
		return domain.Location{}, false, nil
	}

	lat, err := strconv.ParseFloat(fields["lat"], 64)
	if err != nil {
		return domain.Location{}, false, fmt.Errorf("get location cache vehicle=%q: parse lat: %w", vehicleID, err)
	}
	lon, err := strconv.ParseFloat(fields["lon"], 64)
	if err != nil {
		return domain.Location{}, false, fmt.Errorf("get location cache vehicle=%q: parse lon: %w", vehicleID, err)
	}

	return domain.NewLocation(lat, lon), true, nil
}
