package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
)

// Redis-backed cache for resolved routes, keyed by origin, destination
// and transport mode. Entries expire so a stale provider answer cannot
// outlive road changes forever; the cache is a transparent optimization
// and never changes observable routing behavior.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

const defaultRouteTTL = 24 * time.Hour

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	if ttl <= 0 {
		ttl = defaultRouteTTL
	}
	return &RedisRouteCache{client: client, ttl: ttl}
}

// routeKey builds a stable cache key. Coordinates are rounded to five
// decimal places (about one metre) so equal-looking points hit the same
// entry.
func routeKey(origin, destination domain.Coordinate, mode domain.TransportMode) string {
	return fmt.Sprintf("route:%s:%.5f,%.5f:%.5f,%.5f",
		mode, origin.Lat, origin.Lon, destination.Lat, destination.Lon)
}

// Get fetches a cached route. The second return value reports a hit.
func (c *RedisRouteCache) Get(
	ctx context.Context,
	origin, destination domain.Coordinate,
	mode domain.TransportMode,
) (ports.RouteResult, bool, error) {
	if c.client == nil {
		return ports.RouteResult{}, false, errors.New("route cache: client is nil")
	}

	raw, err := c.client.Get(ctx, routeKey(origin, destination, mode)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.RouteResult{}, false, nil
	}
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("route cache get: %w", err)
	}

	var res ports.RouteResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("route cache decode: %w", err)
	}

	return res, true, nil
}

// Put stores a resolved route with the cache TTL.
func (c *RedisRouteCache) Put(
	ctx context.Context,
	origin, destination domain.Coordinate,
	mode domain.TransportMode,
	result ports.RouteResult,
) error {
	if c.client == nil {
		return errors.New("route cache: client is nil")
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("route cache encode: %w", err)
	}

	if err := c.client.Set(ctx, routeKey(origin, destination, mode), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("route cache put: %w", err)
	}

	return nil
}
