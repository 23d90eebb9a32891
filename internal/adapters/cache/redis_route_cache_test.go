package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
)

func newTestCache(t *testing.T) (*RedisRouteCache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisRouteCache(client, time.Hour), srv
}

func TestRouteCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	from := domain.Coordinate{Lat: 39.9163, Lon: 116.3972}
	to := domain.Coordinate{Lat: 39.8822, Lon: 116.4066}

	if _, ok, err := c.Get(ctx, from, to, domain.ModeWalking); err != nil || ok {
		t.Fatalf("expected a clean miss, got ok=%v err=%v", ok, err)
	}

	want := ports.RouteResult{
		DistanceMeters:  5120,
		DurationSeconds: 3840,
		Geometry:        []domain.Coordinate{from, to},
	}
	if err := c.Put(ctx, from, to, domain.ModeWalking, want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := c.Get(ctx, from, to, domain.ModeWalking)
	if err != nil || !ok {
		t.Fatalf("expected a hit, got ok=%v err=%v", ok, err)
	}
	if got.DistanceMeters != want.DistanceMeters || got.DurationSeconds != want.DurationSeconds {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if len(got.Geometry) != 2 {
		t.Errorf("geometry lost in round trip: %+v", got.Geometry)
	}
}

func TestRouteCacheKeysIncludeMode(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	from := domain.Coordinate{Lat: 1, Lon: 1}
	to := domain.Coordinate{Lat: 2, Lon: 2}

	if err := c.Put(ctx, from, to, domain.ModeDriving, ports.RouteResult{DistanceMeters: 9000}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A driving entry must not answer a walking lookup.
	if _, ok, err := c.Get(ctx, from, to, domain.ModeWalking); err != nil || ok {
		t.Fatalf("mode must partition the cache, got ok=%v err=%v", ok, err)
	}
}

func TestRouteCacheEntriesExpire(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	from := domain.Coordinate{Lat: 1, Lon: 1}
	to := domain.Coordinate{Lat: 2, Lon: 2}
	if err := c.Put(ctx, from, to, domain.ModeDriving, ports.RouteResult{DistanceMeters: 100}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	srv.FastForward(2 * time.Hour)

	if _, ok, err := c.Get(ctx, from, to, domain.ModeDriving); err != nil || ok {
		t.Fatalf("expected the entry to expire, got ok=%v err=%v", ok, err)
	}
}
