package services

import (
	"context"
	"time"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
)

// EngineConfig tunes leg resolution: shared by the RouteEngine's fan-out
// and the ad hoc single-leg path.
type EngineConfig struct {
	// LegTimeout bounds a single provider call. Zero disables the bound;
	// a stalled call then simply never resolves its leg.
	LegTimeout time.Duration
	// MaxInFlight caps concurrent provider calls. Zero means the default.
	MaxInFlight int
}

const defaultMaxInFlight = 5

func (c EngineConfig) maxInFlight() int {
	if c.MaxInFlight > 0 {
		return c.MaxInFlight
	}
	return defaultMaxInFlight
}

// ResolveRoute resolves one ad hoc route between two coordinates, such as
// from the user's current position to a destination on its detail view.
// Unlike itinerary legs there is no pass to fold the result into, so a
// failure is returned to the caller directly.
func ResolveRoute(
	ctx context.Context,
	provider ports.DirectionsProvider,
	from, to domain.Coordinate,
	mode domain.TransportMode,
	cfg EngineConfig,
) (domain.RouteLeg, error) {
	return resolveLeg(ctx, provider, 0, from, to, mode, cfg.LegTimeout)
}

// resolveLeg issues one provider call and shapes the result as a leg.
func resolveLeg(
	ctx context.Context,
	provider ports.DirectionsProvider,
	index int,
	from, to domain.Coordinate,
	mode domain.TransportMode,
	timeout time.Duration,
) (domain.RouteLeg, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	res, err := provider.GetRoute(ctx, from, to, mode)
	if err != nil {
		return domain.RouteLeg{}, err
	}

	return domain.RouteLeg{
		FromIndex:       index,
		ToIndex:         index + 1,
		From:            from,
		To:              to,
		DistanceMeters:  res.DistanceMeters,
		DurationSeconds: res.DurationSeconds,
		Path:            res.Geometry,
	}, nil
}
