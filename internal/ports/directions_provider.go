package ports

import (
	"context"

	"trip-route-service/internal/domain"
)

// RouteResult is one resolved route between two coordinates: total
// distance, expected travel time, and the path geometry to draw.
type RouteResult struct {
	DistanceMeters  float64
	DurationSeconds float64
	Geometry        []domain.Coordinate
}

// Contract for resolving a single origin/destination/mode triple into a
// route. Calls are independent: sibling lookups may complete in any order,
// and a failed lookup is terminal for that leg's current computation pass.
type DirectionsProvider interface {
	GetRoute(ctx context.Context, origin, destination domain.Coordinate, mode domain.TransportMode) (RouteResult, error)
}
