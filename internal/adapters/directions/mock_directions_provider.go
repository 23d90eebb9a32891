package directions

import (
	"context"
	"fmt"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
)

type MockRoute struct {
	From, To domain.Coordinate
	Mode     domain.TransportMode
	Meters   float64
	Seconds  float64
	Path     []domain.Coordinate
}

type MockDirectionsProvider struct {
	m map[string]ports.RouteResult
}

func mockKey(from, to domain.Coordinate, mode domain.TransportMode) string {
	return fmt.Sprintf("%v,%v|%v,%v|%s", from.Lat, from.Lon, to.Lat, to.Lon, mode)
}

func NewMockDirectionsProvider(routes []MockRoute) *MockDirectionsProvider {
	m := make(map[string]ports.RouteResult, len(routes))
	for _, r := range routes {
		m[mockKey(r.From, r.To, r.Mode)] = ports.RouteResult{
			DistanceMeters:  r.Meters,
			DurationSeconds: r.Seconds,
			Geometry:        r.Path,
		}
	}
	return &MockDirectionsProvider{m: m}
}

func (p *MockDirectionsProvider) GetRoute(ctx context.Context, origin, destination domain.Coordinate, mode domain.TransportMode) (ports.RouteResult, error) {
	r, ok := p.m[mockKey(origin, destination, mode)]
	if !ok {
		return ports.RouteResult{}, fmt.Errorf("missing route %v -> %v (%s)", origin, destination, mode)
	}

	return r, nil
}
