package domain

// RouteLeg is the resolved route between two consecutive destinations in
// itinerary order. Legs are identified by position: leg k always pairs
// destinations[k] and destinations[k+1] as they existed when the
// computation pass started. Legs are derived on demand and never stored.
type RouteLeg struct {
	FromIndex       int
	ToIndex         int
	From            Coordinate
	To              Coordinate
	DistanceMeters  float64
	DurationSeconds float64
	Path            []Coordinate
}

// Endpoints returns the leg's start and end coordinates, preferring the
// resolved path geometry and falling back to the requested pair when the
// provider returned no usable geometry.
func (l RouteLeg) Endpoints() []Coordinate {
	if len(l.Path) >= 2 {
		return []Coordinate{l.Path[0], l.Path[len(l.Path)-1]}
	}
	return []Coordinate{l.From, l.To}
}
