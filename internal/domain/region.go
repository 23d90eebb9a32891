package domain

// Map viewport padding factors. A single leg is framed tighter than a whole
// itinerary so the two endpoints fill more of the screen.
const (
	PaddingLeg       = 1.3
	PaddingItinerary = 1.5
)

// minSpanDegrees keeps a single-point region from collapsing to zero area.
const minSpanDegrees = 0.01

// Region is a map camera framing: a center plus latitude/longitude spans.
// It is derived on demand and never persisted.
type Region struct {
	Center  Coordinate
	LatSpan float64
	LonSpan float64
}

// RegionFor derives the viewport framing a set of coordinates.
// The center is the midpoint of the min/max per axis and each span is
// (max-min)*padding, floored so a degenerate set still frames a valid area.
// Returns false for an empty coordinate set.
func RegionFor(coords []Coordinate, padding float64) (Region, bool) {
	if len(coords) == 0 {
		return Region{}, false
	}

	minLat, maxLat := coords[0].Lat, coords[0].Lat
	minLon, maxLon := coords[0].Lon, coords[0].Lon

	for _, c := range coords[1:] {
		if c.Lat < minLat {
			minLat = c.Lat
		}
		if c.Lat > maxLat {
			maxLat = c.Lat
		}
		if c.Lon < minLon {
			minLon = c.Lon
		}
		if c.Lon > maxLon {
			maxLon = c.Lon
		}
	}

	latSpan := (maxLat - minLat) * padding
	if latSpan < minSpanDegrees {
		latSpan = minSpanDegrees
	}

	lonSpan := (maxLon - minLon) * padding
	if lonSpan < minSpanDegrees {
		lonSpan = minSpanDegrees
	}

	return Region{
		Center: Coordinate{
			Lat: (minLat + maxLat) / 2,
			Lon: (minLon + maxLon) / 2,
		},
		LatSpan: latSpan,
		LonSpan: lonSpan,
	}, true
}
