package dto

type ComputeRoutesRequest struct {
	Mode string `json:"mode"`
}

type AdHocRouteRequest struct {
	Mode string `json:"mode"`
	// Origin is the caller's current position. Without a position fix
	// there is nothing to route from and the request is refused.
	Origin *CoordinateRequest `json:"origin"`
}

type CoordinateRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type CoordinateResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type RegionResponse struct {
	CenterLat float64 `json:"center_lat"`
	CenterLon float64 `json:"center_lon"`
	LatSpan   float64 `json:"lat_span"`
	LonSpan   float64 `json:"lon_span"`
}

type RouteLegResponse struct {
	FromIndex       int                  `json:"from_index"`
	ToIndex         int                  `json:"to_index"`
	DistanceMeters  float64              `json:"distance_meters"`
	DurationSeconds float64              `json:"duration_seconds"`
	Distance        string               `json:"distance"`
	Duration        string               `json:"duration"`
	Path            []CoordinateResponse `json:"path"`
	Region          RegionResponse       `json:"region"`
}

// RouteSetResponse carries the legs resolved by one computation pass.
// PassID identifies the pass: a client holding results from an older
// pass discards them when a response with a higher id arrives. Legs is
// sparse: a destination pair whose leg failed to resolve is simply
// absent, identified by from_index/to_index rather than slice position.
type RouteSetResponse struct {
	PassID   uint64             `json:"pass_id"`
	Mode     string             `json:"mode"`
	LegCount int                `json:"leg_count"`
	Legs     []RouteLegResponse `json:"legs"`
	Region   *RegionResponse    `json:"region,omitempty"`
}

type AdHocRouteResponse struct {
	Mode string           `json:"mode"`
	Leg  RouteLegResponse `json:"leg"`
}
