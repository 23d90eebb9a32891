package directions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"trip-route-service/internal/adapters/cache"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/platform/obs"
	"trip-route-service/internal/ports"
)

// ORSDirectionsProvider implements DirectionsProvider using the
// OpenRouteService directions endpoint.
//
// It coordinates:
//   - Transport mode to ORS routing profile mapping
//   - Optional write-through route caching
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type ORSDirectionsProvider struct {
	session    *http.Client
	apiKey     string
	baseURL    string
	routeCache *cache.RedisRouteCache
}

func NewORSDirectionsProvider(apiKey string, routeCache *cache.RedisRouteCache) (*ORSDirectionsProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	provider := &ORSDirectionsProvider{
		session:    &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		baseURL:    "https://api.openrouteservice.org",
		routeCache: routeCache,
	}

	return provider, nil
}

// profileFor maps a transport mode to an ORS routing profile.
func profileFor(mode domain.TransportMode) (string, error) {
	switch mode {
	case domain.ModeWalking:
		return "foot-walking", nil
	case domain.ModeDriving:
		return "driving-car", nil
	default:
		return "", fmt.Errorf("unsupported transport mode %q", mode)
	}
}

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Features []struct {
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
		} `json:"properties"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// GetRoute resolves one origin/destination/mode triple into a route.
func (o *ORSDirectionsProvider) GetRoute(
	ctx context.Context,
	origin, destination domain.Coordinate,
	mode domain.TransportMode,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "ors.GetRoute")(&err)

	profile, err := profileFor(mode)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("get ORS route: %w", err)
	}

	// Consult the route cache before issuing an external API call.
	if o.routeCache != nil {
		if cached, ok, cerr := o.routeCache.Get(ctx, origin, destination, mode); cerr != nil {
			log.Printf("route cache read failed: %v", cerr)
		} else if ok {
			return cached, nil
		}
	}

	result, err := o.fetchRoute(ctx, profile, origin, destination)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("get ORS route %s: %w", profile, err)
	}

	if o.routeCache != nil {
		if cerr := o.routeCache.Put(ctx, origin, destination, mode, result); cerr != nil {
			log.Printf("route cache write failed: %v", cerr)
		}
	}

	return result, nil
}

// fetchRoute calls the ORS directions endpoint and decodes the GeoJSON
// response into a RouteResult.
func (o *ORSDirectionsProvider) fetchRoute(
	ctx context.Context,
	profile string,
	origin, destination domain.Coordinate,
) (ports.RouteResult, error) {
	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", o.baseURL, profile)

	bodyObj := directionsRequest{
		Coordinates: [][]float64{origin.CoordsToList(), destination.CoordsToList()},
	}
	payload, err := json.Marshal(bodyObj)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		body := bytes.NewReader(payload)
		return o.newRequest(ctx, http.MethodPost, endpoint, body)
	})
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return ports.RouteResult{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(dr.Features) == 0 {
		return ports.RouteResult{}, errors.New("directions response contains no route")
	}

	feature := dr.Features[0]
	geometry := make([]domain.Coordinate, 0, len(feature.Geometry.Coordinates))
	for i, pair := range feature.Geometry.Coordinates {
		if len(pair) < 2 {
			return ports.RouteResult{}, fmt.Errorf("invalid geometry point at index %d", i)
		}
		geometry = append(geometry, domain.Coordinate{Lon: pair[0], Lat: pair[1]})
	}

	return ports.RouteResult{
		DistanceMeters:  feature.Properties.Summary.Distance,
		DurationSeconds: feature.Properties.Summary.Duration,
		Geometry:        geometry,
	}, nil
}
