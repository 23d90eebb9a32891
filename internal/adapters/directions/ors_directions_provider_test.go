package directions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trip-route-service/internal/domain"
)

const directionsBody = `{
	"features": [{
		"properties": {"summary": {"distance": 5120.5, "duration": 3840.2}},
		"geometry": {"coordinates": [[116.3972, 39.9163], [116.40, 39.92], [116.4066, 39.8822]]}
	}]
}`

func TestORSGetRouteDecodesGeoJSON(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(directionsBody))
	}))
	defer srv.Close()

	provider, err := NewORSDirectionsProvider("test-key", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	provider.baseURL = srv.URL

	from := domain.Coordinate{Lat: 39.9163, Lon: 116.3972}
	to := domain.Coordinate{Lat: 39.8822, Lon: 116.4066}
	res, err := provider.GetRoute(context.Background(), from, to, domain.ModeWalking)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(gotPath, "foot-walking") {
		t.Errorf("walking mode must use the foot-walking profile, got %q", gotPath)
	}
	if res.DistanceMeters != 5120.5 || res.DurationSeconds != 3840.2 {
		t.Errorf("summary = %+v", res)
	}
	if len(res.Geometry) != 3 {
		t.Fatalf("expected 3 geometry points, got %d", len(res.Geometry))
	}
	// ORS returns [lon, lat] pairs.
	if res.Geometry[0].Lat != 39.9163 || res.Geometry[0].Lon != 116.3972 {
		t.Errorf("geometry[0] = %+v", res.Geometry[0])
	}
}

func TestORSGetRouteRetriesTransientFailures(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(directionsBody))
	}))
	defer srv.Close()

	provider, err := NewORSDirectionsProvider("test-key", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	provider.baseURL = srv.URL

	_, err = provider.GetRoute(context.Background(), domain.Coordinate{}, domain.Coordinate{Lat: 1, Lon: 1}, domain.ModeDriving)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected a retry after 503, got %d attempts", attempts)
	}
}

func TestORSGetRouteRejectsUnknownMode(t *testing.T) {
	provider, err := NewORSDirectionsProvider("test-key", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := provider.GetRoute(context.Background(), domain.Coordinate{}, domain.Coordinate{}, "teleport"); err == nil {
		t.Fatalf("expected an error for an unsupported mode")
	}
}
