package api_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"trip-route-service/internal/adapters/directions"
	"trip-route-service/internal/adapters/repositories"
	"trip-route-service/internal/api"
	"trip-route-service/internal/api/dto"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/services"
)

var (
	palace = domain.Coordinate{Lat: 39.9163, Lon: 116.3972}
	wall   = domain.Coordinate{Lat: 40.4319, Lon: 116.5704}
	temple = domain.Coordinate{Lat: 39.8822, Lon: 116.4066}
)

func newTestServer(t *testing.T, routes []directions.MockRoute) *httptest.Server {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, repositories.InitSchema(db))

	trips := services.NewTripService(repositories.NewSqliteTripRepository(db))
	provider := directions.NewMockDirectionsProvider(routes)
	handler := api.NewRouter(trips, provider, services.EngineConfig{}, []string{"*"})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func createTrip(t *testing.T, srv *httptest.Server) dto.TripResponse {
	t.Helper()

	var trip dto.TripResponse
	resp := doJSON(t, http.MethodPost, srv.URL+"/trips", dto.CreateTripRequest{Title: "Beijing in three days"}, &trip)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return trip
}

func addDestination(t *testing.T, srv *httptest.Server, tripID, name string, coord domain.Coordinate) dto.DestinationResponse {
	t.Helper()

	var dest dto.DestinationResponse
	resp := doJSON(t, http.MethodPost, srv.URL+"/trips/"+tripID+"/destinations",
		dto.AddDestinationRequest{Name: name, Address: "somewhere", Lat: coord.Lat, Lon: coord.Lon}, &dest)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return dest
}

func TestTripLifecycle(t *testing.T) {
	srv := newTestServer(t, nil)
	trip := createTrip(t, srv)

	d1 := addDestination(t, srv, trip.ID, "Forbidden City", palace)
	d2 := addDestination(t, srv, trip.ID, "Great Wall", wall)

	var got dto.TripResponse
	resp := doJSON(t, http.MethodGet, srv.URL+"/trips/"+trip.ID, nil, &got)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, got.Destinations, 2)
	assert.Equal(t, d1.ID, got.Destinations[0].ID)
	assert.Equal(t, d2.ID, got.Destinations[1].ID)
	require.NotNil(t, got.Region, "itinerary region expected once destinations exist")
	assert.InDelta(t, (palace.Lat+wall.Lat)/2, got.Region.CenterLat, 1e-9)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/trips/"+trip.ID, nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/trips/"+trip.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNoteValidationAndDanglingAssociation(t *testing.T) {
	srv := newTestServer(t, nil)
	trip := createTrip(t, srv)
	dest := addDestination(t, srv, trip.ID, "Great Wall", wall)

	// Empty content is refused.
	resp := doJSON(t, http.MethodPost, srv.URL+"/trips/"+trip.ID+"/notes", dto.NoteRequest{Content: ""}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var note dto.NoteResponse
	resp = doJSON(t, http.MethodPost, srv.URL+"/trips/"+trip.ID+"/notes",
		dto.NoteRequest{Content: "cable car closes at 5pm", DestinationID: &dest.ID}, &note)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var got dto.TripResponse
	doJSON(t, http.MethodGet, srv.URL+"/trips/"+trip.ID, nil, &got)
	require.Len(t, got.Notes, 1)
	require.NotNil(t, got.Notes[0].Destination)
	assert.Equal(t, dest.ID, got.Notes[0].Destination.ID)

	// Removing the destination leaves the note dangling; it renders with
	// no association and no error. Decode into a fresh struct: fields
	// absent from the response would survive in a reused one.
	resp = doJSON(t, http.MethodDelete, srv.URL+"/trips/"+trip.ID+"/destinations/"+dest.ID, nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var after dto.TripResponse
	doJSON(t, http.MethodGet, srv.URL+"/trips/"+trip.ID, nil, &after)
	require.Len(t, after.Notes, 1)
	assert.Nil(t, after.Notes[0].Destination)
}

func TestComputeRoutes(t *testing.T) {
	routes := []directions.MockRoute{
		{From: palace, To: wall, Mode: domain.ModeDriving, Meters: 62000, Seconds: 4500, Path: []domain.Coordinate{palace, wall}},
		{From: wall, To: temple, Mode: domain.ModeDriving, Meters: 71000, Seconds: 5200, Path: []domain.Coordinate{wall, temple}},
	}
	srv := newTestServer(t, routes)
	trip := createTrip(t, srv)
	addDestination(t, srv, trip.ID, "Forbidden City", palace)
	addDestination(t, srv, trip.ID, "Great Wall", wall)
	addDestination(t, srv, trip.ID, "Temple of Heaven", temple)

	var set dto.RouteSetResponse
	resp := doJSON(t, http.MethodPost, srv.URL+"/trips/"+trip.ID+"/routes",
		dto.ComputeRoutesRequest{Mode: "driving"}, &set)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.EqualValues(t, 1, set.PassID, "first computation for a trip starts pass 1")
	assert.Equal(t, "driving", set.Mode)
	assert.Equal(t, 2, set.LegCount)
	require.Len(t, set.Legs, 2)
	assert.Equal(t, 0, set.Legs[0].FromIndex)
	assert.Equal(t, 1, set.Legs[1].FromIndex)
	assert.Equal(t, "62.0 km", set.Legs[0].Distance)
	assert.Equal(t, "1h 15min", set.Legs[0].Duration)
	require.NotNil(t, set.Region)

	// Recomputing (say after a mode switch) starts a new pass; the
	// response is tagged with the advanced id so clients can discard
	// anything older.
	var next dto.RouteSetResponse
	resp = doJSON(t, http.MethodPost, srv.URL+"/trips/"+trip.ID+"/routes",
		dto.ComputeRoutesRequest{Mode: "driving"}, &next)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Greater(t, next.PassID, set.PassID)
}

func TestComputeRoutesPartialFailure(t *testing.T) {
	// Only the first pair is routable; the second leg fails and must be
	// absent without failing the request.
	routes := []directions.MockRoute{
		{From: palace, To: wall, Mode: domain.ModeWalking, Meters: 800, Seconds: 600},
	}
	srv := newTestServer(t, routes)
	trip := createTrip(t, srv)
	addDestination(t, srv, trip.ID, "Forbidden City", palace)
	addDestination(t, srv, trip.ID, "Great Wall", wall)
	addDestination(t, srv, trip.ID, "Temple of Heaven", temple)

	var set dto.RouteSetResponse
	resp := doJSON(t, http.MethodPost, srv.URL+"/trips/"+trip.ID+"/routes",
		dto.ComputeRoutesRequest{Mode: "walking"}, &set)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, 2, set.LegCount)
	require.Len(t, set.Legs, 1)
	assert.Equal(t, 0, set.Legs[0].FromIndex)
	// The mocked route carries no geometry; the leg still frames a region
	// from its endpoint pair.
	assert.NotZero(t, set.Legs[0].Region.LatSpan)
}

func TestComputeRoutesRejectsUnknownMode(t *testing.T) {
	srv := newTestServer(t, nil)
	trip := createTrip(t, srv)

	resp := doJSON(t, http.MethodPost, srv.URL+"/trips/"+trip.ID+"/routes",
		dto.ComputeRoutesRequest{Mode: "teleport"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdHocRoute(t *testing.T) {
	here := domain.Coordinate{Lat: 39.90, Lon: 116.41}
	routes := []directions.MockRoute{
		{From: here, To: temple, Mode: domain.ModeWalking, Meters: 2300, Seconds: 1700, Path: []domain.Coordinate{here, temple}},
	}
	srv := newTestServer(t, routes)
	trip := createTrip(t, srv)
	dest := addDestination(t, srv, trip.ID, "Temple of Heaven", temple)

	url := fmt.Sprintf("%s/trips/%s/destinations/%s/route", srv.URL, trip.ID, dest.ID)

	// Missing origin: no position fix, the route option is unavailable.
	resp := doJSON(t, http.MethodPost, url, dto.AdHocRouteRequest{Mode: "walking"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got dto.AdHocRouteResponse
	resp = doJSON(t, http.MethodPost, url,
		dto.AdHocRouteRequest{Mode: "walking", Origin: &dto.CoordinateRequest{Lat: here.Lat, Lon: here.Lon}}, &got)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2300.0, got.Leg.DistanceMeters)
	assert.Equal(t, "2.3 km", got.Leg.Distance)
	assert.NotZero(t, got.Leg.Region.LatSpan)
}
