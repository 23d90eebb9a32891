package handlers

import (
	"errors"
	"net/http"

	"trip-route-service/internal/api/dto"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
	"trip-route-service/internal/services"
)

// RouteHandler computes route legs for an itinerary and ad hoc routes
// towards a single destination.
type RouteHandler struct {
	Trips    *services.TripService
	Provider ports.DirectionsProvider
	Engines  *services.RouteEngines
	Cfg      services.EngineConfig
}

// Compute handles POST /trips/{id}/routes: one leg per adjacent
// destination pair under the requested transport mode, computed as a
// pass on the trip's route engine. Legs that fail to resolve are absent
// from the response; the itinerary still renders with fewer connecting
// routes. A request superseded by a newer computation for the same trip
// answers 409, and the newer request carries the results.
func (h *RouteHandler) Compute(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.ComputeRoutesRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	mode := domain.TransportMode(req.Mode)
	if !mode.Valid() {
		writeError(w, r, http.StatusBadRequest, "mode must be walking or driving")
		return
	}

	trip, err := h.Trips.GetTrip(r.Context(), tripID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	engine := h.Engines.For(tripID)
	pass := engine.Recompute(r.Context(), trip.Destinations, mode)
	set, err := engine.Wait(r.Context(), pass)
	if errors.Is(err, services.ErrPassSuperseded) {
		writeError(w, r, http.StatusConflict, "superseded by a newer route computation")
		return
	}
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.RouteSetResponse{
		PassID:   set.PassID,
		Mode:     string(set.Mode),
		LegCount: set.LegCount,
		Legs:     make([]dto.RouteLegResponse, 0, len(set.Legs)),
	}

	// Export in itinerary order; unresolved indices stay absent.
	for i := 0; i < set.LegCount; i++ {
		leg, ok := set.Legs[i]
		if !ok {
			continue
		}
		res.Legs = append(res.Legs, legToResponse(leg))
	}

	if region, ok := domain.RegionFor(trip.Coordinates(), domain.PaddingItinerary); ok {
		r := regionToResponse(region)
		res.Region = &r
	}

	writeJSON(w, r, http.StatusOK, res)
}

// AdHoc handles POST /trips/{id}/destinations/{destinationID}/route:
// a single route from the caller's current position to one destination.
func (h *RouteHandler) AdHoc(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	destID, ok := pathID(w, r, "destinationID")
	if !ok {
		return
	}

	var req dto.AdHocRouteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	mode := domain.TransportMode(req.Mode)
	if !mode.Valid() {
		writeError(w, r, http.StatusBadRequest, "mode must be walking or driving")
		return
	}
	if req.Origin == nil {
		// No position fix, nothing to route from.
		writeError(w, r, http.StatusBadRequest, "origin is required")
		return
	}

	trip, err := h.Trips.GetTrip(r.Context(), tripID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	dest, found := trip.Destination(destID)
	if !found {
		writeError(w, r, http.StatusNotFound, "destination not found")
		return
	}

	origin := domain.Coordinate{Lat: req.Origin.Lat, Lon: req.Origin.Lon}
	leg, err := services.ResolveRoute(r.Context(), h.Provider, origin, dest.Coordinate, mode, h.Cfg)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.AdHocRouteResponse{
		Mode: string(mode),
		Leg:  legToResponse(leg),
	})
}

func legToResponse(leg domain.RouteLeg) dto.RouteLegResponse {
	path := make([]dto.CoordinateResponse, 0, len(leg.Path))
	for _, c := range leg.Path {
		path = append(path, dto.CoordinateResponse{Lat: c.Lat, Lon: c.Lon})
	}

	res := dto.RouteLegResponse{
		FromIndex:       leg.FromIndex,
		ToIndex:         leg.ToIndex,
		DistanceMeters:  leg.DistanceMeters,
		DurationSeconds: leg.DurationSeconds,
		Distance:        domain.FormatDistance(leg.DistanceMeters),
		Duration:        domain.FormatDuration(leg.DurationSeconds),
		Path:            path,
	}

	// Frame the leg tighter than a whole itinerary.
	if region, ok := domain.RegionFor(leg.Endpoints(), domain.PaddingLeg); ok {
		res.Region = regionToResponse(region)
	}

	return res
}
