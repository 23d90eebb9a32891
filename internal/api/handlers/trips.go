package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"trip-route-service/internal/api/dto"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/services"
)

// TripHandler exposes trip, destination, and note mutation endpoints.
type TripHandler struct {
	Trips *services.TripService
	// Engines, when set, is notified on trip deletion so the trip's
	// route engine does not outlive it.
	Engines *services.RouteEngines
}

func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTripRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	trip, err := h.Trips.CreateTrip(r.Context(), strings.TrimSpace(req.Title))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, tripToResponse(trip))
}

func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	trips, err := h.Trips.ListTrips(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ListTripsResponse{Trips: make([]dto.TripResponse, 0, len(trips))}
	for _, trip := range trips {
		res.Trips = append(res.Trips, tripToResponse(trip))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	trip, err := h.Trips.GetTrip(r.Context(), tripID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, tripToResponse(trip))
}

func (h *TripHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.Trips.DeleteTrip(r.Context(), tripID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	if h.Engines != nil {
		h.Engines.Drop(tripID)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TripHandler) AddDestination(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.AddDestinationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}

	dest, err := h.Trips.AddDestination(r.Context(), tripID, req.Name, req.Address,
		domain.Coordinate{Lat: req.Lat, Lon: req.Lon})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, destinationToResponse(dest))
}

func (h *TripHandler) RemoveDestination(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	destID, ok := pathID(w, r, "destinationID")
	if !ok {
		return
	}

	if err := h.Trips.RemoveDestination(r.Context(), tripID, destID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TripHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	req, destID, ok := noteRequest(w, r)
	if !ok {
		return
	}

	note, err := h.Trips.AddNote(r.Context(), tripID, req.Content, destID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, noteToResponse(note, nil))
}

func (h *TripHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	noteID, ok := pathID(w, r, "noteID")
	if !ok {
		return
	}

	req, destID, ok := noteRequest(w, r)
	if !ok {
		return
	}

	note, err := h.Trips.UpdateNote(r.Context(), tripID, noteID, req.Content, destID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, noteToResponse(note, nil))
}

func (h *TripHandler) RemoveNote(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	noteID, ok := pathID(w, r, "noteID")
	if !ok {
		return
	}

	if err := h.Trips.RemoveNote(r.Context(), tripID, noteID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses a UUID path segment, answering 400 on garbage.
func pathID(w http.ResponseWriter, r *http.Request, segment string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(segment))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid "+segment)
		return uuid.Nil, false
	}
	return id, true
}

func noteRequest(w http.ResponseWriter, r *http.Request) (dto.NoteRequest, *uuid.UUID, bool) {
	var req dto.NoteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return dto.NoteRequest{}, nil, false
	}

	var destID *uuid.UUID
	if req.DestinationID != nil {
		parsed, err := uuid.Parse(*req.DestinationID)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid destination_id")
			return dto.NoteRequest{}, nil, false
		}
		destID = &parsed
	}
	return req, destID, true
}

func destinationToResponse(d domain.Destination) dto.DestinationResponse {
	return dto.DestinationResponse{
		ID:      d.ID.String(),
		Name:    d.Name,
		Address: d.Address,
		Lat:     d.Coordinate.Lat,
		Lon:     d.Coordinate.Lon,
	}
}

func noteToResponse(n domain.Note, associated *domain.Destination) dto.NoteResponse {
	res := dto.NoteResponse{
		ID:           n.ID.String(),
		Content:      n.Content,
		CreatedAt:    n.CreatedAt,
		LastEditedAt: n.LastEditedAt,
	}
	if associated != nil {
		dest := destinationToResponse(*associated)
		res.Destination = &dest
	}
	return res
}

func tripToResponse(trip *domain.Trip) dto.TripResponse {
	res := dto.TripResponse{
		ID:           trip.ID.String(),
		Title:        trip.Title,
		Destinations: make([]dto.DestinationResponse, 0, len(trip.Destinations)),
		Notes:        make([]dto.NoteResponse, 0, len(trip.Notes)),
	}

	for _, d := range trip.Destinations {
		res.Destinations = append(res.Destinations, destinationToResponse(d))
	}

	for _, n := range trip.Notes {
		// A dangling destination link resolves to no association here.
		if dest, ok := trip.AssociatedDestination(n); ok {
			res.Notes = append(res.Notes, noteToResponse(n, &dest))
		} else {
			res.Notes = append(res.Notes, noteToResponse(n, nil))
		}
	}

	if region, ok := domain.RegionFor(trip.Coordinates(), domain.PaddingItinerary); ok {
		r := regionToResponse(region)
		res.Region = &r
	}

	return res
}

func regionToResponse(region domain.Region) dto.RegionResponse {
	return dto.RegionResponse{
		CenterLat: region.Center.Lat,
		CenterLon: region.Center.Lon,
		LatSpan:   region.LatSpan,
		LonSpan:   region.LonSpan,
	}
}
