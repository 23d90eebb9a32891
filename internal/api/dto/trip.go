package dto

import "time"

type CreateTripRequest struct {
	Title string `json:"title"`
}

type AddDestinationRequest struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type NoteRequest struct {
	Content string `json:"content"`
	// DestinationID optionally links the note to one of the trip's
	// destinations.
	DestinationID *string `json:"destination_id"`
}

type DestinationResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type NoteResponse struct {
	ID           string     `json:"id"`
	Content      string     `json:"content"`
	CreatedAt    time.Time  `json:"created_at"`
	LastEditedAt *time.Time `json:"last_edited_at,omitempty"`
	// Destination carries the resolved association. A dangling
	// destination id resolves to no association and is omitted.
	Destination *DestinationResponse `json:"destination,omitempty"`
}

type TripResponse struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	Destinations []DestinationResponse `json:"destinations"`
	Notes        []NoteResponse        `json:"notes"`
	// Region frames the whole itinerary; omitted for trips without
	// destinations.
	Region *RegionResponse `json:"region,omitempty"`
}

type ListTripsResponse struct {
	Trips []TripResponse `json:"trips"`
}
