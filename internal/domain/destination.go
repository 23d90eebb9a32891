package domain

import "github.com/google/uuid"

// Destination is a single stop in a trip's itinerary.
// Identity is the ID, assigned at creation and never reassigned; a
// destination belongs to exactly one trip and is never shared.
type Destination struct {
	ID         uuid.UUID
	Name       string
	Address    string
	Coordinate Coordinate
}

// NewDestination creates a destination from a selected search result.
func NewDestination(name, address string, coord Coordinate) Destination {
	return Destination{
		ID:         uuid.New(),
		Name:       name,
		Address:    address,
		Coordinate: coord,
	}
}
