package ports

import (
	"context"

	"github.com/google/uuid"

	"trip-route-service/internal/domain"
)

// Port: a boundary for persisting trips with their owned destinations
// and notes. Implementations must honor cascading ownership: deleting a
// trip deletes every destination and note that belongs to it.
type TripRepository interface {
	CreateTrip(ctx context.Context, trip *domain.Trip) error
	GetTrip(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
	ListTrips(ctx context.Context) ([]*domain.Trip, error)
	// DeleteTrip removes the trip and all of its destinations and notes.
	DeleteTrip(ctx context.Context, id uuid.UUID) error

	AddDestination(ctx context.Context, tripID uuid.UUID, d domain.Destination) error
	RemoveDestination(ctx context.Context, tripID, destinationID uuid.UUID) error

	AddNote(ctx context.Context, tripID uuid.UUID, n domain.Note) error
	UpdateNote(ctx context.Context, tripID uuid.UUID, n domain.Note) error
	RemoveNote(ctx context.Context, tripID, noteID uuid.UUID) error
}
