package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"trip-route-service/internal/domain"
	"trip-route-service/internal/ports"
)

// TripService applies itinerary and note rules on the Trip aggregate and
// persists accepted mutations through the repository port. Validation
// lives on the domain model; this layer loads, mutates, and stores.
type TripService struct {
	repo ports.TripRepository
}

func NewTripService(repo ports.TripRepository) *TripService {
	return &TripService{repo: repo}
}

func (s *TripService) CreateTrip(ctx context.Context, title string) (*domain.Trip, error) {
	if title == "" {
		return nil, fmt.Errorf("create trip: title must be non-empty: %w", domain.ErrValidation)
	}

	trip := domain.NewTrip(title)
	if err := s.repo.CreateTrip(ctx, trip); err != nil {
		return nil, fmt.Errorf("create trip: %w", err)
	}
	return trip, nil
}

func (s *TripService) GetTrip(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	trip, err := s.repo.GetTrip(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get trip %s: %w", id, err)
	}
	return trip, nil
}

func (s *TripService) ListTrips(ctx context.Context) ([]*domain.Trip, error) {
	trips, err := s.repo.ListTrips(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	return trips, nil
}

// DeleteTrip removes a trip together with everything it owns.
func (s *TripService) DeleteTrip(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteTrip(ctx, id); err != nil {
		return fmt.Errorf("delete trip %s: %w", id, err)
	}
	return nil
}

// AddDestination appends a new stop to the end of the trip's itinerary.
func (s *TripService) AddDestination(ctx context.Context, tripID uuid.UUID, name, address string, coord domain.Coordinate) (domain.Destination, error) {
	trip, err := s.repo.GetTrip(ctx, tripID)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("add destination: get trip %s: %w", tripID, err)
	}

	dest := domain.NewDestination(name, address, coord)
	if err := trip.AddDestination(dest); err != nil {
		return domain.Destination{}, fmt.Errorf("add destination: %w", err)
	}

	if err := s.repo.AddDestination(ctx, tripID, dest); err != nil {
		return domain.Destination{}, fmt.Errorf("add destination: %w", err)
	}
	return dest, nil
}

// RemoveDestination removes a stop by id. Notes linked to the removed
// destination keep their dangling id; the association resolves to none
// from then on.
func (s *TripService) RemoveDestination(ctx context.Context, tripID, destinationID uuid.UUID) error {
	if err := s.repo.RemoveDestination(ctx, tripID, destinationID); err != nil {
		return fmt.Errorf("remove destination %s: %w", destinationID, err)
	}
	return nil
}

func (s *TripService) AddNote(ctx context.Context, tripID uuid.UUID, content string, destinationID *uuid.UUID) (domain.Note, error) {
	trip, err := s.repo.GetTrip(ctx, tripID)
	if err != nil {
		return domain.Note{}, fmt.Errorf("add note: get trip %s: %w", tripID, err)
	}

	note, err := trip.AddNote(content, destinationID)
	if err != nil {
		return domain.Note{}, fmt.Errorf("add note: %w", err)
	}

	if err := s.repo.AddNote(ctx, tripID, note); err != nil {
		return domain.Note{}, fmt.Errorf("add note: %w", err)
	}
	return note, nil
}

func (s *TripService) UpdateNote(ctx context.Context, tripID, noteID uuid.UUID, content string, destinationID *uuid.UUID) (domain.Note, error) {
	trip, err := s.repo.GetTrip(ctx, tripID)
	if err != nil {
		return domain.Note{}, fmt.Errorf("update note: get trip %s: %w", tripID, err)
	}

	note, err := trip.UpdateNote(noteID, content, destinationID)
	if err != nil {
		return domain.Note{}, fmt.Errorf("update note: %w", err)
	}

	if err := s.repo.UpdateNote(ctx, tripID, note); err != nil {
		return domain.Note{}, fmt.Errorf("update note: %w", err)
	}
	return note, nil
}

func (s *TripService) RemoveNote(ctx context.Context, tripID, noteID uuid.UUID) error {
	if err := s.repo.RemoveNote(ctx, tripID, noteID); err != nil {
		return fmt.Errorf("remove note %s: %w", noteID, err)
	}
	return nil
}
