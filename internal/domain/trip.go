package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate: a titled, ordered itinerary of
// destinations plus an unordered set of notes. Destination order is the
// visit order and defines route leg pairing; it only changes through
// explicit append/remove, never by re-sorting.
type Trip struct {
	ID           uuid.UUID
	Title        string
	Destinations []Destination
	Notes        []Note
}

func NewTrip(title string) *Trip {
	return &Trip{
		ID:    uuid.New(),
		Title: title,
	}
}

// AddDestination appends a destination to the end of the itinerary.
// New stops are assumed to be visited last; there is no reordering.
// Listing the same destination id twice is refused.
func (t *Trip) AddDestination(d Destination) error {
	for _, existing := range t.Destinations {
		if existing.ID == d.ID {
			return fmt.Errorf("add destination %s: already in trip: %w", d.ID, ErrValidation)
		}
	}
	t.Destinations = append(t.Destinations, d)
	return nil
}

// RemoveDestination removes a destination by id.
// Removing an id that is not present is a no-op.
func (t *Trip) RemoveDestination(id uuid.UUID) {
	for i, d := range t.Destinations {
		if d.ID == id {
			t.Destinations = append(t.Destinations[:i], t.Destinations[i+1:]...)
			return
		}
	}
}

// AddNote creates a note with the given content, optionally linked to a
// destination, and appends it to the trip. Empty content is refused.
func (t *Trip) AddNote(content string, destinationID *uuid.UUID) (Note, error) {
	if content == "" {
		return Note{}, fmt.Errorf("add note: content must be non-empty: %w", ErrValidation)
	}

	note := Note{
		ID:            uuid.New(),
		Content:       content,
		CreatedAt:     time.Now().UTC(),
		DestinationID: destinationID,
	}
	t.Notes = append(t.Notes, note)
	return note, nil
}

// UpdateNote replaces a note's content and destination link in place and
// stamps LastEditedAt. Empty content is refused.
func (t *Trip) UpdateNote(id uuid.UUID, content string, destinationID *uuid.UUID) (Note, error) {
	if content == "" {
		return Note{}, fmt.Errorf("update note %s: content must be non-empty: %w", id, ErrValidation)
	}

	for i := range t.Notes {
		if t.Notes[i].ID != id {
			continue
		}

		now := time.Now().UTC()
		t.Notes[i].Content = content
		t.Notes[i].DestinationID = destinationID
		t.Notes[i].LastEditedAt = &now
		return t.Notes[i], nil
	}

	return Note{}, fmt.Errorf("update note %s: %w", id, ErrNotFound)
}

// RemoveNote removes a note by id. Removing an absent id is a no-op.
func (t *Trip) RemoveNote(id uuid.UUID) {
	for i, n := range t.Notes {
		if n.ID == id {
			t.Notes = append(t.Notes[:i], t.Notes[i+1:]...)
			return
		}
	}
}

// Destination returns the trip's destination with the given id.
func (t *Trip) Destination(id uuid.UUID) (Destination, bool) {
	for _, d := range t.Destinations {
		if d.ID == id {
			return d, true
		}
	}
	return Destination{}, false
}

// AssociatedDestination resolves a note's destination link within this trip.
// A nil or dangling DestinationID resolves to no association; a dangling
// reference is expected after a linked destination was removed and is
// never an error.
func (t *Trip) AssociatedDestination(n Note) (Destination, bool) {
	if n.DestinationID == nil {
		return Destination{}, false
	}
	return t.Destination(*n.DestinationID)
}

// Coordinates returns the itinerary's coordinates in visit order.
func (t *Trip) Coordinates() []Coordinate {
	coords := make([]Coordinate, 0, len(t.Destinations))
	for _, d := range t.Destinations {
		coords = append(coords, d.Coordinate)
	}
	return coords
}
