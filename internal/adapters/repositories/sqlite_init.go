package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"trip-route-service/internal/domain"
)

// Initialize the database schema.
//
// Destinations and notes carry no foreign-key cascade on purpose: trip
// deletion removes owned rows explicitly in the repository so ownership
// rules live in code, not in the storage engine.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTripsQuery := `
	CREATE TABLE IF NOT EXISTS trips (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL
	);
	`

	createDestinationsQuery := `
	CREATE TABLE IF NOT EXISTS destinations (
		id TEXT PRIMARY KEY,
		trip_id TEXT NOT NULL,
		name TEXT NOT NULL,
		address TEXT NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		position INTEGER NOT NULL
	);
	`

	createNotesQuery := `
	CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		trip_id TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TEXT NOT NULL,
		last_edited_at TEXT,
		destination_id TEXT
	);
	`

	createDestinationIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_destinations_trip_position
	ON destinations(trip_id, position);
	`

	createNoteIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_notes_trip
	ON notes(trip_id);
	`

	statements := []string{
		createTripsQuery,
		createDestinationsQuery,
		createNotesQuery,
		createDestinationIndexQuery,
		createNoteIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type DestinationSeed struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type NoteSeed struct {
	Content string `json:"content"`
	// DestinationIndex links the note to the destination at that index
	// in the same seed trip. Negative means unlinked.
	DestinationIndex int `json:"destination_index"`
}

type TripSeed struct {
	Title        string            `json:"title"`
	Destinations []DestinationSeed `json:"destinations"`
	Notes        []NoteSeed        `json:"notes"`
}

// Populate the database with demo trips from a JSON file. Seeding is
// skipped when any trip already exists so restarts do not duplicate data.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed trips: read %q: %w", jsonPath, err)
	}

	var data []TripSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed trips: parse json: %w", err)
	}

	var existing int
	if err := db.QueryRow(`SELECT COUNT(*) FROM trips;`).Scan(&existing); err != nil {
		return fmt.Errorf("seed trips: count existing: %w", err)
	}
	if existing > 0 {
		return nil
	}

	repo := NewSqliteTripRepository(db)
	ctx := context.Background()

	for i, seed := range data {
		title := strings.TrimSpace(seed.Title)
		if title == "" {
			return fmt.Errorf("seed trips: trip at index %d: title cannot be empty", i+1)
		}

		trip := domain.NewTrip(title)
		if err := repo.CreateTrip(ctx, trip); err != nil {
			return fmt.Errorf("seed trips: %w", err)
		}

		dests := make([]domain.Destination, 0, len(seed.Destinations))
		for _, ds := range seed.Destinations {
			d := domain.NewDestination(ds.Name, ds.Address, domain.Coordinate{Lat: ds.Lat, Lon: ds.Lon})
			if err := repo.AddDestination(ctx, trip.ID, d); err != nil {
				return fmt.Errorf("seed trips: %w", err)
			}
			dests = append(dests, d)
		}

		for _, ns := range seed.Notes {
			note, err := trip.AddNote(ns.Content, nil)
			if err != nil {
				return fmt.Errorf("seed trips: %w", err)
			}
			if ns.DestinationIndex >= 0 && ns.DestinationIndex < len(dests) {
				note.DestinationID = &dests[ns.DestinationIndex].ID
			}
			if err := repo.AddNote(ctx, trip.ID, note); err != nil {
				return fmt.Errorf("seed trips: %w", err)
			}
		}
	}

	return nil
}
