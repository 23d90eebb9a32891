package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"trip-route-service/internal/domain"
)

// SQLite-backed implementation of the TripRepository port.
//
// Ownership is enforced here explicitly rather than through foreign-key
// cascade: deleting a trip deletes its destinations and notes in one
// transaction. Note destination links are deliberately NOT cleaned up
// when a destination is removed; the dangling id is resolved to "no
// association" at read time by the domain model.
type SqliteTripRepository struct{ DB *sql.DB }

func NewSqliteTripRepository(db *sql.DB) *SqliteTripRepository {
	return &SqliteTripRepository{DB: db}
}

func (s *SqliteTripRepository) CreateTrip(ctx context.Context, trip *domain.Trip) error {
	if s.DB == nil {
		return errors.New("sqlite trip repository: DB is nil")
	}

	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO trips (id, title) VALUES (?, ?);`,
		trip.ID.String(), trip.Title,
	)
	if err != nil {
		return fmt.Errorf("create trip: insert: %w", err)
	}
	return nil
}

func (s *SqliteTripRepository) GetTrip(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip repository: DB is nil")
	}

	trip := &domain.Trip{ID: id}
	err := s.DB.QueryRowContext(ctx,
		`SELECT title FROM trips WHERE id = ?;`, id.String(),
	).Scan(&trip.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get trip %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get trip %s: %w", id, err)
	}

	if trip.Destinations, err = s.listDestinations(ctx, id); err != nil {
		return nil, fmt.Errorf("get trip %s: %w", id, err)
	}
	if trip.Notes, err = s.listNotes(ctx, id); err != nil {
		return nil, fmt.Errorf("get trip %s: %w", id, err)
	}

	return trip, nil
}

func (s *SqliteTripRepository) ListTrips(ctx context.Context) ([]*domain.Trip, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT id, title FROM trips ORDER BY title;`)
	if err != nil {
		return nil, fmt.Errorf("list trips: query: %w", err)
	}
	defer rows.Close()

	trips := []*domain.Trip{}
	for rows.Next() {
		var rawID, title string
		if err := rows.Scan(&rawID, &title); err != nil {
			return nil, fmt.Errorf("list trips: scan: %w", err)
		}

		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("list trips: parse id %q: %w", rawID, err)
		}
		trips = append(trips, &domain.Trip{ID: id, Title: title})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	for _, trip := range trips {
		if trip.Destinations, err = s.listDestinations(ctx, trip.ID); err != nil {
			return nil, fmt.Errorf("list trips: %w", err)
		}
		if trip.Notes, err = s.listNotes(ctx, trip.ID); err != nil {
			return nil, fmt.Errorf("list trips: %w", err)
		}
	}

	return trips, nil
}

// DeleteTrip removes the trip and everything it owns in one transaction.
func (s *SqliteTripRepository) DeleteTrip(ctx context.Context, id uuid.UUID) error {
	if s.DB == nil {
		return errors.New("sqlite trip repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete trip: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{
		`DELETE FROM notes WHERE trip_id = ?;`,
		`DELETE FROM destinations WHERE trip_id = ?;`,
		`DELETE FROM trips WHERE id = ?;`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, id.String()); err != nil {
			return fmt.Errorf("delete trip %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete trip: commit tx: %w", err)
	}
	return nil
}

// AddDestination appends to the end of the itinerary: the new row takes
// the next position after the current maximum.
func (s *SqliteTripRepository) AddDestination(ctx context.Context, tripID uuid.UUID, d domain.Destination) error {
	if s.DB == nil {
		return errors.New("sqlite trip repository: DB is nil")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT INTO destinations (id, trip_id, name, address, lat, lon, position)
	VALUES (?, ?, ?, ?, ?, ?,
		(SELECT COALESCE(MAX(position), 0) + 1 FROM destinations WHERE trip_id = ?));`,
		d.ID.String(), tripID.String(), d.Name, d.Address,
		d.Coordinate.Lat, d.Coordinate.Lon, tripID.String(),
	)
	if err != nil {
		return fmt.Errorf("add destination %s: %w", d.ID, err)
	}
	return nil
}

// RemoveDestination deletes by id; positions of the remaining rows are
// left untouched, the gap is harmless since reads order by position.
func (s *SqliteTripRepository) RemoveDestination(ctx context.Context, tripID, destinationID uuid.UUID) error {
	if s.DB == nil {
		return errors.New("sqlite trip repository: DB is nil")
	}

	_, err := s.DB.ExecContext(ctx,
		`DELETE FROM destinations WHERE trip_id = ? AND id = ?;`,
		tripID.String(), destinationID.String(),
	)
	if err != nil {
		return fmt.Errorf("remove destination %s: %w", destinationID, err)
	}
	return nil
}

func (s *SqliteTripRepository) AddNote(ctx context.Context, tripID uuid.UUID, n domain.Note) error {
	if s.DB == nil {
		return errors.New("sqlite trip repository: DB is nil")
	}

	var destID any
	if n.DestinationID != nil {
		destID = n.DestinationID.String()
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT INTO notes (id, trip_id, content, created_at, last_edited_at, destination_id)
	VALUES (?, ?, ?, ?, NULL, ?);`,
		n.ID.String(), tripID.String(), n.Content,
		n.CreatedAt.UTC().Format(time.RFC3339Nano), destID,
	)
	if err != nil {
		return fmt.Errorf("add note %s: %w", n.ID, err)
	}
	return nil
}

func (s *SqliteTripRepository) UpdateNote(ctx context.Context, tripID uuid.UUID, n domain.Note) error {
	if s.DB == nil {
		return errors.New("sqlite trip repository: DB is nil")
	}

	var destID any
	if n.DestinationID != nil {
		destID = n.DestinationID.String()
	}
	var edited any
	if n.LastEditedAt != nil {
		edited = n.LastEditedAt.UTC().Format(time.RFC3339Nano)
	}

	res, err := s.DB.ExecContext(ctx, `
	UPDATE notes SET content = ?, last_edited_at = ?, destination_id = ?
	WHERE trip_id = ? AND id = ?;`,
		n.Content, edited, destID, tripID.String(), n.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update note %s: %w", n.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update note %s: rows affected: %w", n.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("update note %s: %w", n.ID, domain.ErrNotFound)
	}
	return nil
}

func (s *SqliteTripRepository) RemoveNote(ctx context.Context, tripID, noteID uuid.UUID) error {
	if s.DB == nil {
		return errors.New("sqlite trip repository: DB is nil")
	}

	_, err := s.DB.ExecContext(ctx,
		`DELETE FROM notes WHERE trip_id = ? AND id = ?;`,
		tripID.String(), noteID.String(),
	)
	if err != nil {
		return fmt.Errorf("remove note %s: %w", noteID, err)
	}
	return nil
}

func (s *SqliteTripRepository) listDestinations(ctx context.Context, tripID uuid.UUID) ([]domain.Destination, error) {
	rows, err := s.DB.QueryContext(ctx, `
	SELECT id, name, address, lat, lon
	FROM destinations
	WHERE trip_id = ?
	ORDER BY position;`, tripID.String())
	if err != nil {
		return nil, fmt.Errorf("list destinations: query: %w", err)
	}
	defer rows.Close()

	var out []domain.Destination
	for rows.Next() {
		var rawID string
		var d domain.Destination
		if err := rows.Scan(&rawID, &d.Name, &d.Address, &d.Coordinate.Lat, &d.Coordinate.Lon); err != nil {
			return nil, fmt.Errorf("list destinations: scan: %w", err)
		}
		if d.ID, err = uuid.Parse(rawID); err != nil {
			return nil, fmt.Errorf("list destinations: parse id %q: %w", rawID, err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list destinations: row iteration: %w", err)
	}
	return out, nil
}

func (s *SqliteTripRepository) listNotes(ctx context.Context, tripID uuid.UUID) ([]domain.Note, error) {
	rows, err := s.DB.QueryContext(ctx, `
	SELECT id, content, created_at, last_edited_at, destination_id
	FROM notes
	WHERE trip_id = ?
	ORDER BY created_at;`, tripID.String())
	if err != nil {
		return nil, fmt.Errorf("list notes: query: %w", err)
	}
	defer rows.Close()

	var out []domain.Note
	for rows.Next() {
		var rawID, rawCreated string
		var rawEdited, rawDest sql.NullString
		var n domain.Note
		if err := rows.Scan(&rawID, &n.Content, &rawCreated, &rawEdited, &rawDest); err != nil {
			return nil, fmt.Errorf("list notes: scan: %w", err)
		}

		if n.ID, err = uuid.Parse(rawID); err != nil {
			return nil, fmt.Errorf("list notes: parse id %q: %w", rawID, err)
		}
		if n.CreatedAt, err = time.Parse(time.RFC3339Nano, rawCreated); err != nil {
			return nil, fmt.Errorf("list notes: parse created_at %q: %w", rawCreated, err)
		}
		if rawEdited.Valid {
			edited, err := time.Parse(time.RFC3339Nano, rawEdited.String)
			if err != nil {
				return nil, fmt.Errorf("list notes: parse last_edited_at %q: %w", rawEdited.String, err)
			}
			n.LastEditedAt = &edited
		}
		if rawDest.Valid {
			destID, err := uuid.Parse(rawDest.String)
			if err != nil {
				return nil, fmt.Errorf("list notes: parse destination_id %q: %w", rawDest.String, err)
			}
			n.DestinationID = &destID
		}

		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notes: row iteration: %w", err)
	}
	return out, nil
}
