package domain

import (
	"time"

	"github.com/google/uuid"
)

// Note is a free-form note attached to a trip, optionally linked to one
// of the trip's destinations. DestinationID is a soft link: if the
// destination is later removed the id dangles and the association simply
// resolves to none at lookup time.
type Note struct {
	ID            uuid.UUID
	Content       string
	CreatedAt     time.Time
	LastEditedAt  *time.Time // nil until the note is first edited
	DestinationID *uuid.UUID // nil when the note is not linked to a destination
}
