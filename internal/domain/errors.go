package domain

import "errors"

// Sentinel errors checked by callers via errors.Is.
var (
	// ErrValidation marks a mutation refused by a model rule
	// (e.g. empty note content, duplicate destination id).
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks a lookup for an entity that does not exist.
	ErrNotFound = errors.New("not found")
)
