package models

import "errors"

// Sentinel errors for entity validation.
var (
	ErrMissingID   = errors.New("id is required")
	ErrMissingName = errors.New("name is required")
)

// Sentinel errors for lookups and request handling.
var (
	ErrEntityNotFound      = errors.New("entity not found")
	ErrInvalidEntityType   = errors.New("invalid entity type")
	ErrSnapshotUnavailable = errors.New("entity snapshot not loaded")
)
