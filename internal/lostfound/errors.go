package lostfound

import "errors"

var (
	// ErrNotFound is returned when an entity does not exist or belongs to another tenant
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a state transition precondition does not hold
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput is returned for malformed item or request attributes
	ErrInvalidInput = errors.New("invalid input")
)
