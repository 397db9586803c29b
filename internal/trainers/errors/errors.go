package errors

import "errors"

var (
	// ErrNotFound is returned when a trainer does not exist.
	ErrNotFound = errors.New("trainer not found")

	// ErrInvalidID is returned when a trainer ID is not a valid ObjectID.
	ErrInvalidID = errors.New("invalid trainer ID")
)
