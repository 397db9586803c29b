package errors

import "errors"

var (
	// ErrNotFound is returned when a class does not exist.
	ErrNotFound = errors.New("class not found")

	// ErrInvalidID is returned when a class ID is not a valid ObjectID.
	ErrInvalidID = errors.New("invalid class ID")
)
