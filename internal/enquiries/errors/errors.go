package errors

import "errors"

var (
	// ErrNotFound is returned when an enquiry does not exist.
	ErrNotFound = errors.New("enquiry not found")

	// ErrInvalidID is returned when an enquiry ID is not a valid ObjectID.
	ErrInvalidID = errors.New("invalid enquiry ID")
)
