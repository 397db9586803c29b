package errors

import "errors"

var (
	// ErrNotFound is returned when an add-on does not exist.
	ErrNotFound = errors.New("add-on not found")

	// ErrInvalidID is returned when an add-on ID is not a valid ObjectID.
	ErrInvalidID = errors.New("invalid add-on ID")
)
