package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrAddonNotFound = errors.New("referenced add-on does not exist or is inactive")

	ErrDuplicateAttachment = errors.New("add-on already attached to booking")

	ErrClassFull = errors.New("class capacity exceeded")

	ErrInvalidTransition = errors.New("invalid booking status transition")

	ErrStaleStatus = errors.New("booking status changed concurrently")
)
