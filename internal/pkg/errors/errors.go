package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDuplicateName marks a create that collides with an existing name.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrIndexOutOfRange marks a positional access outside a list.
	ErrIndexOutOfRange = errors.New("index out of range")
)
