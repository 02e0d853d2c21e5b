package services

import (
	"fmt"

	apperrors "github.com/yungbote/devroster-backend/internal/pkg/errors"
)

// ValidationError reports a missing or malformed required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return apperrors.ErrInvalidArgument }

// DuplicateNameError reports a save whose name already belongs to another developer.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("developer with name %s already exists", e.Name)
}

func (e *DuplicateNameError) Unwrap() error { return apperrors.ErrDuplicateName }

type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("developer with id %s not found", e.ID)
}

func (e *NotFoundError) Unwrap() error { return apperrors.ErrNotFound }

// IndexError is a caller contract violation: the index did not come from the
// current framework list.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("framework index %d out of range [0,%d)", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return apperrors.ErrIndexOutOfRange }

// errorCode is the metrics/log label for an operation outcome.
func errorCode(err error) string {
	switch err.(type) {
	case nil:
		return "ok"
	case *ValidationError:
		return "validation_failed"
	case *DuplicateNameError:
		return "duplicate_name"
	case *NotFoundError:
		return "not_found"
	case *IndexError:
		return "index_out_of_range"
	default:
		return "internal"
	}
}
