package handlers

import (
	"errors"

	"github.com/yungbote/devroster-backend/internal/platform/apierr"
	"github.com/yungbote/devroster-backend/internal/services"
)

// apiError maps registry failures onto HTTP statuses and error codes.
func apiError(err error) error {
	var (
		verr *services.ValidationError
		derr *services.DuplicateNameError
		nerr *services.NotFoundError
		ierr *services.IndexError
	)
	switch {
	case errors.As(err, &verr):
		return apierr.BadRequest("validation_failed", err)
	case errors.As(err, &derr):
		return apierr.Conflict("duplicate_name", err)
	case errors.As(err, &nerr):
		return apierr.NotFound("not_found", err)
	case errors.As(err, &ierr):
		return apierr.BadRequest("index_out_of_range", err)
	default:
		return apierr.Internal(err)
	}
}
