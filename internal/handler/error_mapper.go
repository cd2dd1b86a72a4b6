package handler

import (
	"errors"

	"github.com/slotwise/tempo/api/internal/database"
	"github.com/slotwise/tempo/api/internal/model"
	"github.com/slotwise/tempo/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring
// consistent HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Not Found Errors → 404 =====
	case errors.Is(err, database.ErrNotFound):
		return model.NewNotFoundError("resource")

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrNoParticipants),
		errors.Is(err, service.ErrEmptyParticipant):
		return model.NewValidationError([]model.FieldError{{Field: "participants", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidDuration):
		return model.NewValidationError([]model.FieldError{{Field: "duration_minutes", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidTimeRange):
		return model.NewValidationError([]model.FieldError{{Field: "preferred_time_range", Message: err.Error()}})
	case errors.Is(err, service.ErrTitleTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "title", Message: err.Error()}})
	case errors.Is(err, service.ErrDescriptionTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "description", Message: err.Error()}})

	// ===== Infrastructure Errors → 500 =====
	case errors.Is(err, database.ErrConnection),
		errors.Is(err, database.ErrQuery):
		return model.NewInternalError("storage unavailable")

	default:
		return model.NewInternalError("")
	}
}
