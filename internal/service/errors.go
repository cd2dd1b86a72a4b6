package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Request Validation Errors =====
var (
	ErrNoParticipants     = errors.New("participant list is empty")
	ErrEmptyParticipant   = errors.New("participant identity is empty")
	ErrInvalidDuration    = errors.New("duration must be positive")
	ErrInvalidTimeRange   = errors.New("end time must be after start time")
	ErrTitleTooLong       = errors.New("title exceeds maximum length")
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")
)
