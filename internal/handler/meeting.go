package handler

import (
	"net/http"

	"github.com/slotwise/tempo/api/internal/model"
	"github.com/slotwise/tempo/api/internal/service"
)

// MeetingHandler handles meeting scheduling endpoints
type MeetingHandler struct {
	scheduler *service.SchedulerService
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(scheduler *service.SchedulerService) *MeetingHandler {
	return &MeetingHandler{scheduler: scheduler}
}

// ScheduleMeeting handles POST /v1/meetings - schedule a meeting
func (h *MeetingHandler) ScheduleMeeting(w http.ResponseWriter, r *http.Request) {
	var req model.MeetingRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	var fieldErrors []model.FieldError
	if req.Title == "" {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if len(req.Participants) == 0 {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   "participants",
			Message: "at least one participant is required",
		})
	}
	if len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	result, err := h.scheduler.Schedule(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	// A no-slot outcome is a normal result, not an error.
	if !result.Success {
		WriteData(w, http.StatusOK, result, nil)
		return
	}

	WriteData(w, http.StatusCreated, result, map[string]string{
		"calendar": "/v1/calendars/" + result.Meeting.Participants[0],
	})
}
