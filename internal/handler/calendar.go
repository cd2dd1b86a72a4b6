package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/slotwise/tempo/api/internal/model"
	"github.com/slotwise/tempo/api/internal/store"
)

// CalendarHandler handles per-calendar endpoints
type CalendarHandler struct {
	store store.CalendarStore
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(cs store.CalendarStore) *CalendarHandler {
	return &CalendarHandler{store: cs}
}

// GetCalendar handles GET /v1/calendars/{identity} - list a calendar's events
func (h *CalendarHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	identity := r.PathValue("identity")
	if identity == "" {
		WriteError(w, model.NewBadRequestError("identity required"))
		return
	}

	events, err := h.store.GetCalendar(r.Context(), identity)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, events, map[string]string{
		"self": "/v1/calendars/" + identity,
	})
}

// CreateEvent handles POST /v1/calendars/{identity}/events - insert an event directly
func (h *CalendarHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	identity := r.PathValue("identity")
	if identity == "" {
		WriteError(w, model.NewBadRequestError("identity required"))
		return
	}

	var req model.CreateEventRequest
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
	if len(req.Title) > model.MaxTitleLength {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   "title",
			Message: "title exceeds maximum length",
		})
	}
	if len(req.Description) > model.MaxDescriptionLength {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   "description",
			Message: "description exceeds maximum length",
		})
	}
	if req.Start.IsZero() || req.End.IsZero() {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   "start",
			Message: "start and end are required",
		})
	} else if !req.End.After(req.Start) {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   "end",
			Message: "end must be after start",
		})
	}
	if len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	// The path identity is always a participant; the body may add more.
	participants := req.Participants
	if len(participants) == 0 {
		participants = []string{identity}
	} else if !containsIdentity(participants, identity) {
		participants = append([]string{identity}, participants...)
	}

	event, err := h.store.CreateEvent(r.Context(), req.Title, req.Description, req.Start, req.End, participants)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, event, map[string]string{
		"calendar": "/v1/calendars/" + identity,
	})
}

// DeleteEvent handles DELETE /v1/calendars/{identity}/events/{eventId} -
// remove one calendar's copy of an event
func (h *CalendarHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	identity := r.PathValue("identity")
	eventID := r.PathValue("eventId")
	if identity == "" || eventID == "" {
		WriteError(w, model.NewBadRequestError("identity and event ID required"))
		return
	}

	removed, err := h.store.DeleteEvent(r.Context(), identity, eventID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	if !removed {
		WriteError(w, model.NewNotFoundError("event"))
		return
	}

	WriteNoContent(w)
}

// GetSlots handles GET /v1/calendars/{identity}/slots - single-calendar availability scan
func (h *CalendarHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	identity := r.PathValue("identity")
	if identity == "" {
		WriteError(w, model.NewBadRequestError("identity required"))
		return
	}

	q := r.URL.Query()
	from, err := time.Parse(time.RFC3339, q.Get("from"))
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid from timestamp"))
		return
	}
	to, err := time.Parse(time.RFC3339, q.Get("to"))
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid to timestamp"))
		return
	}
	minutes, err := strconv.Atoi(q.Get("duration"))
	if err != nil || minutes <= 0 {
		WriteError(w, model.NewBadRequestError("duration must be a positive number of minutes"))
		return
	}
	if !to.After(from) {
		WriteError(w, model.NewBadRequestError("to must be after from"))
		return
	}

	slots, err := h.store.FindAvailableSlots(r.Context(), identity, from, to, time.Duration(minutes)*time.Minute)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, slots, nil)
}

func containsIdentity(identities []string, identity string) bool {
	for _, id := range identities {
		if id == identity {
			return true
		}
	}
	return false
}
