package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/slotwise/tempo/api/internal/model"
	"github.com/slotwise/tempo/api/internal/store"
)

// Inviter dispatches meeting invitations. Dispatch is best-effort: a
// failed invitation never rolls back the committed event.
type Inviter interface {
	SendInvitation(ctx context.Context, identity string, event *model.Event) error
}

// alternativeLimit caps the suggested alternatives on the no-slot path.
const alternativeLimit = 3

// noSlotMessage is returned when no common slot exists in the window.
const noSlotMessage = "No available slots found"

// SchedulerService drives a scheduling request end to end:
// snapshot fetch, aggregate search, pre-commit re-validation, fan-out
// commit, and invitation dispatch.
type SchedulerService struct {
	store        store.CalendarStore
	availability *AvailabilityService
	inviter      Inviter
}

// SchedulerServiceConfig holds configuration for the scheduler service
type SchedulerServiceConfig struct {
	Store        store.CalendarStore
	Availability *AvailabilityService
	Inviter      Inviter
}

// NewSchedulerService creates a new scheduler service
func NewSchedulerService(cfg SchedulerServiceConfig) *SchedulerService {
	return &SchedulerService{
		store:        cfg.Store,
		availability: cfg.Availability,
		inviter:      cfg.Inviter,
	}
}

// Schedule finds the earliest slot at which every participant is free and
// commits the meeting into all their calendars. When no slot exists it
// returns a structured no-slot result with suggested alternatives; only
// the success path mutates any calendar.
func (s *SchedulerService) Schedule(ctx context.Context, req *model.MeetingRequest) (*model.ScheduleResult, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	duration := req.Duration()
	window := s.availability.SearchWindow(req.PreferredTimeRange)
	if !window.End.After(window.Start) {
		return nil, ErrInvalidTimeRange
	}

	snapshot, err := s.availability.SnapshotCalendars(ctx, req.Participants)
	if err != nil {
		return nil, fmt.Errorf("snapshot calendars: %w", err)
	}

	candidates := s.availability.CommonSlots(snapshot, window, duration)
	if len(candidates) == 0 {
		return s.noSlotResult(ctx, req, window)
	}

	// Re-validate against a fresh snapshot to close the gap between the
	// read and the write: a concurrent commit may have taken a candidate
	// the search saw as free. Stale candidates fall through to later ones.
	fresh, err := s.availability.SnapshotCalendars(ctx, req.Participants)
	if err != nil {
		return nil, fmt.Errorf("re-validate calendars: %w", err)
	}

	for _, candidate := range candidates {
		if !s.availability.slotFree(fresh, candidate, candidate.Add(duration)) {
			slog.Info("candidate taken during scheduling, trying next",
				slog.Time("candidate", candidate))
			continue
		}

		event, err := s.store.CreateEvent(ctx, req.Title, req.Description, candidate, candidate.Add(duration), req.Participants)
		if err != nil {
			return nil, fmt.Errorf("commit meeting: %w", err)
		}

		s.dispatchInvitations(ctx, event)

		scheduled := candidate
		return &model.ScheduleResult{
			Success:       true,
			ScheduledTime: &scheduled,
			Meeting:       event,
		}, nil
	}

	// Every candidate went stale between search and commit.
	return s.noSlotResult(ctx, req, window)
}

// validate rejects malformed requests before any store access.
func (s *SchedulerService) validate(req *model.MeetingRequest) error {
	if len(req.Participants) == 0 {
		return ErrNoParticipants
	}
	for _, identity := range req.Participants {
		if strings.TrimSpace(identity) == "" {
			return ErrEmptyParticipant
		}
	}
	if req.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if len(req.Title) > model.MaxTitleLength {
		return ErrTitleTooLong
	}
	if len(req.Description) > model.MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if req.PreferredTimeRange != nil && !req.PreferredTimeRange.End.After(req.PreferredTimeRange.Start) {
		return ErrInvalidTimeRange
	}
	return nil
}

// noSlotResult builds the failure result: a message plus a degraded
// fallback of the first participant's standalone openings.
func (s *SchedulerService) noSlotResult(ctx context.Context, req *model.MeetingRequest, window model.TimeRange) (*model.ScheduleResult, error) {
	alternatives, err := s.availability.Openings(ctx, req.Participants[0], window, req.Duration(), alternativeLimit)
	if err != nil {
		// Alternatives are a courtesy; the no-slot outcome stands.
		slog.Warn("failed to collect alternatives",
			slog.String("identity", req.Participants[0]),
			slog.String("error", err.Error()))
		alternatives = nil
	}

	return &model.ScheduleResult{
		Success:               false,
		Message:               noSlotMessage,
		SuggestedAlternatives: alternatives,
	}, nil
}

// dispatchInvitations hands one invitation per participant to the inviter.
// Failures are logged and never affect the committed event.
func (s *SchedulerService) dispatchInvitations(ctx context.Context, event *model.Event) {
	if s.inviter == nil {
		return
	}
	for _, identity := range event.Participants {
		if err := s.inviter.SendInvitation(ctx, identity, event); err != nil {
			slog.Warn("invitation dispatch failed",
				slog.String("identity", identity),
				slog.String("event_id", event.ID),
				slog.String("error", err.Error()))
		}
	}
}
