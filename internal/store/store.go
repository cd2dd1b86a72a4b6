package store

import (
	"context"
	"time"

	"github.com/slotwise/tempo/api/internal/model"
)

// CalendarStore is the persistence contract the scheduling core depends on.
// All implementations share the semantics documented in the package
// comment: auto-creating reads, fan-out event creation under a shared id,
// per-participant deletion, and a single-calendar availability scan.
type CalendarStore interface {
	// GetCalendar returns the identity's events in insertion order,
	// creating and persisting an empty calendar if none exists.
	GetCalendar(ctx context.Context, identity string) ([]model.Event, error)

	// CreateEvent assigns the next event id, appends a copy of the event to
	// every named participant's calendar, and returns the canonical record
	// carrying the full participant list.
	CreateEvent(ctx context.Context, title, description string, start, end time.Time, participants []string) (*model.Event, error)

	// DeleteEvent removes the first event with the given id from one
	// participant's calendar only. It reports whether a removal occurred.
	DeleteEvent(ctx context.Context, identity, eventID string) (bool, error)

	// FindAvailableSlots scans the identity's calendar over [windowStart,
	// windowEnd) and returns every start time where a slot of the given
	// duration is free.
	FindAvailableSlots(ctx context.Context, identity string, windowStart, windowEnd time.Time, duration time.Duration) ([]time.Time, error)

	// PurgeEventsEndedBefore deletes every event copy whose end precedes
	// the cutoff, across all calendars, and returns the number removed.
	PurgeEventsEndedBefore(ctx context.Context, cutoff time.Time) (int, error)
}
