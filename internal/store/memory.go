package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/slotwise/tempo/api/internal/model"
)

// MemoryStore is a mutex-guarded in-memory CalendarStore. Event ids come
// from a process-local monotonic sequence, so ids are unique and
// non-decreasing regardless of deletions.
type MemoryStore struct {
	mu        sync.RWMutex
	calendars map[string][]model.Event
	seq       uint64
}

// NewMemoryStore creates an empty in-memory calendar store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		calendars: make(map[string][]model.Event),
	}
}

// GetCalendar returns a copy of the identity's calendar, creating an empty
// one as a side effect if none exists.
func (s *MemoryStore) GetCalendar(ctx context.Context, identity string) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, ok := s.calendars[identity]
	if !ok {
		s.calendars[identity] = []model.Event{}
		return []model.Event{}, nil
	}

	out := make([]model.Event, len(events))
	copy(out, events)
	return out, nil
}

// CreateEvent issues the next id and fans the event out to every named
// participant under a single lock, so the commit is all-or-nothing within
// this process.
func (s *MemoryStore) CreateEvent(ctx context.Context, title, description string, start, end time.Time, participants []string) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	id := fmt.Sprintf("event_%d", s.seq)

	for _, identity := range participants {
		s.calendars[identity] = append(s.calendars[identity], model.Event{
			ID:           id,
			Title:        title,
			Description:  description,
			Start:        start,
			End:          end,
			Participants: participants,
		})
	}

	return &model.Event{
		ID:           id,
		Title:        title,
		Description:  description,
		Start:        start,
		End:          end,
		Participants: participants,
	}, nil
}

// DeleteEvent removes the first matching event from one calendar only.
func (s *MemoryStore) DeleteEvent(ctx context.Context, identity, eventID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, ok := s.calendars[identity]
	if !ok {
		return false, nil
	}

	for i := range events {
		if events[i].ID == eventID {
			s.calendars[identity] = append(events[:i:i], events[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// FindAvailableSlots runs the single-calendar scan over the identity's
// events, creating the calendar if absent.
func (s *MemoryStore) FindAvailableSlots(ctx context.Context, identity string, windowStart, windowEnd time.Time, duration time.Duration) ([]time.Time, error) {
	events, err := s.GetCalendar(ctx, identity)
	if err != nil {
		return nil, err
	}
	return model.FreeSlots(events, windowStart, windowEnd, duration), nil
}

// PurgeEventsEndedBefore drops every event copy that ended before the
// cutoff. Empty calendars stay registered so auto-create reads remain
// idempotent.
func (s *MemoryStore) PurgeEventsEndedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for identity, events := range s.calendars {
		kept := events[:0]
		for _, e := range events {
			if e.End.Before(cutoff) {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		s.calendars[identity] = kept
	}
	return removed, nil
}
