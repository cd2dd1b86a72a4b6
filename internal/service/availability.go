package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/slotwise/tempo/api/internal/model"
	"github.com/slotwise/tempo/api/internal/store"
)

// Defaults for the aggregate search.
const (
	DefaultSearchHorizon = 7 * 24 * time.Hour
	DefaultCandidateStep = 30 * time.Minute
	DefaultDayStartHour  = 9
	DefaultDayEndHour    = 17
)

// AvailabilityService enumerates candidate meeting slots common to a
// participant set. The aggregate scan steps uniformly through the search
// window; it does not skip ahead past busy intervals the way the
// single-calendar scan does. Candidates are therefore always aligned to
// the window start plus a multiple of the step.
type AvailabilityService struct {
	store        store.CalendarStore
	horizon      time.Duration
	step         time.Duration
	dayStartHour int
	dayEndHour   int
	now          func() time.Time
}

// AvailabilityServiceConfig holds configuration for the availability service
type AvailabilityServiceConfig struct {
	Store store.CalendarStore

	// SearchHorizon bounds the scan when no preferred range is given.
	// Defaults to 7 days.
	SearchHorizon time.Duration

	// CandidateStep is the aggregate scan granularity. Defaults to 30m.
	CandidateStep time.Duration

	// DayStartHour and DayEndHour bound acceptable start times, as hours
	// of day in the store's reference clock. Defaults: 9 and 17.
	DayStartHour int
	DayEndHour   int

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(cfg AvailabilityServiceConfig) *AvailabilityService {
	s := &AvailabilityService{
		store:        cfg.Store,
		horizon:      cfg.SearchHorizon,
		step:         cfg.CandidateStep,
		dayStartHour: cfg.DayStartHour,
		dayEndHour:   cfg.DayEndHour,
		now:          cfg.Now,
	}
	if s.horizon <= 0 {
		s.horizon = DefaultSearchHorizon
	}
	if s.step <= 0 {
		s.step = DefaultCandidateStep
	}
	if s.dayStartHour == 0 && s.dayEndHour == 0 {
		s.dayStartHour = DefaultDayStartHour
		s.dayEndHour = DefaultDayEndHour
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// SearchWindow resolves the scan window for a request: the preferred range
// when given, otherwise now through now plus the horizon.
func (s *AvailabilityService) SearchWindow(preferred *model.TimeRange) model.TimeRange {
	if preferred != nil {
		return *preferred
	}
	start := s.now()
	return model.TimeRange{Start: start, End: start.Add(s.horizon)}
}

// WithinBusinessHours reports whether a candidate start satisfies the
// working-hours policy: weekday, with the start hour inside the business
// day. The check applies to the start only, matching the scan granularity.
func (s *AvailabilityService) WithinBusinessHours(t time.Time) bool {
	if t.Hour() < s.dayStartHour || t.Hour() >= s.dayEndHour {
		return false
	}
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return true
}

// SnapshotCalendars fetches every participant's calendar concurrently and
// returns one consistent snapshot keyed by identity. The snapshot is not
// re-fetched during a search, so the scan observes a stable view.
func (s *AvailabilityService) SnapshotCalendars(ctx context.Context, participants []string) (map[string][]model.Event, error) {
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)
	calendars := make(map[string][]model.Event, len(participants))

	for _, identity := range participants {
		wg.Add(1)
		go func(identity string) {
			defer wg.Done()
			events, err := s.store.GetCalendar(ctx, identity)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("fetch calendar for %s: %w", identity, err)
				}
				return
			}
			calendars[identity] = events
		}(identity)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return calendars, nil
}

// CommonSlots enumerates, in ascending order, every candidate start in the
// window at which all calendars in the snapshot are simultaneously free
// and the business-hours policy holds. The scan covers the full window;
// callers wanting the earliest hit take the first element.
func (s *AvailabilityService) CommonSlots(calendars map[string][]model.Event, window model.TimeRange, duration time.Duration) []time.Time {
	slots := make([]time.Time, 0)
	if duration <= 0 {
		return slots
	}

	for cursor := window.Start; cursor.Add(duration).Before(window.End) || cursor.Add(duration).Equal(window.End); cursor = cursor.Add(s.step) {
		// Policy check first, before touching any calendar.
		if !s.WithinBusinessHours(cursor) {
			continue
		}
		if s.slotFree(calendars, cursor, cursor.Add(duration)) {
			slots = append(slots, cursor)
		}
	}
	return slots
}

// FindCommonSlots fetches a snapshot for the participants and enumerates
// common candidates over the resolved window.
func (s *AvailabilityService) FindCommonSlots(ctx context.Context, participants []string, duration time.Duration, preferred *model.TimeRange) ([]time.Time, error) {
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}
	window := s.SearchWindow(preferred)
	if !window.End.After(window.Start) {
		return nil, ErrInvalidTimeRange
	}

	calendars, err := s.SnapshotCalendars(ctx, participants)
	if err != nil {
		return nil, err
	}
	return s.CommonSlots(calendars, window, duration), nil
}

// Openings returns up to limit standalone openings for one identity over
// the window, via the store's single-calendar scan. Used as the degraded
// fallback when no common slot exists.
func (s *AvailabilityService) Openings(ctx context.Context, identity string, window model.TimeRange, duration time.Duration, limit int) ([]time.Time, error) {
	slots, err := s.store.FindAvailableSlots(ctx, identity, window.Start, window.End, duration)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(slots) > limit {
		slots = slots[:limit]
	}
	return slots, nil
}

// slotFree reports whether [start, end) is free on every calendar in the
// snapshot. An empty snapshot is trivially free.
func (s *AvailabilityService) slotFree(calendars map[string][]model.Event, start, end time.Time) bool {
	for _, events := range calendars {
		for i := range events {
			if events[i].Overlaps(start, end) {
				return false
			}
		}
	}
	return true
}
