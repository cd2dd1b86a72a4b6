package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/slotwise/tempo/api/internal/database"
	"github.com/slotwise/tempo/api/internal/model"
)

// CalendarRepository is the SurrealDB-backed calendar store. It implements
// the store.CalendarStore contract: auto-creating reads, sequence-issued
// event ids, and atomic fan-out of event copies to participant calendars.
type CalendarRepository struct {
	db database.Database
}

// NewCalendarRepository creates a new calendar repository
func NewCalendarRepository(db database.Database) *CalendarRepository {
	return &CalendarRepository{db: db}
}

// GetCalendar returns the identity's events in insertion order, creating
// the calendar record if it does not exist yet.
func (r *CalendarRepository) GetCalendar(ctx context.Context, identity string) ([]model.Event, error) {
	if err := r.ensureCalendar(ctx, identity); err != nil {
		return nil, err
	}

	query := `
		SELECT * FROM event
		WHERE calendar = $identity
		ORDER BY seq ASC
	`
	vars := map[string]interface{}{"identity": identity}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return r.parseEventsResult(result)
}

// CreateEvent allocates the next event id from the sequence record and
// commits one event copy per participant, plus the participants' calendar
// records, as a single batch transaction.
func (r *CalendarRepository) CreateEvent(ctx context.Context, title, description string, start, end time.Time, participants []string) (*model.Event, error) {
	seq, err := r.nextEventSeq(ctx)
	if err != nil {
		return nil, err
	}
	id := fmt.Sprintf("event_%d", seq)

	batch := database.NewAtomicBatch()
	for _, identity := range participants {
		batch.Add(`UPSERT type::thing("calendar", $identity) SET identity = $identity`, map[string]interface{}{
			"identity": identity,
		})
		batch.Add(`
			CREATE event CONTENT {
				calendar: $identity,
				event_id: $event_id,
				seq: $seq,
				title: $title,
				description: $description,
				start_time: $start_time,
				end_time: $end_time,
				participants: $participants,
				created_on: time::now()
			}
		`, map[string]interface{}{
			"identity":     identity,
			"event_id":     id,
			"seq":          seq,
			"title":        title,
			"description":  description,
			"start_time":   start,
			"end_time":     end,
			"participants": participants,
		})
	}

	if err := batch.Execute(ctx, r.db); err != nil {
		return nil, err
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

// DeleteEvent removes the event copy from one participant's calendar only.
// Copies on other calendars are untouched.
func (r *CalendarRepository) DeleteEvent(ctx context.Context, identity, eventID string) (bool, error) {
	query := `
		DELETE event
		WHERE calendar = $identity AND event_id = $event_id
		RETURN BEFORE
	`
	vars := map[string]interface{}{
		"identity": identity,
		"event_id": eventID,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return false, err
	}

	return len(extractQueryResults(result)) > 0, nil
}

// FindAvailableSlots loads the identity's calendar and runs the
// single-calendar scan over it.
func (r *CalendarRepository) FindAvailableSlots(ctx context.Context, identity string, windowStart, windowEnd time.Time, duration time.Duration) ([]time.Time, error) {
	events, err := r.GetCalendar(ctx, identity)
	if err != nil {
		return nil, err
	}
	return model.FreeSlots(events, windowStart, windowEnd, duration), nil
}

// PurgeEventsEndedBefore deletes every event copy that ended before the
// cutoff and reports how many copies were removed. Calendar records stay.
func (r *CalendarRepository) PurgeEventsEndedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	query := `
		DELETE event
		WHERE end_time < $cutoff
		RETURN BEFORE
	`
	vars := map[string]interface{}{"cutoff": cutoff}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return 0, err
	}

	return len(extractQueryResults(result)), nil
}

// ensureCalendar creates the identity's calendar record if absent.
// Reads never fail with "not found".
func (r *CalendarRepository) ensureCalendar(ctx context.Context, identity string) error {
	query := `UPSERT type::thing("calendar", $identity) SET identity = $identity`
	vars := map[string]interface{}{"identity": identity}

	return r.db.Execute(ctx, query, vars)
}

// nextEventSeq bumps the central event sequence and returns the new value.
// The bump happens outside the fan-out batch, so a failed commit skips the
// id rather than reusing it.
func (r *CalendarRepository) nextEventSeq(ctx context.Context) (int, error) {
	query := `UPSERT sequence:event SET value += 1 RETURN AFTER`

	result, err := r.db.QueryOne(ctx, query, nil)
	if err != nil {
		return 0, err
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return 0, errors.New("unexpected sequence result format")
	}

	seq := getInt(data, "value")
	if seq <= 0 {
		return 0, errors.New("sequence returned non-positive value")
	}
	return seq, nil
}

// Helper functions

func (r *CalendarRepository) parseEventResult(result interface{}) (*model.Event, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	event := &model.Event{
		ID:           getString(data, "event_id"),
		Title:        getString(data, "title"),
		Description:  getString(data, "description"),
		Participants: getStringSlice(data, "participants"),
	}

	if start := getTime(data, "start_time"); start != nil {
		event.Start = *start
	}
	if end := getTime(data, "end_time"); end != nil {
		event.End = *end
	}

	return event, nil
}

func (r *CalendarRepository) parseEventsResult(result []interface{}) ([]model.Event, error) {
	events := make([]model.Event, 0)

	for _, row := range extractQueryResults(result) {
		event, err := r.parseEventResult(row)
		if err != nil {
			continue
		}
		events = append(events, *event)
	}

	return events, nil
}
