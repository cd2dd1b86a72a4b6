package model

import "time"

// Event is a titled, described time interval [Start, End) with a unique id.
// When a meeting is committed, one copy of the event is written into every
// participant's calendar; the copies share the id but are independent after
// creation. Deleting a copy from one calendar does not affect the others.
type Event struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Participants []string  `json:"participants,omitempty"`
}

// Event constraints
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
)

// Duration returns the length of the event interval.
func (e *Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Overlaps reports whether the event's [Start, End) interval intersects
// [start, end). Touching endpoints do not overlap.
func (e *Event) Overlaps(start, end time.Time) bool {
	return Overlaps(e.Start, e.End, start, end)
}

// Overlaps is the half-open interval intersection predicate used for both
// conflict detection and slot scanning.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// FreeSlotRescanStep is the finer granularity the single-calendar scan
// resumes at after jumping past a blocking event.
const FreeSlotRescanStep = 15 * time.Minute

// FreeSlots scans one calendar over the half-open window [windowStart,
// windowEnd) and returns every start time at which [candidate,
// candidate+duration) fits inside the window and overlaps no event.
//
// When a candidate collides with an event, the cursor jumps to that event's
// end instead of advancing one step, so a slot opening immediately after a
// busy block is never missed. A free candidate advances the cursor by the
// full duration. Candidates are returned in ascending order.
func FreeSlots(events []Event, windowStart, windowEnd time.Time, duration time.Duration) []time.Time {
	var slots []time.Time
	if duration <= 0 {
		return slots
	}

	cursor := windowStart
	for !cursor.Add(duration).After(windowEnd) {
		if blocker := firstOverlap(events, cursor, cursor.Add(duration)); blocker != nil {
			if blocker.End.After(cursor) {
				cursor = blocker.End
			} else {
				// Degenerate event; step forward to guarantee progress.
				cursor = cursor.Add(FreeSlotRescanStep)
			}
			continue
		}
		slots = append(slots, cursor)
		cursor = cursor.Add(duration)
	}

	return slots
}

// firstOverlap returns the first event in insertion order that overlaps
// [start, end), or nil if the range is free.
func firstOverlap(events []Event, start, end time.Time) *Event {
	for i := range events {
		if events[i].Overlaps(start, end) {
			return &events[i]
		}
	}
	return nil
}
