package model

import "time"

// TimeRange narrows the scan horizon for a scheduling request.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// MeetingRequest represents a request to schedule a meeting for a set of
// participants. Participants are opaque identity keys, usually email
// addresses; no validation is applied beyond non-empty.
type MeetingRequest struct {
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	Participants       []string   `json:"participants"`
	DurationMinutes    int        `json:"duration_minutes"`
	PreferredTimeRange *TimeRange `json:"preferred_time_range,omitempty"`
}

// Duration returns the requested meeting length.
func (r *MeetingRequest) Duration() time.Duration {
	return time.Duration(r.DurationMinutes) * time.Minute
}

// ScheduleResult is the terminal outcome of a scheduling request. Finding
// no slot is a normal outcome, not an error: Success is false, Message
// explains, and SuggestedAlternatives carries a best-effort fallback.
type ScheduleResult struct {
	Success               bool        `json:"success"`
	ScheduledTime         *time.Time  `json:"scheduled_time,omitempty"`
	Meeting               *Event      `json:"meeting,omitempty"`
	Message               string      `json:"message,omitempty"`
	SuggestedAlternatives []time.Time `json:"suggested_alternatives,omitempty"`
}

// CreateEventRequest represents a direct event creation, used to load
// pre-existing calendar data outside the scheduling flow.
type CreateEventRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Participants []string  `json:"participants,omitempty"`
}
