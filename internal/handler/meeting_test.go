package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/slotwise/tempo/api/internal/model"
	"github.com/slotwise/tempo/api/internal/service"
	"github.com/slotwise/tempo/api/internal/store"
)

func newMeetingMux(cs store.CalendarStore) *http.ServeMux {
	availability := service.NewAvailabilityService(service.AvailabilityServiceConfig{
		Store: cs,
		Now:   func() time.Time { return at(0, 0) },
	})
	scheduler := service.NewSchedulerService(service.SchedulerServiceConfig{
		Store:        cs,
		Availability: availability,
	})
	h := NewMeetingHandler(scheduler)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/meetings", h.ScheduleMeeting)
	return mux
}

func TestMeetingHandler_ScheduleSuccess(t *testing.T) {
	cs := store.NewMemoryStore()
	mux := newMeetingMux(cs)

	rec := postJSON(t, mux, "/v1/meetings", model.MeetingRequest{
		Title:              "planning",
		Participants:       []string{"ada@example.com", "grace@example.com"},
		DurationMinutes:    60,
		PreferredTimeRange: &model.TimeRange{Start: at(9, 0), End: at(17, 0)},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data model.ScheduleResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Data.Success {
		t.Fatalf("expected success, got %+v", resp.Data)
	}
	if resp.Data.ScheduledTime == nil || !resp.Data.ScheduledTime.Equal(at(9, 0)) {
		t.Errorf("scheduled time = %v, want %v", resp.Data.ScheduledTime, at(9, 0))
	}
	if resp.Data.Meeting == nil || len(resp.Data.Meeting.Participants) != 2 {
		t.Errorf("meeting record incomplete: %+v", resp.Data.Meeting)
	}
}

func TestMeetingHandler_NoSlotOutcome(t *testing.T) {
	mux := newMeetingMux(store.NewMemoryStore())

	// A weekend-only window yields the structured no-slot result.
	rec := postJSON(t, mux, "/v1/meetings", model.MeetingRequest{
		Title:           "retro",
		Participants:    []string{"ada@example.com"},
		DurationMinutes: 30,
		PreferredTimeRange: &model.TimeRange{
			Start: time.Date(2025, time.March, 8, 9, 0, 0, 0, time.UTC),
			End:   time.Date(2025, time.March, 9, 17, 0, 0, 0, time.UTC),
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data model.ScheduleResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Success {
		t.Fatal("expected no-slot outcome")
	}
	if resp.Data.Message == "" {
		t.Error("no-slot result must carry a message")
	}
}

func TestMeetingHandler_ValidationFailures(t *testing.T) {
	mux := newMeetingMux(store.NewMemoryStore())

	cases := []struct {
		name string
		req  model.MeetingRequest
		want int
	}{
		{
			"missing title",
			model.MeetingRequest{Participants: []string{"ada@example.com"}, DurationMinutes: 30},
			http.StatusUnprocessableEntity,
		},
		{
			"no participants",
			model.MeetingRequest{Title: "sync", DurationMinutes: 30},
			http.StatusUnprocessableEntity,
		},
		{
			"zero duration",
			model.MeetingRequest{Title: "sync", Participants: []string{"ada@example.com"}},
			http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, mux, "/v1/meetings", tc.req)
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d, body: %s", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestMeetingHandler_BadBody(t *testing.T) {
	mux := newMeetingMux(store.NewMemoryStore())

	req := postJSON(t, mux, "/v1/meetings", map[string]interface{}{
		"title":        "sync",
		"participants": "not-an-array",
	})
	if req.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", req.Code)
	}
}
