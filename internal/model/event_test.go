package model

import (
	"testing"
	"time"
)

// at builds a timestamp on a fixed reference day (a Wednesday).
func at(hour, min int) time.Time {
	return time.Date(2025, time.March, 5, hour, min, 0, 0, time.UTC)
}

func TestOverlaps_Symmetry(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"disjoint", at(9, 0), at(10, 0), at(11, 0), at(12, 0), false},
		{"touching endpoints", at(9, 0), at(10, 0), at(10, 0), at(11, 0), false},
		{"partial overlap", at(9, 0), at(10, 0), at(9, 30), at(10, 30), true},
		{"containment", at(9, 0), at(12, 0), at(10, 0), at(11, 0), true},
		{"identical", at(9, 0), at(10, 0), at(9, 0), at(10, 0), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd)
			if got != tc.want {
				t.Errorf("Overlaps(a, b) = %v, want %v", got, tc.want)
			}
			if rev := Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd); rev != got {
				t.Errorf("Overlaps is asymmetric: a/b=%v b/a=%v", got, rev)
			}
		})
	}
}

func TestOverlaps_SelfOverlap(t *testing.T) {
	e := Event{Start: at(9, 0), End: at(9, 30)}
	if !e.Overlaps(e.Start, e.End) {
		t.Error("non-empty interval must overlap itself")
	}
}

func TestFreeSlots_SkipAheadLandsOnEventEnd(t *testing.T) {
	calendar := []Event{{ID: "event_1", Title: "standup", Start: at(10, 0), End: at(10, 30)}}

	got := FreeSlots(calendar, at(9, 0), at(11, 0), 30*time.Minute)

	want := []time.Time{at(9, 0), at(9, 30), at(10, 30)}
	if len(got) != len(want) {
		t.Fatalf("FreeSlots returned %d candidates, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("candidate %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFreeSlots_EmptyCalendar(t *testing.T) {
	got := FreeSlots(nil, at(9, 0), at(10, 30), 30*time.Minute)

	want := []time.Time{at(9, 0), at(9, 30), at(10, 0)}
	if len(got) != len(want) {
		t.Fatalf("FreeSlots returned %d candidates, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("candidate %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFreeSlots_DurationLongerThanWindow(t *testing.T) {
	if got := FreeSlots(nil, at(9, 0), at(10, 0), 2*time.Hour); len(got) != 0 {
		t.Errorf("expected no candidates, got %v", got)
	}
}

func TestFreeSlots_NonPositiveDuration(t *testing.T) {
	if got := FreeSlots(nil, at(9, 0), at(17, 0), 0); len(got) != 0 {
		t.Errorf("zero duration must yield no candidates, got %v", got)
	}
	if got := FreeSlots(nil, at(9, 0), at(17, 0), -time.Hour); len(got) != 0 {
		t.Errorf("negative duration must yield no candidates, got %v", got)
	}
}

func TestFreeSlots_BackToBackEvents(t *testing.T) {
	calendar := []Event{
		{ID: "event_1", Start: at(9, 0), End: at(10, 0)},
		{ID: "event_2", Start: at(10, 0), End: at(10, 45)},
	}

	got := FreeSlots(calendar, at(9, 0), at(12, 0), 30*time.Minute)

	// The scan must chain past both events and land on 10:45.
	want := []time.Time{at(10, 45), at(11, 15)}
	if len(got) != len(want) {
		t.Fatalf("FreeSlots returned %v, want %v", got, want)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("candidate %d = %v, want %v", i, got[i], want[i])
		}
	}
}
