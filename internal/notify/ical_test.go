package notify

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/slotwise/tempo/api/internal/model"
)

func testEvent() *model.Event {
	return &model.Event{
		ID:           "event_7",
		Title:        "planning",
		Description:  "quarterly planning",
		Start:        time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC),
		End:          time.Date(2025, time.March, 5, 11, 0, 0, 0, time.UTC),
		Participants: []string{"ada@example.com", "grace@example.com"},
	}
}

func TestRenderInvitation(t *testing.T) {
	data, uid, err := RenderInvitation(testEvent(), time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("RenderInvitation: %v", err)
	}
	if uid == "" {
		t.Error("expected a generated UID")
	}

	body := string(data)
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"METHOD:REQUEST",
		"BEGIN:VEVENT",
		"SUMMARY:planning",
		"DESCRIPTION:quarterly planning",
		"ORGANIZER:mailto:ada@example.com",
		"ATTENDEE:mailto:grace@example.com",
		"UID:" + uid,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("invitation missing %q:\n%s", want, body)
		}
	}

	// CAL-ADDRESS properties must not be tagged as text values.
	if strings.Contains(body, "VALUE=TEXT:mailto:") {
		t.Errorf("calendar address property carries VALUE=TEXT:\n%s", body)
	}
}

func TestOutboxInviter_WritesFile(t *testing.T) {
	dir := t.TempDir()
	inviter, err := NewOutboxInviter(dir)
	if err != nil {
		t.Fatalf("NewOutboxInviter: %v", err)
	}

	if err := inviter.SendInvitation(context.Background(), "grace@example.com", testEvent()); err != nil {
		t.Fatalf("SendInvitation: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("outbox has %d files, want 1", len(entries))
	}
	name := entries[0].Name()
	if !strings.HasPrefix(name, "event_7_grace-example.com_") || !strings.HasSuffix(name, ".ics") {
		t.Errorf("unexpected outbox file name %q", name)
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "SUMMARY:planning") {
		t.Error("written invitation missing summary")
	}
}
