package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/slotwise/tempo/api/internal/model"
	"github.com/slotwise/tempo/api/internal/store"
)

// recordingInviter collects delivered invitations.
type recordingInviter struct {
	mu         sync.Mutex
	identities []string
}

func (r *recordingInviter) SendInvitation(ctx context.Context, identity string, event *model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.identities = append(r.identities, identity)
	return nil
}

func (r *recordingInviter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.identities)
}

func testMeeting() *model.Event {
	return &model.Event{
		ID:    "event_3",
		Title: "sync",
		Start: time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.March, 5, 10, 30, 0, 0, time.UTC),
	}
}

func TestInviteDispatcher_FlushesQueueOnStop(t *testing.T) {
	sink := &recordingInviter{}
	d := NewInviteDispatcher(sink, 8)
	d.Start()

	ctx := context.Background()
	for _, identity := range []string{"ada@example.com", "grace@example.com"} {
		if err := d.SendInvitation(ctx, identity, testMeeting()); err != nil {
			t.Fatalf("SendInvitation(%s): %v", identity, err)
		}
	}

	d.Stop()

	if got := sink.count(); got != 2 {
		t.Errorf("delivered %d invitations, want 2", got)
	}
	if d.IsRunning() {
		t.Error("dispatcher still reports running after Stop")
	}
}

func TestInviteDispatcher_QueueFull(t *testing.T) {
	d := NewInviteDispatcher(&recordingInviter{}, 1)
	// Worker not started: the single buffered slot fills up.

	ctx := context.Background()
	if err := d.SendInvitation(ctx, "ada@example.com", testMeeting()); err != nil {
		t.Fatalf("first enqueue: %v", err)
	}
	if err := d.SendInvitation(ctx, "grace@example.com", testMeeting()); err != ErrQueueFull {
		t.Errorf("second enqueue error = %v, want ErrQueueFull", err)
	}
}

func TestRetentionJob_RunOnce(t *testing.T) {
	cs := store.NewMemoryStore()
	ctx := context.Background()

	old := time.Now().Add(-72 * time.Hour)
	if _, err := cs.CreateEvent(ctx, "old", "", old, old.Add(time.Hour), []string{"ada@example.com"}); err != nil {
		t.Fatalf("seed old event: %v", err)
	}
	soon := time.Now().Add(time.Hour)
	if _, err := cs.CreateEvent(ctx, "upcoming", "", soon, soon.Add(time.Hour), []string{"ada@example.com"}); err != nil {
		t.Fatalf("seed upcoming event: %v", err)
	}

	job := NewRetentionJob(cs, "@daily", 24*time.Hour)
	if err := job.RunOnce(ctx); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	cal, _ := cs.GetCalendar(ctx, "ada@example.com")
	if len(cal) != 1 || cal[0].Title != "upcoming" {
		t.Errorf("calendar after purge: %v", cal)
	}
}
