package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/slotwise/tempo/api/internal/model"
	"github.com/slotwise/tempo/api/internal/service"
)

// ErrQueueFull is returned when an invitation cannot be queued.
var ErrQueueFull = errors.New("invite queue full")

const (
	defaultQueueSize = 128
	deliverTimeout   = 30 * time.Second
)

// InviteDispatcher queues invitations and delivers them on a background
// worker, so the scheduling commit never blocks on notification I/O. It
// implements service.Inviter; enqueueing counts as successful dispatch.
type InviteDispatcher struct {
	inviter service.Inviter
	queue   chan invite
	stopCh  chan struct{}
	wg      sync.WaitGroup
	running bool
	mu      sync.Mutex
}

type invite struct {
	identity string
	event    *model.Event
}

// NewInviteDispatcher creates a dispatcher delivering through the given
// inviter. queueSize <= 0 selects the default.
func NewInviteDispatcher(inviter service.Inviter, queueSize int) *InviteDispatcher {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &InviteDispatcher{
		inviter: inviter,
		queue:   make(chan invite, queueSize),
		stopCh:  make(chan struct{}),
	}
}

// SendInvitation queues one invitation for background delivery.
func (d *InviteDispatcher) SendInvitation(ctx context.Context, identity string, event *model.Event) error {
	select {
	case d.queue <- invite{identity: identity, event: event}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start begins the delivery worker
func (d *InviteDispatcher) Start() {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return
	}
	d.running = true
	d.mu.Unlock()

	d.wg.Add(1)
	go d.run()
	slog.Info("invite dispatcher started", slog.Int("queue_size", cap(d.queue)))
}

// Stop gracefully stops the worker, flushing queued invitations first.
func (d *InviteDispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	d.mu.Unlock()

	close(d.stopCh)
	d.wg.Wait()
	slog.Info("invite dispatcher stopped")
}

// IsRunning returns whether the dispatcher is running
func (d *InviteDispatcher) IsRunning() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// run is the main loop
func (d *InviteDispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case inv := <-d.queue:
			d.deliver(inv)
		case <-d.stopCh:
			// Flush whatever is still queued before exiting.
			for {
				select {
				case inv := <-d.queue:
					d.deliver(inv)
				default:
					return
				}
			}
		}
	}
}

// deliver sends one invitation. Failures are logged, never retried: the
// invitation contract is best-effort.
func (d *InviteDispatcher) deliver(inv invite) {
	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()

	if err := d.inviter.SendInvitation(ctx, inv.identity, inv.event); err != nil {
		slog.Warn("invitation delivery failed",
			slog.String("identity", inv.identity),
			slog.String("event_id", inv.event.ID),
			slog.String("error", err.Error()))
	}
}
