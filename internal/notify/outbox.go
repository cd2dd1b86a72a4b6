package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/slotwise/tempo/api/internal/model"
)

// OutboxInviter writes one .ics file per invitation into a local outbox
// directory. A mail relay watching the directory owns actual delivery, so
// the scheduling path never blocks on a mail server.
type OutboxInviter struct {
	dir string
	now func() time.Time
}

// NewOutboxInviter creates the outbox directory if needed and returns an
// inviter writing into it.
func NewOutboxInviter(dir string) (*OutboxInviter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create outbox directory: %w", err)
	}
	return &OutboxInviter{dir: dir, now: time.Now}, nil
}

// SendInvitation renders the invitation and writes it to the outbox.
func (o *OutboxInviter) SendInvitation(ctx context.Context, identity string, event *model.Event) error {
	data, uid, err := RenderInvitation(event, o.now())
	if err != nil {
		return err
	}

	name := fmt.Sprintf("%s_%s_%s.ics", event.ID, sanitizeIdentity(identity), uid[:8])
	path := filepath.Join(o.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write invitation: %w", err)
	}

	slog.Info("invitation written to outbox",
		slog.String("identity", identity),
		slog.String("event_id", event.ID),
		slog.String("file", name))
	return nil
}

// LogInviter records invitation dispatch without delivering anything.
// Used when no outbox is configured.
type LogInviter struct{}

// SendInvitation logs the dispatch.
func (LogInviter) SendInvitation(ctx context.Context, identity string, event *model.Event) error {
	slog.Info("invitation sent",
		slog.String("identity", identity),
		slog.String("event_id", event.ID),
		slog.String("title", event.Title),
		slog.Time("start", event.Start))
	return nil
}

// sanitizeIdentity makes an identity safe for use in a file name.
func sanitizeIdentity(identity string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, identity)
}
