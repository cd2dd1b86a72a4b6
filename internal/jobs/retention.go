package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/slotwise/tempo/api/internal/store"
)

// RetentionJob periodically purges event copies that ended longer ago
// than the retention period. Calendars themselves are never removed.
type RetentionJob struct {
	store    store.CalendarStore
	schedule string
	maxAge   time.Duration
	cron     *cron.Cron
}

// NewRetentionJob creates a retention job. schedule is a standard cron
// expression (e.g. "0 3 * * *" for 03:00 daily).
func NewRetentionJob(cs store.CalendarStore, schedule string, maxAge time.Duration) *RetentionJob {
	return &RetentionJob{
		store:    cs,
		schedule: schedule,
		maxAge:   maxAge,
	}
}

// Start schedules the purge on the configured cron expression.
func (j *RetentionJob) Start() error {
	c := cron.New()
	_, err := c.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := j.RunOnce(ctx); err != nil {
			slog.Error("retention purge failed", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	j.cron = c
	slog.Info("retention job started",
		slog.String("schedule", j.schedule),
		slog.Duration("max_age", j.maxAge))
	return nil
}

// Stop halts the cron scheduler and waits for a running purge to finish.
func (j *RetentionJob) Stop() {
	if j.cron == nil {
		return
	}
	<-j.cron.Stop().Done()
	slog.Info("retention job stopped")
}

// RunOnce purges once (for testing or manual trigger).
func (j *RetentionJob) RunOnce(ctx context.Context) error {
	cutoff := time.Now().Add(-j.maxAge)
	removed, err := j.store.PurgeEventsEndedBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if removed > 0 {
		slog.Info("purged ended event copies",
			slog.Int("removed", removed),
			slog.Time("cutoff", cutoff))
	}
	return nil
}
