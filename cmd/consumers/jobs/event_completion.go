package jobs

import (
	"context"
	"log/slog"
	"time"

	"trainmice/internal/service"
)

// EventCompletionJob periodically triggers the expired-event sweep on the
// core API, so past events get closed even when no admin opens the dashboard.
type EventCompletionJob struct {
	events   *service.EventService
	interval time.Duration
	ticker   *time.Ticker
	done     chan bool
}

// NewEventCompletionJob creates a new event completion sweep job
func NewEventCompletionJob(events *service.EventService, interval time.Duration) *EventCompletionJob {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &EventCompletionJob{
		events:   events,
		interval: interval,
		done:     make(chan bool),
	}
}

// Start begins the background sweep loop
func (j *EventCompletionJob) Start(ctx context.Context) {
	slog.Info("Starting event completion job", "interval", j.interval.String())

	j.ticker = time.NewTicker(j.interval)

	// Run initial sweep immediately
	go j.sweep(ctx)

	go func() {
		for {
			select {
			case <-j.ticker.C:
				go j.sweep(ctx)
			case <-j.done:
				slog.Info("Event completion job stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the background job
func (j *EventCompletionJob) Stop() {
	if j.ticker != nil {
		j.ticker.Stop()
	}
	close(j.done)
}

// sweep asks the core API to complete every ACTIVE event whose end date has
// passed. The sweep is idempotent, a concurrent run from the dashboard just
// means one of them completes zero events.
func (j *EventCompletionJob) sweep(ctx context.Context) {
	count, err := j.events.CompleteExpired(ctx)
	if err != nil {
		slog.Error("Event completion sweep failed", "error", err)
		return
	}

	if count == 0 {
		slog.Debug("No expired events found")
		return
	}

	slog.Info("Completed expired events", "count", count)
}
