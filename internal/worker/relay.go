package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ledgerd/internal/core"
)

// Publisher hands one event to the broker.
type Publisher interface {
	PublishEvent(ctx context.Context, e core.Event) error
}

// EventSource reads and marks outbox rows.
type EventSource interface {
	UnpublishedEvents(ctx context.Context, limit int) ([]core.Event, error)
	MarkEventPublished(ctx context.Context, eventID int64) error
}

// Relay drains the outbox to the broker. It is the only publisher in the
// system: rows are marked published only after the broker accepted them,
// so every event reaches the broker at least once. A crash between
// publish and mark re-sends the event; consumers deduplicate by id.
type Relay struct {
	source    EventSource
	publisher Publisher
	batchSize int
	interval  time.Duration
}

func NewRelay(source EventSource, publisher Publisher, batchSize int, interval time.Duration) *Relay {
	if batchSize < 1 {
		batchSize = 50
	}
	if interval < time.Second {
		interval = 5 * time.Minute
	}
	return &Relay{
		source:    source,
		publisher: publisher,
		batchSize: batchSize,
		interval:  interval,
	}
}

// Run drains once at startup, then on every tick until ctx ends. Drain
// failures are logged and retried on the next tick; only cancellation
// stops the loop.
func (r *Relay) Run(ctx context.Context) error {
	slog.InfoContext(ctx, "Relay started",
		"batch_size", r.batchSize,
		"interval", r.interval.String())

	if err := r.DrainOnce(ctx); err != nil {
		slog.ErrorContext(ctx, "Startup drain failed", "error", err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Relay stopping", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			if err := r.DrainOnce(ctx); err != nil {
				slog.ErrorContext(ctx, "Drain failed", "error", err)
			}
		}
	}
}

// DrainOnce publishes every unpublished event, oldest first, in
// batches. The first failure aborts the pass with the row left
// unpublished; the next pass picks it up again.
func (r *Relay) DrainOnce(ctx context.Context) error {
	published := 0
	for {
		events, err := r.source.UnpublishedEvents(ctx, r.batchSize)
		if err != nil {
			return fmt.Errorf("load unpublished events: %w", err)
		}
		if len(events) == 0 {
			break
		}

		for _, e := range events {
			if err := r.publisher.PublishEvent(ctx, e); err != nil {
				return fmt.Errorf("publish event %d: %w", e.ID, err)
			}
			if err := r.source.MarkEventPublished(ctx, e.ID); err != nil {
				return fmt.Errorf("mark event %d published: %w", e.ID, err)
			}
			published++
		}

		if len(events) < r.batchSize {
			break
		}
	}

	if published > 0 {
		slog.InfoContext(ctx, "Outbox drained", "published", published)
	}
	return nil
}
