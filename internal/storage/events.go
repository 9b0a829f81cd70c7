package storage

import (
	"context"
	"fmt"
	"time"

	"ledgerd/internal/core"
)

const (
	insertEventSQL = `INSERT INTO events (kind, expense_id, account_id, occurred_at)
VALUES (?, ?, ?, ?)`

	unpublishedEventsSQL = `SELECT id, kind, expense_id, account_id, occurred_at, published_at
FROM events
WHERE published_at IS NULL
ORDER BY id
LIMIT ?`

	markEventPublishedSQL = `UPDATE events SET published_at = ? WHERE id = ?`
)

// UnpublishedEvents returns up to limit outbox rows that still need a
// broker publish, oldest first.
func (r *SQLiteRepository) UnpublishedEvents(ctx context.Context, limit int) ([]core.Event, error) {
	rows, err := r.db.QueryContext(ctx, unpublishedEventsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("select unpublished events: %w", err)
	}
	defer rows.Close()

	var events []core.Event
	for rows.Next() {
		var (
			ev          core.Event
			occurredAt  string
			publishedAt *string
		)
		if err := rows.Scan(&ev.ID, &ev.Kind, &ev.ExpenseID, &ev.AccountID, &occurredAt, &publishedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, occurredAt)
		if err != nil {
			return nil, fmt.Errorf("parse occurred_at: %w", err)
		}
		ev.OccurredAt = t
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// MarkEventPublished stamps the outbox row once the broker accepted it.
func (r *SQLiteRepository) MarkEventPublished(ctx context.Context, eventID int64) error {
	if _, err := r.db.ExecContext(ctx, markEventPublishedSQL,
		time.Now().UTC().Format(time.RFC3339Nano), eventID); err != nil {
		return fmt.Errorf("mark event published: %w", err)
	}
	return nil
}
