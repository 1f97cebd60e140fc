package models

import "time"

// OutboxEvent is the outbox_events table row.
type OutboxEvent struct {
	Seq         int64     `db:"seq"`
	EventType   string    `db:"event_type"`
	AggregateID string    `db:"aggregate_id"`
	Payload     []byte    `db:"payload"` // JSONB
	RecordedAt  time.Time `db:"recorded_at"`
}
