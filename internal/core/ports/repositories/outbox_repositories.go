package repositories

import (
	"context"

	"github.com/SscSPs/txledger/internal/core/domain"
)

// NotificationSink receives events for transactions that have already been committed.
// Delivery guarantees beyond append are the consumer's concern.
type NotificationSink interface {
	// Publish appends events to the log, assigning each a monotonically increasing Seq.
	Publish(ctx context.Context, events ...domain.OutboxEvent) error
}

// OutboxReader lets consumers poll the append-only log.
type OutboxReader interface {
	// Poll returns up to limit events with Seq greater than after, in Seq order.
	Poll(ctx context.Context, after int64, limit int) ([]domain.OutboxEvent, error)
}

// OutboxRepositoryFacade combines the producer and consumer sides of the outbox
type OutboxRepositoryFacade interface {
	NotificationSink
	OutboxReader
}
