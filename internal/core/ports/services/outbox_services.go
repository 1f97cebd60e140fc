package services

import (
	"context"

	"github.com/SscSPs/txledger/internal/core/domain"
)

// OutboxSvc exposes the consumer side of the change log
type OutboxSvc interface {
	// PollEvents returns up to limit events recorded after the given sequence.
	PollEvents(ctx context.Context, after int64, limit int) ([]domain.OutboxEvent, error)
}
