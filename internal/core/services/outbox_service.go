package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/txledger/internal/apperrors"
	"github.com/SscSPs/txledger/internal/core/domain"
	portsrepo "github.com/SscSPs/txledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/txledger/internal/core/ports/services"
)

const (
	defaultOutboxBatch = 100
	maxOutboxBatch     = 1000
)

type outboxService struct {
	BaseService
	reader portsrepo.OutboxReader
}

// NewOutboxService creates the consumer-facing side of the outbox.
func NewOutboxService(reader portsrepo.OutboxReader) portssvc.OutboxSvc {
	return &outboxService{reader: reader}
}

var _ portssvc.OutboxSvc = (*outboxService)(nil)

func (s *outboxService) PollEvents(ctx context.Context, after int64, limit int) ([]domain.OutboxEvent, error) {
	if after < 0 {
		return nil, fmt.Errorf("%w: after must not be negative", apperrors.ErrValidation)
	}
	switch {
	case limit <= 0:
		limit = defaultOutboxBatch
	case limit > maxOutboxBatch:
		limit = maxOutboxBatch
	}
	events, err := s.reader.Poll(ctx, after, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to poll outbox")
		return nil, err
	}
	return events, nil
}
