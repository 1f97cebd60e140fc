package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/SscSPs/txledger/internal/core/domain"
	portsrepo "github.com/SscSPs/txledger/internal/core/ports/repositories"
)

// OutboxLog is an append-only, consumer-polled event log. Publishing never waits on consumers.
type OutboxLog struct {
	mu     sync.RWMutex
	seq    int64
	events []domain.OutboxEvent
}

// NewOutboxLog creates an empty log.
func NewOutboxLog() *OutboxLog {
	return &OutboxLog{}
}

var _ portsrepo.OutboxRepositoryFacade = (*OutboxLog)(nil)

func (o *OutboxLog) Publish(_ context.Context, events ...domain.OutboxEvent) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, e := range events {
		o.seq++
		e.Seq = o.seq
		o.events = append(o.events, e)
	}
	return nil
}

func (o *OutboxLog) Poll(_ context.Context, after int64, limit int) ([]domain.OutboxEvent, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	start := sort.Search(len(o.events), func(i int) bool { return o.events[i].Seq > after })
	end := start + limit
	if end > len(o.events) {
		end = len(o.events)
	}
	return append([]domain.OutboxEvent(nil), o.events[start:end]...), nil
}
