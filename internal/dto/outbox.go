package dto

import "github.com/SscSPs/txledger/internal/core/domain"

// PollOutboxParams defines query parameters for polling the outbox.
type PollOutboxParams struct {
	After int64 `form:"after,default=0" binding:"min=0"`
	Limit int   `form:"limit,default=100" binding:"min=0,max=1000"`
}

// PollOutboxResponse wraps one batch of outbox events.
type PollOutboxResponse struct {
	Events  []domain.OutboxEvent `json:"events"`
	LastSeq int64                `json:"lastSeq"` // Pass as `after` on the next poll
}

// ToPollOutboxResponse wraps a batch; LastSeq stays at after when the batch is empty.
func ToPollOutboxResponse(events []domain.OutboxEvent, after int64) PollOutboxResponse {
	last := after
	if n := len(events); n > 0 {
		last = events[n-1].Seq
	}
	if events == nil {
		events = []domain.OutboxEvent{}
	}
	return PollOutboxResponse{Events: events, LastSeq: last}
}
