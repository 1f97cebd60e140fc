package domain

import (
	"encoding/json"
	"time"
)

// OutboxEventType names what happened.
type OutboxEventType string

const (
	TransactionCreated OutboxEventType = "TRANSACTION_CREATED"
	EntryCreated       OutboxEventType = "ENTRY_CREATED"
)

// OutboxEvent is one record of the append-only change log. Seq is assigned by the sink.
type OutboxEvent struct {
	Seq         int64           `json:"seq"`
	Type        OutboxEventType `json:"type"`
	AggregateID string          `json:"aggregateID"`
	Payload     json.RawMessage `json:"payload"`
	RecordedAt  time.Time       `json:"recordedAt"`
}

// NewTransactionEvents builds the events emitted after tx (with its entries) commits.
func NewTransactionEvents(tx Transaction, at time.Time) ([]OutboxEvent, error) {
	header := tx
	header.Entries = nil
	payload, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	events := make([]OutboxEvent, 0, len(tx.Entries)+1)
	events = append(events, OutboxEvent{Type: TransactionCreated, AggregateID: tx.TransactionID, Payload: payload, RecordedAt: at})
	for _, e := range tx.Entries {
		p, err := json.Marshal(e)
		if err != nil {
			return nil, err
		}
		events = append(events, OutboxEvent{Type: EntryCreated, AggregateID: e.EntryID, Payload: p, RecordedAt: at})
	}
	return events, nil
}
