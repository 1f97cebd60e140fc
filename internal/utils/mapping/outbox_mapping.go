package mapping

import (
	"encoding/json"

	"github.com/SscSPs/txledger/internal/core/domain"
	"github.com/SscSPs/txledger/internal/models"
)

// ToModelOutboxEvent converts a domain OutboxEvent to a model OutboxEvent
func ToModelOutboxEvent(d domain.OutboxEvent) models.OutboxEvent {
	return models.OutboxEvent{
		Seq:         d.Seq,
		EventType:   string(d.Type),
		AggregateID: d.AggregateID,
		Payload:     []byte(d.Payload),
		RecordedAt:  d.RecordedAt,
	}
}

// ToDomainOutboxEvent converts a model OutboxEvent to a domain OutboxEvent
func ToDomainOutboxEvent(m models.OutboxEvent) domain.OutboxEvent {
	return domain.OutboxEvent{
		Seq:         m.Seq,
		Type:        domain.OutboxEventType(m.EventType),
		AggregateID: m.AggregateID,
		Payload:     json.RawMessage(m.Payload),
		RecordedAt:  m.RecordedAt,
	}
}
