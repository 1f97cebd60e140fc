package mapping

import (
	"encoding/json"

	"github.com/SscSPs/txledger/internal/core/domain"
	"github.com/SscSPs/txledger/internal/models"
)

// ToModelTransaction converts a domain Transaction header to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:  d.TransactionID,
		JournalID:      d.JournalID,
		TxTemplateCode: d.TxTemplateCode,
		Effective:      d.Effective,
		ExternalID:     optionalString(d.ExternalID),
		CorrelationID:  d.CorrelationID,
		Description:    d.Description,
		Metadata:       nullableJSON(d.Metadata),
		VoidOf:         optionalString(d.VoidOf),
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction (without entries)
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:  m.TransactionID,
		JournalID:      m.JournalID,
		TxTemplateCode: m.TxTemplateCode,
		Effective:      m.Effective.UTC(),
		ExternalID:     derefString(m.ExternalID),
		CorrelationID:  m.CorrelationID,
		Description:    m.Description,
		Metadata:       json.RawMessage(m.Metadata),
		VoidOf:         derefString(m.VoidOf),
		CreatedAt:      m.CreatedAt,
	}
}

// ToModelEntry converts a domain Entry to a model Entry
func ToModelEntry(d domain.Entry) models.Entry {
	return models.Entry{
		Seq:           d.Seq,
		EntryID:       d.EntryID,
		TransactionID: d.TransactionID,
		JournalID:     d.JournalID,
		AccountID:     d.AccountID,
		EntryType:     d.EntryType,
		Currency:      d.Currency,
		Direction:     string(d.Direction),
		Layer:         string(d.Layer),
		Units:         d.Units,
		Sequence:      d.Sequence,
		Description:   d.Description,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainEntry converts a model Entry to a domain Entry
func ToDomainEntry(m models.Entry) domain.Entry {
	return domain.Entry{
		Seq:           m.Seq,
		EntryID:       m.EntryID,
		TransactionID: m.TransactionID,
		JournalID:     m.JournalID,
		AccountID:     m.AccountID,
		EntryType:     m.EntryType,
		Currency:      m.Currency,
		Direction:     domain.Direction(m.Direction),
		Layer:         domain.Layer(m.Layer),
		Units:         m.Units,
		Sequence:      m.Sequence,
		Description:   m.Description,
		CreatedAt:     m.CreatedAt,
	}
}

// ToDomainEntrySlice converts a slice of model Entries to a slice of domain Entries
func ToDomainEntrySlice(ms []models.Entry) []domain.Entry {
	ds := make([]domain.Entry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}
