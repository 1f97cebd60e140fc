package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/txledger/internal/core/domain"
	"github.com/SscSPs/txledger/internal/utils/templating"
)

// instantiate resolves every expression of tpl against params and produces the transaction
// header and its entries. It performs no I/O.
func instantiate(tpl *domain.TxTemplate, params domain.Params, now time.Time) (domain.Transaction, []domain.Entry, error) {
	r := templating.NewResolver(params)
	t := tpl.Transaction

	journalID, err := r.UUID(t.JournalID)
	if err != nil {
		return domain.Transaction{}, nil, fmt.Errorf("transaction.journalID: %w", err)
	}
	effective, err := r.Date(t.Effective)
	if err != nil {
		return domain.Transaction{}, nil, fmt.Errorf("transaction.effective: %w", err)
	}
	metadata, err := r.JSON(t.Metadata)
	if err != nil {
		return domain.Transaction{}, nil, fmt.Errorf("transaction.metadata: %w", err)
	}
	externalID, err := r.String(t.ExternalID)
	if err != nil {
		return domain.Transaction{}, nil, fmt.Errorf("transaction.externalID: %w", err)
	}
	description, err := r.String(t.Description)
	if err != nil {
		return domain.Transaction{}, nil, fmt.Errorf("transaction.description: %w", err)
	}
	correlationID, err := r.String(t.CorrelationID)
	if err != nil {
		return domain.Transaction{}, nil, fmt.Errorf("transaction.correlationID: %w", err)
	}

	tx := domain.Transaction{
		TransactionID:  uuid.NewString(),
		JournalID:      journalID,
		TxTemplateCode: tpl.Code,
		Effective:      effective,
		ExternalID:     externalID,
		CorrelationID:  correlationID,
		Description:    description,
		Metadata:       metadata,
		CreatedAt:      now,
	}
	if tx.CorrelationID == "" {
		tx.CorrelationID = tx.TransactionID
	}

	entries := make([]domain.Entry, 0, len(tpl.Entries))
	for i, e := range tpl.Entries {
		entry, err := resolveEntry(r, e)
		if err != nil {
			return domain.Transaction{}, nil, fmt.Errorf("entries[%d].%w", i, err)
		}
		entry.EntryID = uuid.NewString()
		entry.TransactionID = tx.TransactionID
		entry.JournalID = journalID
		entry.Sequence = i
		entry.CreatedAt = now
		entries = append(entries, entry)
	}
	return tx, entries, nil
}

func resolveEntry(r *templating.Resolver, e domain.TxTemplateEntry) (domain.Entry, error) {
	entryType, err := r.String(e.EntryType)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("entryType: %w", err)
	}
	accountID, err := r.UUID(e.AccountID)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("accountID: %w", err)
	}
	currency, err := r.Currency(e.Currency)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("currency: %w", err)
	}
	units, err := r.Units(e.Units)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("units: %w", err)
	}
	description, err := r.String(e.Description)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("description: %w", err)
	}
	return domain.Entry{
		AccountID:   accountID,
		EntryType:   entryType,
		Currency:    currency,
		Direction:   e.Direction,
		Layer:       e.Layer,
		Units:       units,
		Description: description,
	}, nil
}

// mirror builds the void of orig: same journal and accounts, every direction flipped.
func mirror(orig *domain.Transaction, entries []domain.Entry, now time.Time) (domain.Transaction, []domain.Entry) {
	void := domain.Transaction{
		TransactionID:  uuid.NewString(),
		JournalID:      orig.JournalID,
		TxTemplateCode: orig.TxTemplateCode,
		Effective:      time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		CorrelationID:  orig.CorrelationID,
		Description:    "Void of " + orig.TransactionID,
		Metadata:       orig.Metadata,
		VoidOf:         orig.TransactionID,
		CreatedAt:      now,
	}
	flipped := make([]domain.Entry, len(entries))
	for i, e := range entries {
		e.EntryID = uuid.NewString()
		e.TransactionID = void.TransactionID
		e.Direction = e.Direction.Opposite()
		e.CreatedAt = now
		flipped[i] = e
	}
	return void, flipped
}
