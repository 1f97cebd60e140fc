package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/txledger/internal/core/domain"
)

// PostTransactionRequest asks the posting engine to instantiate a template.
type PostTransactionRequest struct {
	TemplateCode string         `json:"templateCode" binding:"required"`
	Params       map[string]any `json:"params"`
}

// ListEntriesParams defines query parameters for the account and journal entry listings.
type ListEntriesParams struct {
	First     int     `form:"first,default=20" binding:"min=0"`
	After     *string `form:"after"`
	Direction string  `form:"direction" binding:"omitempty,oneof=ASC DESC asc desc"`
}

// EntryResponse defines the data returned for an entry.
type EntryResponse struct {
	EntryID       string           `json:"entryID"`
	TransactionID string           `json:"transactionID,omitempty"`
	JournalID     string           `json:"journalID,omitempty"`
	Seq           int64            `json:"seq,omitempty"`
	AccountID     string           `json:"accountID"`
	EntryType     string           `json:"entryType"`
	Currency      string           `json:"currency"`
	Direction     domain.Direction `json:"direction"`
	Layer         domain.Layer     `json:"layer"`
	Units         decimal.Decimal  `json:"units"`
	Sequence      int              `json:"sequence"`
	Description   string           `json:"description,omitempty"`
}

// ListEntriesResponse wraps one page of an entry listing.
type ListEntriesResponse struct {
	Entries  []EntryResponse `json:"entries"`
	PageInfo PageInfo        `json:"pageInfo"`
}

// ToListEntriesResponse wraps a page of entries and its cursor.
func ToListEntriesResponse(entries []domain.Entry, nextToken *string) ListEntriesResponse {
	return ListEntriesResponse{
		Entries:  ToEntryResponses(entries),
		PageInfo: PageInfo{HasNextPage: nextToken != nil, EndCursor: nextToken},
	}
}

// TransactionResponse defines the data returned for a committed transaction.
type TransactionResponse struct {
	TransactionID  string          `json:"transactionID"`
	JournalID      string          `json:"journalID"`
	TxTemplateCode string          `json:"txTemplateCode"`
	Effective      string          `json:"effective"` // YYYY-MM-DD
	ExternalID     string          `json:"externalID,omitempty"`
	CorrelationID  string          `json:"correlationID,omitempty"`
	Description    string          `json:"description,omitempty"`
	Metadata       json.RawMessage `json:"metadata,omitempty"`
	VoidOf         string          `json:"voidOf,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	Entries        []EntryResponse `json:"entries,omitempty"`
}

// ToEntryResponse converts a domain.Entry to EntryResponse DTO.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	return EntryResponse{
		EntryID:       e.EntryID,
		TransactionID: e.TransactionID,
		JournalID:     e.JournalID,
		Seq:           e.Seq,
		AccountID:     e.AccountID,
		EntryType:     e.EntryType,
		Currency:      e.Currency,
		Direction:     e.Direction,
		Layer:         e.Layer,
		Units:         e.Units,
		Sequence:      e.Sequence,
		Description:   e.Description,
	}
}

// ToEntryResponses converts a slice of domain.Entry to []EntryResponse.
func ToEntryResponses(entries []domain.Entry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}

// ToTransactionResponse converts a domain.Transaction (with any loaded entries) to TransactionResponse DTO.
func ToTransactionResponse(tx *domain.Transaction) TransactionResponse {
	res := TransactionResponse{
		TransactionID:  tx.TransactionID,
		JournalID:      tx.JournalID,
		TxTemplateCode: tx.TxTemplateCode,
		Effective:      tx.Effective.Format(time.DateOnly),
		ExternalID:     tx.ExternalID,
		CorrelationID:  tx.CorrelationID,
		Description:    tx.Description,
		Metadata:       tx.Metadata,
		VoidOf:         tx.VoidOf,
		CreatedAt:      tx.CreatedAt,
	}
	if len(tx.Entries) > 0 {
		res.Entries = ToEntryResponses(tx.Entries)
	}
	return res
}
