package domain

import (
	"encoding/json"
	"time"
)

// Transaction is a committed, balanced set of entries. It is never modified after commit.
type Transaction struct {
	TransactionID  string          `json:"transactionID"` // Primary Key (UUID)
	JournalID      string          `json:"journalID"`
	TxTemplateCode string          `json:"txTemplateCode"`
	Effective      time.Time       `json:"effective"`  // Date only, UTC midnight
	ExternalID     string          `json:"externalID"` // Optional idempotency key, unique when set
	CorrelationID  string          `json:"correlationID"`
	Description    string          `json:"description"`
	Metadata       json.RawMessage `json:"metadata"`
	VoidOf         string          `json:"voidOf,omitempty"` // Set when this transaction voids another
	CreatedAt      time.Time       `json:"createdAt"`
	Entries        []Entry         `json:"entries,omitempty"` // Loaded on demand
}

// IsVoid reports whether the transaction reverses another one.
func (t Transaction) IsVoid() bool {
	return t.VoidOf != ""
}
