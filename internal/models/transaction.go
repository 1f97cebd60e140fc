package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the transactions table row.
type Transaction struct {
	TransactionID  string    `db:"transaction_id"`
	JournalID      string    `db:"journal_id"`
	TxTemplateCode string    `db:"tx_template_code"`
	Effective      time.Time `db:"effective"` // DATE
	ExternalID     *string   `db:"external_id"`
	CorrelationID  string    `db:"correlation_id"`
	Description    string    `db:"description"`
	Metadata       []byte    `db:"metadata"` // JSONB, nullable
	VoidOf         *string   `db:"void_of"`
	CreatedAt      time.Time `db:"created_at"`
}

// Entry is the entries table row.
type Entry struct {
	Seq           int64           `db:"seq"`
	EntryID       string          `db:"entry_id"`
	TransactionID string          `db:"transaction_id"`
	JournalID     string          `db:"journal_id"`
	AccountID     string          `db:"account_id"`
	EntryType     string          `db:"entry_type"`
	Currency      string          `db:"currency"`
	Direction     string          `db:"direction"`
	Layer         string          `db:"layer"`
	Units         decimal.Decimal `db:"units"`
	Sequence      int             `db:"sequence"`
	Description   string          `db:"description"`
	CreatedAt     time.Time       `db:"created_at"`
}
