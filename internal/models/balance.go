package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is the balances table row, keyed by (account_id, journal_id, currency, layer).
type Balance struct {
	AccountID   string          `db:"account_id"`
	JournalID   string          `db:"journal_id"`
	Currency    string          `db:"currency"`
	Layer       string          `db:"layer"`
	DrBalance   decimal.Decimal `db:"dr_balance"`
	CrBalance   decimal.Decimal `db:"cr_balance"`
	Version     int64           `db:"version"`
	LastEntryID *string         `db:"last_entry_id"`
	ModifiedAt  time.Time       `db:"modified_at"`
}
