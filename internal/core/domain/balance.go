package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceKey identifies one running aggregate.
type BalanceKey struct {
	AccountID string `json:"accountID"`
	JournalID string `json:"journalID"`
	Currency  string `json:"currency"`
	Layer     Layer  `json:"layer"`
}

// String renders the key in a stable, sortable form.
func (k BalanceKey) String() string {
	return k.JournalID + "/" + k.AccountID + "/" + k.Currency + "/" + string(k.Layer)
}

// Balance is the running debit/credit aggregate for a key.
// Only the balance ledger mutates it, and only in response to committed entries.
type Balance struct {
	BalanceKey
	DrBalance   decimal.Decimal `json:"drBalance"`
	CrBalance   decimal.Decimal `json:"crBalance"`
	Version     int64           `json:"version"`     // Number of entries applied
	LastEntryID string          `json:"lastEntryID"` // Last entry applied, empty for a zero balance
	ModifiedAt  time.Time       `json:"modifiedAt"`
}

// NewBalance returns the zero aggregate for key.
func NewBalance(key BalanceKey) Balance {
	return Balance{
		BalanceKey: key,
		DrBalance:  decimal.Zero,
		CrBalance:  decimal.Zero,
	}
}

// Net is debit minus credit. The ledger reports every balance debit-normal.
func (b Balance) Net() decimal.Decimal {
	return b.DrBalance.Sub(b.CrBalance)
}

// NetFor returns the net from the point of view of an account whose normal side is normal:
// debit-normal accounts (assets, omnibus) see Dr-Cr, credit-normal ones (liabilities) see Cr-Dr.
func (b Balance) NetFor(normal Direction) decimal.Decimal {
	if normal == Credit {
		return b.CrBalance.Sub(b.DrBalance)
	}
	return b.Net()
}

// IsZero reports whether no entry has ever been applied.
func (b Balance) IsZero() bool {
	return b.Version == 0
}

// LayeredBalance summarises every layer of one (account, journal, currency).
type LayeredBalance struct {
	AccountID   string  `json:"accountID"`
	JournalID   string  `json:"journalID"`
	Currency    string  `json:"currency"`
	Settled     Balance `json:"settled"`
	Pending     Balance `json:"pending"`
	Encumbrance Balance `json:"encumbrance"`
}

// Set stores b in the slot for its layer.
func (lb *LayeredBalance) Set(b Balance) {
	switch b.Layer {
	case Settled:
		lb.Settled = b
	case Pending:
		lb.Pending = b
	case Encumbrance:
		lb.Encumbrance = b
	}
}
