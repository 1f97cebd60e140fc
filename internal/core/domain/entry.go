package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates whether an entry is a Debit or a Credit.
type Direction string

const (
	Debit  Direction = "DEBIT"
	Credit Direction = "CREDIT"
)

// Layer is the sub-ledger bucket an entry is posted into.
type Layer string

const (
	Settled     Layer = "SETTLED"
	Pending     Layer = "PENDING"
	Encumbrance Layer = "ENCUMBRANCE"
)

// Layers lists every supported layer in reporting order.
var Layers = []Layer{Settled, Pending, Encumbrance}

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3,5}$`)

// ParseDirection accepts DEBIT/CREDIT in any case.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToUpper(strings.TrimSpace(s))); d {
	case Debit, Credit:
		return d, nil
	}
	return "", fmt.Errorf("invalid direction %q", s)
}

// Opposite returns the other side of the entry.
func (d Direction) Opposite() Direction {
	if d == Debit {
		return Credit
	}
	return Debit
}

// ParseLayer accepts SETTLED/PENDING/ENCUMBRANCE in any case.
func ParseLayer(s string) (Layer, error) {
	switch l := Layer(strings.ToUpper(strings.TrimSpace(s))); l {
	case Settled, Pending, Encumbrance:
		return l, nil
	}
	return "", fmt.Errorf("invalid layer %q", s)
}

// IsCurrencyCode reports whether s looks like an ISO-4217 style code (upper case letters).
func IsCurrencyCode(s string) bool {
	return currencyCodePattern.MatchString(s)
}

// Entry is one debit or credit line of a committed transaction.
type Entry struct {
	EntryID       string          `json:"entryID"`       // Primary Key (UUID)
	TransactionID string          `json:"transactionID"` // Owning transaction
	JournalID     string          `json:"journalID"`
	AccountID     string          `json:"accountID"`
	EntryType     string          `json:"entryType"`
	Currency      string          `json:"currency"`
	Direction     Direction       `json:"direction"`
	Layer         Layer           `json:"layer"`
	Units         decimal.Decimal `json:"units"`    // Non-negative magnitude
	Sequence      int             `json:"sequence"` // Position within the transaction
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`

	// Seq is the position in the ledger-wide commit log, assigned by the store on commit.
	Seq int64 `json:"seq,omitempty"`
}

// EntryPage selects one page of an entry listing.
type EntryPage struct {
	Limit      int
	After      *string // cursor from a previous page
	Descending bool    // newest first
}

// BalanceKey returns the aggregate this entry contributes to.
func (e Entry) BalanceKey() BalanceKey {
	return BalanceKey{
		AccountID: e.AccountID,
		JournalID: e.JournalID,
		Currency:  e.Currency,
		Layer:     e.Layer,
	}
}
