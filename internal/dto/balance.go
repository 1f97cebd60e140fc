package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/txledger/internal/core/domain"
)

// BalanceURI binds the path of the balance endpoints.
type BalanceURI struct {
	AccountID string `uri:"accountID" binding:"required,uuid"`
	JournalID string `uri:"journalID" binding:"required,uuid"`
	Currency  string `uri:"currency" binding:"required,currency"`
}

// AccountBalancesURI binds the path of the per-account balance listing.
type AccountBalancesURI struct {
	AccountID string `uri:"accountID" binding:"required,uuid"`
}

// BalanceQuery selects the layer of a single-balance lookup. Empty means SETTLED.
type BalanceQuery struct {
	Layer string `form:"layer" binding:"omitempty,oneof=SETTLED PENDING ENCUMBRANCE settled pending encumbrance"`
}

// BalanceResponse defines the data returned for one (account, journal, currency, layer) balance.
// Net is debit minus credit.
type BalanceResponse struct {
	AccountID   string          `json:"accountID"`
	JournalID   string          `json:"journalID"`
	Currency    string          `json:"currency"`
	Layer       domain.Layer    `json:"layer"`
	DrBalance   decimal.Decimal `json:"drBalance"`
	CrBalance   decimal.Decimal `json:"crBalance"`
	Net         decimal.Decimal `json:"net"`
	Version     int64           `json:"version"`
	LastEntryID string          `json:"lastEntryID,omitempty"`
	ModifiedAt  *time.Time      `json:"modifiedAt,omitempty"`
}

// LayeredBalanceResponse groups the balances of every layer.
type LayeredBalanceResponse struct {
	AccountID   string          `json:"accountID"`
	JournalID   string          `json:"journalID"`
	Currency    string          `json:"currency"`
	Settled     BalanceResponse `json:"settled"`
	Pending     BalanceResponse `json:"pending"`
	Encumbrance BalanceResponse `json:"encumbrance"`
}

// ToBalanceResponse converts a domain.Balance to BalanceResponse DTO.
func ToBalanceResponse(b *domain.Balance) BalanceResponse {
	res := BalanceResponse{
		AccountID:   b.AccountID,
		JournalID:   b.JournalID,
		Currency:    b.Currency,
		Layer:       b.Layer,
		DrBalance:   b.DrBalance,
		CrBalance:   b.CrBalance,
		Net:         b.Net(),
		Version:     b.Version,
		LastEntryID: b.LastEntryID,
	}
	if !b.ModifiedAt.IsZero() {
		modifiedAt := b.ModifiedAt
		res.ModifiedAt = &modifiedAt
	}
	return res
}

// ToLayeredBalanceResponse converts a domain.LayeredBalance to LayeredBalanceResponse DTO.
func ToLayeredBalanceResponse(lb *domain.LayeredBalance) LayeredBalanceResponse {
	return LayeredBalanceResponse{
		AccountID:   lb.AccountID,
		JournalID:   lb.JournalID,
		Currency:    lb.Currency,
		Settled:     ToBalanceResponse(&lb.Settled),
		Pending:     ToBalanceResponse(&lb.Pending),
		Encumbrance: ToBalanceResponse(&lb.Encumbrance),
	}
}

// ToLayeredBalanceResponses converts every (journal, currency) summary of an account.
func ToLayeredBalanceResponses(lbs []domain.LayeredBalance) []LayeredBalanceResponse {
	res := make([]LayeredBalanceResponse, len(lbs))
	for i := range lbs {
		res[i] = ToLayeredBalanceResponse(&lbs[i])
	}
	return res
}
