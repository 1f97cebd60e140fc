package mapping

import (
	"github.com/SscSPs/txledger/internal/core/domain"
	"github.com/SscSPs/txledger/internal/models"
)

// ToModelBalance converts a domain Balance to a model Balance
func ToModelBalance(d domain.Balance) models.Balance {
	return models.Balance{
		AccountID:   d.AccountID,
		JournalID:   d.JournalID,
		Currency:    d.Currency,
		Layer:       string(d.Layer),
		DrBalance:   d.DrBalance,
		CrBalance:   d.CrBalance,
		Version:     d.Version,
		LastEntryID: optionalString(d.LastEntryID),
		ModifiedAt:  d.ModifiedAt,
	}
}

// ToDomainBalance converts a model Balance to a domain Balance
func ToDomainBalance(m models.Balance) domain.Balance {
	return domain.Balance{
		BalanceKey: domain.BalanceKey{
			AccountID: m.AccountID,
			JournalID: m.JournalID,
			Currency:  m.Currency,
			Layer:     domain.Layer(m.Layer),
		},
		DrBalance:   m.DrBalance,
		CrBalance:   m.CrBalance,
		Version:     m.Version,
		LastEntryID: derefString(m.LastEntryID),
		ModifiedAt:  m.ModifiedAt,
	}
}
