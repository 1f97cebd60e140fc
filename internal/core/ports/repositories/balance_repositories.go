package repositories

import (
	"context"

	"github.com/SscSPs/txledger/internal/core/domain"
)

// BalanceReader defines read operations for running balances. Balances are only ever written
// by TransactionWriter.SaveTransaction.
type BalanceReader interface {
	// FindBalance retrieves the balance for key, or apperrors.ErrNotFound if no entry touched it.
	FindBalance(ctx context.Context, key domain.BalanceKey) (*domain.Balance, error)

	// FindBalancesForAccount retrieves every layer recorded for (account, journal, currency).
	FindBalancesForAccount(ctx context.Context, accountID, journalID, currency string) ([]domain.Balance, error)

	// FindBalancesByAccount retrieves every balance of an account across journals, currencies and
	// layers, ordered by journal, currency and layer.
	FindBalancesByAccount(ctx context.Context, accountID string) ([]domain.Balance, error)
}

// BalanceRepositoryFacade combines all balance-related repository interfaces
type BalanceRepositoryFacade interface {
	BalanceReader
}
