package services

import (
	"context"

	"github.com/SscSPs/txledger/internal/core/domain"
)

// BalanceReaderSvc defines read operations on running balances
type BalanceReaderSvc interface {
	// FindBalance retrieves one balance. A key no entry has touched yields a zero balance.
	FindBalance(ctx context.Context, accountID, journalID, currency string, layer domain.Layer) (*domain.Balance, error)

	// FindBalances retrieves every layer of (account, journal, currency).
	FindBalances(ctx context.Context, accountID, journalID, currency string) (*domain.LayeredBalance, error)

	// FindBalancesByAccount retrieves every (journal, currency) the account holds a balance in,
	// ordered by journal then currency.
	FindBalancesByAccount(ctx context.Context, accountID string) ([]domain.LayeredBalance, error)
}

// BalanceAuditSvc recomputes balances from the entry log
type BalanceAuditSvc interface {
	// RecomputeBalance folds every committed entry for key from scratch.
	RecomputeBalance(ctx context.Context, key domain.BalanceKey) (*domain.Balance, error)
}

// BalanceSvcFacade combines all balance-related service interfaces
type BalanceSvcFacade interface {
	BalanceReaderSvc
	BalanceAuditSvc
}
