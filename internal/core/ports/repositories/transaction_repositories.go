package repositories

import (
	"context"

	"github.com/SscSPs/txledger/internal/core/domain"
)

// TransactionReader defines read operations for committed transactions and their entries
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction header by ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionByExternalID retrieves a transaction header by its idempotency key.
	FindTransactionByExternalID(ctx context.Context, externalID string) (*domain.Transaction, error)

	// FindEntriesByTransactionID retrieves the entries of one transaction ordered by sequence.
	FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.Entry, error)

	// ListEntriesByBalanceKey retrieves every committed entry contributing to key, in commit order.
	ListEntriesByBalanceKey(ctx context.Context, key domain.BalanceKey) ([]domain.Entry, error)

	// ListEntriesForAccount pages through the entries posted to an account across every journal
	// and currency, ordered by commit sequence. It returns the page and the next-page token.
	ListEntriesForAccount(ctx context.Context, accountID string, page domain.EntryPage) ([]domain.Entry, *string, error)

	// ListEntriesForJournal pages through the entries posted into a journal, ordered by commit sequence.
	ListEntriesForJournal(ctx context.Context, journalID string, page domain.EntryPage) ([]domain.Entry, *string, error)
}

// TransactionWriter defines the atomic commit of the posting engine
type TransactionWriter interface {
	// SaveTransaction persists tx, its entries and the resulting balance updates as one unit of
	// work and returns the balances as they stand after the commit. Either everything is
	// visible afterwards or nothing is.
	// A duplicate external id returns apperrors.ErrDuplicateExternalID; a second void of the
	// same transaction returns apperrors.ErrAlreadyVoided.
	SaveTransaction(ctx context.Context, tx domain.Transaction, entries []domain.Entry) ([]domain.Balance, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
