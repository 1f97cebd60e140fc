package services

import (
	"context"

	"github.com/SscSPs/txledger/internal/core/domain"
	"github.com/SscSPs/txledger/internal/dto"
)

// TransactionPosterSvc defines the write side of the posting engine
type TransactionPosterSvc interface {
	// PostTransaction instantiates the template identified by code with params and commits the
	// resulting balanced transaction. The returned transaction carries its entries.
	PostTransaction(ctx context.Context, templateCode string, params map[string]any) (*domain.Transaction, error)

	// VoidTransaction commits the mirror image of an existing transaction.
	VoidTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
}

// TransactionReaderSvc defines read operations on committed transactions
type TransactionReaderSvc interface {
	// FindTransactionByID retrieves a transaction with its entries.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionByExternalID retrieves a transaction with its entries by idempotency key.
	FindTransactionByExternalID(ctx context.Context, externalID string) (*domain.Transaction, error)

	// ListEntriesByTransaction retrieves the entries of a transaction ordered by sequence.
	ListEntriesByTransaction(ctx context.Context, transactionID string) ([]domain.Entry, error)

	// ListEntriesForAccount pages through the entries posted to an account in commit order.
	ListEntriesForAccount(ctx context.Context, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// ListEntriesForJournal pages through the entries posted into a journal in commit order.
	ListEntriesForJournal(ctx context.Context, journalID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionPosterSvc
	TransactionReaderSvc
}
