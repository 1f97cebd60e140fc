package services

import (
	"context"

	"github.com/SscSPs/txledger/internal/core/domain"
	"github.com/SscSPs/txledger/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its business code.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// AccountExists reports whether the account is known to the ledger.
	AccountExists(ctx context.Context, accountID string) (bool, error)

	// MissingAccounts returns the IDs among accountIDs that do not exist, sorted.
	MissingAccounts(ctx context.Context, accountIDs []string) ([]string, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
