package services

import (
	"context"

	"github.com/SscSPs/txledger/internal/core/domain"
	"github.com/SscSPs/txledger/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalByID retrieves a specific journal by its ID.
	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// GetJournalByCode retrieves a journal by its business code.
	GetJournalByCode(ctx context.Context, code string) (*domain.Journal, error)

	// JournalExists reports whether the journal is known to the ledger.
	JournalExists(ctx context.Context, journalID string) (bool, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateJournal persists a new journal.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest) (*domain.Journal, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
