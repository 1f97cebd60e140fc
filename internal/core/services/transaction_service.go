package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/txledger/internal/apperrors"
	"github.com/SscSPs/txledger/internal/core/domain"
	portsrepo "github.com/SscSPs/txledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/txledger/internal/core/ports/services"
	"github.com/SscSPs/txledger/internal/dto"
	"github.com/SscSPs/txledger/internal/utils/accounting"
	"github.com/SscSPs/txledger/internal/utils/pagination"
	"github.com/SscSPs/txledger/internal/utils/templating"
)

// transactionService is the posting engine.
type transactionService struct {
	BaseService
	templateRepo portsrepo.TxTemplateReader
	txRepo       portsrepo.TransactionRepositoryFacade
	accountSvc   portssvc.AccountReaderSvc
	journalSvc   portssvc.JournalReaderSvc
	sink         portsrepo.NotificationSink
}

// TransactionServiceOption is a functional option for configuring the posting engine
type TransactionServiceOption func(*transactionService)

// WithNotificationSink makes the engine publish outbox events after each commit.
func WithNotificationSink(sink portsrepo.NotificationSink) TransactionServiceOption {
	return func(s *transactionService) {
		s.sink = sink
	}
}

// NewTransactionService creates the posting engine.
func NewTransactionService(
	txRepo portsrepo.TransactionRepositoryFacade,
	templateRepo portsrepo.TxTemplateReader,
	accountSvc portssvc.AccountReaderSvc,
	journalSvc portssvc.JournalReaderSvc,
	options ...TransactionServiceOption,
) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		templateRepo: templateRepo,
		txRepo:       txRepo,
		accountSvc:   accountSvc,
		journalSvc:   journalSvc,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// PostTransaction instantiates a template and commits the result.
// Everything before the commit is side-effect free: any failure there leaves the ledger untouched.
func (s *transactionService) PostTransaction(ctx context.Context, templateCode string, supplied map[string]any) (*domain.Transaction, error) {
	logger := s.GetLogger(ctx).With(slog.String("template_code", templateCode))

	tpl, err := s.templateRepo.FindTxTemplateByCode(ctx, templateCode)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to load template", slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("template %q: %w", templateCode, err)
	}

	params, err := templating.ValidateParams(tpl.Params, supplied)
	if err != nil {
		logger.Warn("Parameter validation failed", slog.String("error", err.Error()))
		return nil, err
	}

	tx, entries, err := instantiate(tpl, params, s.Now())
	if err != nil {
		logger.Warn("Failed to resolve template", slog.String("error", err.Error()))
		return nil, err
	}

	if err := accounting.CheckBalanced(entries); err != nil {
		logger.Warn("Unbalanced transaction", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.checkReferences(ctx, tx.JournalID, entries); err != nil {
		logger.Warn("Unknown reference", slog.String("error", err.Error()))
		return nil, err
	}

	return s.commit(ctx, logger, tx, entries)
}

// VoidTransaction commits a transaction that reverses every entry of an existing one.
func (s *transactionService) VoidTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	logger := s.GetLogger(ctx).With(slog.String("voided_transaction_id", transactionID))

	if !isUUID(transactionID) {
		return nil, fmt.Errorf("transaction %q: %w", transactionID, apperrors.ErrNotFound)
	}
	orig, err := s.txRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("transaction %q: %w", transactionID, err)
	}
	if orig.IsVoid() {
		return nil, fmt.Errorf("%w: transaction %s is itself a void", apperrors.ErrValidation, transactionID)
	}
	entries, err := s.txRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		logger.Error("Failed to load entries to void", slog.String("error", err.Error()))
		return nil, err
	}

	void, flipped := mirror(orig, entries, s.Now())
	if err := accounting.CheckBalanced(flipped); err != nil {
		// Committed transactions always balance, so this means the stored data is corrupt.
		logger.Error("Stored transaction does not balance", slog.String("error", err.Error()))
		return nil, apperrors.NewStorageError("stored transaction does not balance", err)
	}

	return s.commit(ctx, logger, void, flipped)
}

func (s *transactionService) checkReferences(ctx context.Context, journalID string, entries []domain.Entry) error {
	ok, err := s.journalSvc.JournalExists(ctx, journalID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrUnknownJournal, journalID)
	}

	accountIDs := make([]string, len(entries))
	for i, e := range entries {
		accountIDs[i] = e.AccountID
	}
	missing, err := s.accountSvc.MissingAccounts(ctx, accountIDs)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, strings.Join(missing, ", "))
	}
	return nil
}

// commit hands the transaction to the store and publishes outbox events once it is durable.
func (s *transactionService) commit(ctx context.Context, logger *slog.Logger, tx domain.Transaction, entries []domain.Entry) (*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	balances, err := s.txRepo.SaveTransaction(ctx, tx, entries)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicateExternalID), errors.Is(err, apperrors.ErrAlreadyVoided):
			logger.Warn("Transaction rejected by store", slog.String("error", err.Error()))
		default:
			logger.Error("Failed to commit transaction", slog.String("error", err.Error()))
		}
		return nil, err
	}

	tx.Entries = entries
	logger.Info("Transaction committed",
		slog.String("transaction_id", tx.TransactionID),
		slog.String("journal_id", tx.JournalID),
		slog.Int("entries", len(entries)),
		slog.Int("balances", len(balances)))

	s.publish(ctx, logger, tx)
	return &tx, nil
}

// publish informs the sink. The transaction is already committed, so failures are only logged.
func (s *transactionService) publish(ctx context.Context, logger *slog.Logger, tx domain.Transaction) {
	if s.sink == nil {
		return
	}
	events, err := domain.NewTransactionEvents(tx, s.Now())
	if err != nil {
		logger.Error("Failed to build outbox events", slog.String("transaction_id", tx.TransactionID), slog.String("error", err.Error()))
		return
	}
	if err := s.sink.Publish(context.WithoutCancel(ctx), events...); err != nil {
		logger.Error("Failed to publish outbox events", slog.String("transaction_id", tx.TransactionID), slog.String("error", err.Error()))
	}
}

func (s *transactionService) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	if !isUUID(transactionID) {
		return nil, fmt.Errorf("transaction %q: %w", transactionID, apperrors.ErrNotFound)
	}
	tx, err := s.txRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("transaction %q: %w", transactionID, err)
	}
	return s.withEntries(ctx, tx)
}

func (s *transactionService) FindTransactionByExternalID(ctx context.Context, externalID string) (*domain.Transaction, error) {
	tx, err := s.txRepo.FindTransactionByExternalID(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("transaction with external id %q: %w", externalID, err)
	}
	return s.withEntries(ctx, tx)
}

func (s *transactionService) ListEntriesByTransaction(ctx context.Context, transactionID string) ([]domain.Entry, error) {
	if !isUUID(transactionID) {
		return nil, fmt.Errorf("transaction %q: %w", transactionID, apperrors.ErrNotFound)
	}
	if _, err := s.txRepo.FindTransactionByID(ctx, transactionID); err != nil {
		return nil, fmt.Errorf("transaction %q: %w", transactionID, err)
	}
	return s.txRepo.FindEntriesByTransactionID(ctx, transactionID)
}

// ListEntriesForAccount pages through an account's entries. An unknown account is not found
// rather than an empty page.
func (s *transactionService) ListEntriesForAccount(ctx context.Context, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	page, err := entryPage(params)
	if err != nil {
		return nil, err
	}
	ok, err := s.accountSvc.AccountExists(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("account %q: %w", accountID, apperrors.ErrNotFound)
	}

	entries, next, err := s.txRepo.ListEntriesForAccount(ctx, accountID, page)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account entries", slog.String("account_id", accountID))
		return nil, err
	}
	res := dto.ToListEntriesResponse(entries, next)
	return &res, nil
}

// ListEntriesForJournal pages through a journal's entries.
func (s *transactionService) ListEntriesForJournal(ctx context.Context, journalID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	page, err := entryPage(params)
	if err != nil {
		return nil, err
	}
	ok, err := s.journalSvc.JournalExists(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("journal %q: %w", journalID, apperrors.ErrNotFound)
	}

	entries, next, err := s.txRepo.ListEntriesForJournal(ctx, journalID, page)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.String("journal_id", journalID))
		return nil, err
	}
	res := dto.ToListEntriesResponse(entries, next)
	return &res, nil
}

func entryPage(params dto.ListEntriesParams) (domain.EntryPage, error) {
	if _, _, err := pagination.SeqCursor(params.After); err != nil {
		return domain.EntryPage{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return domain.EntryPage{
		Limit:      pagination.ClampLimit(params.First),
		After:      params.After,
		Descending: strings.EqualFold(params.Direction, "DESC"),
	}, nil
}

func (s *transactionService) withEntries(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	entries, err := s.txRepo.FindEntriesByTransactionID(ctx, tx.TransactionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entries", slog.String("transaction_id", tx.TransactionID))
		return nil, err
	}
	tx.Entries = entries
	return tx, nil
}
