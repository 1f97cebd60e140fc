package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/txledger/internal/apperrors"
	"github.com/SscSPs/txledger/internal/core/domain"
	portsrepo "github.com/SscSPs/txledger/internal/core/ports/repositories"
	"github.com/SscSPs/txledger/internal/core/services"
	"github.com/SscSPs/txledger/internal/dto"
	"github.com/SscSPs/txledger/internal/repositories/memory"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, tx domain.Transaction, entries []domain.Entry) ([]domain.Balance, error) {
	args := m.Called(ctx, tx, entries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Balance), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByExternalID(ctx context.Context, externalID string) (*domain.Transaction, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.Entry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockTransactionRepository) ListEntriesByBalanceKey(ctx context.Context, key domain.BalanceKey) ([]domain.Entry, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockTransactionRepository) ListEntriesForAccount(ctx context.Context, accountID string, page domain.EntryPage) ([]domain.Entry, *string, error) {
	args := m.Called(ctx, accountID, page)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	next, _ := args.Get(1).(*string)
	return args.Get(0).([]domain.Entry), next, args.Error(2)
}

func (m *MockTransactionRepository) ListEntriesForJournal(ctx context.Context, journalID string, page domain.EntryPage) ([]domain.Entry, *string, error) {
	args := m.Called(ctx, journalID, page)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	next, _ := args.Get(1).(*string)
	return args.Get(0).([]domain.Entry), next, args.Error(2)
}

// --- Mock NotificationSink ---
type MockNotificationSink struct {
	mock.Mock
}

func (m *MockNotificationSink) Publish(ctx context.Context, events ...domain.OutboxEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type postingFixture struct {
	repos     portsrepo.RepositoryProvider
	journalID string
	accounts  []string
}

func newPostingFixture(t *testing.T) postingFixture {
	t.Helper()
	ctx := context.Background()
	repos := memory.NewRepositoryProvider()
	container := services.NewServiceContainer(repos)

	journal, err := container.Journal.CreateJournal(ctx, dto.CreateJournalRequest{Name: "GL", Code: "GL"})
	require.NoError(t, err)
	a, err := container.Account.CreateAccount(ctx, dto.CreateAccountRequest{Name: "A", Code: "A"})
	require.NoError(t, err)
	b, err := container.Account.CreateAccount(ctx, dto.CreateAccountRequest{Name: "B", Code: "B"})
	require.NoError(t, err)
	_, err = container.TxTemplate.CreateTxTemplate(ctx, recordDepositRequest())
	require.NoError(t, err)

	return postingFixture{repos: repos, journalID: journal.JournalID, accounts: []string{a.AccountID, b.AccountID}}
}

func (f postingFixture) params() map[string]any {
	return map[string]any{
		"external_id":                uuid.NewString(),
		"journal_id":                 f.journalID,
		"currency":                   "EUR",
		"amount":                     "19.99",
		"deposit_omnibus_account_id": f.accounts[0],
		"credit_account_id":          f.accounts[1],
		"effective":                  "2024-02-29",
	}
}

func TestPostTransaction_StorageFailureIsReturned(t *testing.T) {
	f := newPostingFixture(t)
	txRepo := new(MockTransactionRepository)
	storageErr := apperrors.NewStorageError("commit failed", errors.New("connection reset"))
	txRepo.On("SaveTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("[]domain.Entry")).
		Return(nil, storageErr).Once()
	sink := new(MockNotificationSink)

	svc := services.NewTransactionService(txRepo, f.repos.TxTemplateRepo,
		services.NewAccountService(f.repos.AccountRepo), services.NewJournalService(f.repos.JournalRepo),
		services.WithNotificationSink(sink))

	tx, err := svc.PostTransaction(context.Background(), "RECORD_DEPOSIT", f.params())
	assert.Nil(t, tx)
	assert.ErrorIs(t, err, apperrors.ErrStorageFailure)
	txRepo.AssertExpectations(t)
	sink.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestPostTransaction_PublishFailureDoesNotFailPosting(t *testing.T) {
	f := newPostingFixture(t)
	sink := new(MockNotificationSink)
	sink.On("Publish", mock.Anything, mock.MatchedBy(func(events []domain.OutboxEvent) bool {
		return len(events) == 3 && events[0].Type == domain.TransactionCreated
	})).Return(errors.New("broker down")).Once()

	svc := services.NewTransactionService(f.repos.TransactionRepo, f.repos.TxTemplateRepo,
		services.NewAccountService(f.repos.AccountRepo), services.NewJournalService(f.repos.JournalRepo),
		services.WithNotificationSink(sink))

	tx, err := svc.PostTransaction(context.Background(), "RECORD_DEPOSIT", f.params())
	require.NoError(t, err)
	sink.AssertExpectations(t)

	stored, err := f.repos.TransactionRepo.FindTransactionByID(context.Background(), tx.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, tx.CorrelationID, stored.CorrelationID)
	assert.Equal(t, tx.TransactionID, stored.CorrelationID)
}

func TestPostTransaction_CancelledBeforeCommit(t *testing.T) {
	f := newPostingFixture(t)
	txRepo := new(MockTransactionRepository)

	svc := services.NewTransactionService(txRepo, f.repos.TxTemplateRepo,
		services.NewAccountService(f.repos.AccountRepo), services.NewJournalService(f.repos.JournalRepo))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.PostTransaction(ctx, "RECORD_DEPOSIT", f.params())
	assert.ErrorIs(t, err, context.Canceled)
	txRepo.AssertNotCalled(t, "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func TestListEntriesByTransaction(t *testing.T) {
	f := newPostingFixture(t)
	container := services.NewServiceContainer(f.repos)

	tx, err := container.Transaction.PostTransaction(context.Background(), "RECORD_DEPOSIT", f.params())
	require.NoError(t, err)

	entries, err := container.Transaction.ListEntriesByTransaction(context.Background(), tx.TransactionID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, tx.Entries[0].EntryID, entries[0].EntryID)
	assert.Equal(t, "EUR", entries[1].Currency)

	_, err = container.Transaction.ListEntriesByTransaction(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMalformedTransactionIDIsNotFound(t *testing.T) {
	f := newPostingFixture(t)
	txRepo := new(MockTransactionRepository)
	svc := services.NewTransactionService(txRepo, f.repos.TxTemplateRepo,
		services.NewAccountService(f.repos.AccountRepo), services.NewJournalService(f.repos.JournalRepo))
	ctx := context.Background()

	for _, id := range []string{"abc", "", "not-a-uuid-at-all-but-36-chars-long!", "{" + uuid.NewString() + "}"} {
		_, err := svc.FindTransactionByID(ctx, id)
		assert.ErrorIs(t, err, apperrors.ErrNotFound, id)
		_, err = svc.ListEntriesByTransaction(ctx, id)
		assert.ErrorIs(t, err, apperrors.ErrNotFound, id)
		_, err = svc.VoidTransaction(ctx, id)
		assert.ErrorIs(t, err, apperrors.ErrNotFound, id)
	}
	txRepo.AssertNotCalled(t, "FindTransactionByID", mock.Anything, mock.Anything)
	txRepo.AssertNotCalled(t, "FindEntriesByTransactionID", mock.Anything, mock.Anything)
}
