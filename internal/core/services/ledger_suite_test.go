package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/txledger/internal/apperrors"
	"github.com/SscSPs/txledger/internal/core/domain"
	portsrepo "github.com/SscSPs/txledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/txledger/internal/core/ports/services"
	"github.com/SscSPs/txledger/internal/core/services"
	"github.com/SscSPs/txledger/internal/dto"
	"github.com/SscSPs/txledger/internal/repositories/memory"
)

// LedgerSuite exercises the full posting path against the in-memory store.
type LedgerSuite struct {
	suite.Suite
	ctx      context.Context
	repos    portsrepo.RepositoryProvider
	svc      *portssvc.ServiceContainer
	journal  *domain.Journal
	omnibus  *domain.Account
	customer *domain.Account
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

func (s *LedgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.repos = memory.NewRepositoryProvider()
	s.svc = services.NewServiceContainer(s.repos)

	var err error
	s.journal, err = s.svc.Journal.CreateJournal(s.ctx, dto.CreateJournalRequest{Name: "General Ledger", Code: "GL"})
	s.Require().NoError(err)
	s.omnibus, err = s.svc.Account.CreateAccount(s.ctx, dto.CreateAccountRequest{Name: "Deposit Omnibus", Code: "OMNIBUS"})
	s.Require().NoError(err)
	s.customer, err = s.svc.Account.CreateAccount(s.ctx, dto.CreateAccountRequest{Name: "Alice Checking", Code: "ALICE"})
	s.Require().NoError(err)

	_, err = s.svc.TxTemplate.CreateTxTemplate(s.ctx, recordDepositRequest())
	s.Require().NoError(err)
}

func recordDepositRequest() dto.CreateTxTemplateRequest {
	return dto.CreateTxTemplateRequest{
		Code:        "RECORD_DEPOSIT",
		Description: "Record a deposit",
		Params: []dto.TxTemplateParamRequest{
			{Name: "external_id", Type: "STRING"},
			{Name: "journal_id", Type: "UUID"},
			{Name: "currency", Type: "STRING"},
			{Name: "amount", Type: "DECIMAL"},
			{Name: "deposit_omnibus_account_id", Type: "UUID"},
			{Name: "credit_account_id", Type: "UUID"},
			{Name: "effective", Type: "DATE"},
		},
		Transaction: dto.TxTemplateTransactionRequest{
			JournalID:   "params.journal_id",
			Effective:   "params.effective",
			ExternalID:  "params.external_id",
			Description: "'Record a deposit'",
		},
		Entries: []dto.TxTemplateEntryRequest{
			{
				EntryType: "'RECORD_DEPOSIT_DR'",
				Currency:  "params.currency",
				AccountID: "params.deposit_omnibus_account_id",
				Direction: "DEBIT",
				Layer:     "SETTLED",
				Units:     "params.amount",
			},
			{
				EntryType: "'RECORD_DEPOSIT_CR'",
				Currency:  "params.currency",
				AccountID: "params.credit_account_id",
				Direction: "CREDIT",
				Layer:     "SETTLED",
				Units:     "params.amount",
			},
		},
	}
}

func (s *LedgerSuite) depositParams(externalID string, amount any) map[string]any {
	return map[string]any{
		"external_id":                externalID,
		"journal_id":                 s.journal.JournalID,
		"currency":                   "USD",
		"amount":                     amount,
		"deposit_omnibus_account_id": s.omnibus.AccountID,
		"credit_account_id":          s.customer.AccountID,
		"effective":                  "2024-06-30",
	}
}

func (s *LedgerSuite) balance(accountID string) *domain.Balance {
	b, err := s.svc.Balance.FindBalance(s.ctx, accountID, s.journal.JournalID, "USD", domain.Settled)
	s.Require().NoError(err)
	return b
}

func (s *LedgerSuite) TestRecordDepositEndToEnd() {
	tx, err := s.svc.Transaction.PostTransaction(s.ctx, "RECORD_DEPOSIT", s.depositParams(uuid.NewString(), 100))
	s.Require().NoError(err)

	s.Equal("RECORD_DEPOSIT", tx.TxTemplateCode)
	s.Equal("Record a deposit", tx.Description)
	s.Equal("2024-06-30", tx.Effective.Format("2006-01-02"))
	s.Require().Len(tx.Entries, 2)
	s.Equal("RECORD_DEPOSIT_DR", tx.Entries[0].EntryType)
	s.Equal(domain.Debit, tx.Entries[0].Direction)
	s.Equal(0, tx.Entries[0].Sequence)
	s.Equal(domain.Credit, tx.Entries[1].Direction)
	s.Equal(1, tx.Entries[1].Sequence)

	omnibus := s.balance(s.omnibus.AccountID)
	s.True(omnibus.DrBalance.Equal(decimal.NewFromInt(100)))
	s.True(omnibus.CrBalance.IsZero())
	s.True(omnibus.Net().Equal(decimal.NewFromInt(100)))

	customer := s.balance(s.customer.AccountID)
	s.True(customer.CrBalance.Equal(decimal.NewFromInt(100)))
	s.True(customer.Net().Equal(decimal.NewFromInt(-100)))
	s.True(customer.NetFor(domain.Credit).Equal(decimal.NewFromInt(100)))

	found, err := s.svc.Transaction.FindTransactionByID(s.ctx, tx.TransactionID)
	s.Require().NoError(err)
	s.Equal(tx.ExternalID, found.ExternalID)
	s.Len(found.Entries, 2)
}

func (s *LedgerSuite) TestDuplicateExternalID() {
	ext := uuid.NewString()
	_, err := s.svc.Transaction.PostTransaction(s.ctx, "RECORD_DEPOSIT", s.depositParams(ext, "10.00"))
	s.Require().NoError(err)

	_, err = s.svc.Transaction.PostTransaction(s.ctx, "RECORD_DEPOSIT", s.depositParams(ext, "10.00"))
	s.ErrorIs(err, apperrors.ErrDuplicateExternalID)

	_, err = s.svc.Transaction.PostTransaction(s.ctx, "RECORD_DEPOSIT", s.depositParams(uuid.NewString(), "10.00"))
	s.Require().NoError(err)

	s.True(s.balance(s.omnibus.AccountID).DrBalance.Equal(decimal.NewFromInt(20)))
}

func (s *LedgerSuite) TestValidationFailuresHaveNoSideEffects() {
	tests := []struct {
		name    string
		code    string
		params  func() map[string]any
		wantErr error
	}{
		{"unknown template", "NOPE", func() map[string]any { return s.depositParams("x", 1) }, apperrors.ErrNotFound},
		{"missing param", "RECORD_DEPOSIT", func() map[string]any {
			p := s.depositParams("x", 1)
			delete(p, "amount")
			return p
		}, apperrors.ErrUnknownParameter},
		{"mistyped param", "RECORD_DEPOSIT", func() map[string]any { return s.depositParams("x", "lots") }, apperrors.ErrTypeMismatch},
		{"bad uuid", "RECORD_DEPOSIT", func() map[string]any {
			p := s.depositParams("x", 1)
			p["credit_account_id"] = "alice"
			return p
		}, apperrors.ErrTypeMismatch},
		{"negative amount", "RECORD_DEPOSIT", func() map[string]any { return s.depositParams("x", -5) }, apperrors.ErrTypeMismatch},
		{"bad currency", "RECORD_DEPOSIT", func() map[string]any {
			p := s.depositParams("x", 1)
			p["currency"] = "dollars"
			return p
		}, apperrors.ErrTypeMismatch},
		{"unknown account", "RECORD_DEPOSIT", func() map[string]any {
			p := s.depositParams("x", 1)
			p["credit_account_id"] = uuid.NewString()
			return p
		}, apperrors.ErrUnknownAccount},
		{"unknown journal", "RECORD_DEPOSIT", func() map[string]any {
			p := s.depositParams("x", 1)
			p["journal_id"] = uuid.NewString()
			return p
		}, apperrors.ErrUnknownJournal},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.Transaction.PostTransaction(s.ctx, tt.code, tt.params())
			s.ErrorIs(err, tt.wantErr)

			s.True(s.balance(s.omnibus.AccountID).IsZero())
			s.True(s.balance(s.customer.AccountID).IsZero())
			_, err = s.svc.Transaction.FindTransactionByExternalID(s.ctx, "x")
			s.ErrorIs(err, apperrors.ErrNotFound)
			events, err := s.svc.Outbox.PollEvents(s.ctx, 0, 10)
			s.Require().NoError(err)
			s.Empty(events)
		})
	}
}

func (s *LedgerSuite) TestUnbalancedTemplateIsRejectedAtPost() {
	req := recordDepositRequest()
	req.Code = "LOPSIDED"
	req.Params = append(req.Params, dto.TxTemplateParamRequest{Name: "fee", Type: "DECIMAL"})
	req.Entries[1].Units = "params.fee"
	_, err := s.svc.TxTemplate.CreateTxTemplate(s.ctx, req)
	s.Require().NoError(err)

	params := s.depositParams("lopsided", "100.00")
	params["fee"] = "99.99"
	_, err = s.svc.Transaction.PostTransaction(s.ctx, "LOPSIDED", params)
	s.ErrorIs(err, apperrors.ErrUnbalancedTransaction)
	s.True(s.balance(s.omnibus.AccountID).IsZero())
}

func (s *LedgerSuite) TestBalancesMatchReplay() {
	amounts := []string{"100.00", "0.10", "0.20", "33.33", "1e2"}
	for _, a := range amounts {
		_, err := s.svc.Transaction.PostTransaction(s.ctx, "RECORD_DEPOSIT", s.depositParams(uuid.NewString(), a))
		s.Require().NoError(err)
	}

	for _, accountID := range []string{s.omnibus.AccountID, s.customer.AccountID} {
		stored := s.balance(accountID)
		replayed, err := s.svc.Balance.RecomputeBalance(s.ctx, stored.BalanceKey)
		s.Require().NoError(err)
		s.True(stored.DrBalance.Equal(replayed.DrBalance))
		s.True(stored.CrBalance.Equal(replayed.CrBalance))
		s.Equal(stored.Version, replayed.Version)
		s.Equal(stored.LastEntryID, replayed.LastEntryID)
	}
	s.True(s.balance(s.omnibus.AccountID).DrBalance.Equal(decimal.RequireFromString("233.63")))
}

func (s *LedgerSuite) TestConcurrentPostingsOnSameAccounts() {
	const n = 40
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.svc.Transaction.PostTransaction(s.ctx, "RECORD_DEPOSIT", s.depositParams(uuid.NewString(), "2.50"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.NoError(err)
	}

	omnibus := s.balance(s.omnibus.AccountID)
	s.True(omnibus.DrBalance.Equal(decimal.NewFromInt(100)))
	s.Equal(int64(n), omnibus.Version)
}

func (s *LedgerSuite) TestConcurrentDuplicateExternalIDCommitsOnce() {
	const n = 10
	ext := uuid.NewString()
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.svc.Transaction.PostTransaction(s.ctx, "RECORD_DEPOSIT", s.depositParams(ext, 1))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	ok, dup := 0, 0
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, apperrors.ErrDuplicateExternalID):
			dup++
		}
	}
	s.Equal(1, ok)
	s.Equal(n-1, dup)
	s.Equal(int64(1), s.balance(s.omnibus.AccountID).Version)
}

func (s *LedgerSuite) TestVoidTransaction() {
	tx, err := s.svc.Transaction.PostTransaction(s.ctx, "RECORD_DEPOSIT", s.depositParams(uuid.NewString(), 75))
	s.Require().NoError(err)

	void, err := s.svc.Transaction.VoidTransaction(s.ctx, tx.TransactionID)
	s.Require().NoError(err)
	s.Equal(tx.TransactionID, void.VoidOf)
	s.Empty(void.ExternalID)
	s.Require().Len(void.Entries, 2)
	s.Equal(domain.Credit, void.Entries[0].Direction)
	s.Equal(domain.Debit, void.Entries[1].Direction)

	s.True(s.balance(s.omnibus.AccountID).Net().IsZero())
	s.True(s.balance(s.customer.AccountID).Net().IsZero())
	s.Equal(int64(2), s.balance(s.omnibus.AccountID).Version)

	_, err = s.svc.Transaction.VoidTransaction(s.ctx, tx.TransactionID)
	s.ErrorIs(err, apperrors.ErrAlreadyVoided)

	_, err = s.svc.Transaction.VoidTransaction(s.ctx, void.TransactionID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Transaction.VoidTransaction(s.ctx, uuid.NewString())
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerSuite) TestOutboxReceivesCommittedTransactions() {
	tx, err := s.svc.Transaction.PostTransaction(s.ctx, "RECORD_DEPOSIT", s.depositParams(uuid.NewString(), 5))
	s.Require().NoError(err)

	events, err := s.svc.Outbox.PollEvents(s.ctx, 0, 0)
	s.Require().NoError(err)
	s.Require().Len(events, 3)
	s.Equal(domain.TransactionCreated, events[0].Type)
	s.Equal(tx.TransactionID, events[0].AggregateID)
	s.Equal(domain.EntryCreated, events[1].Type)
	s.Equal(tx.Entries[0].EntryID, events[1].AggregateID)

	var header domain.Transaction
	s.Require().NoError(json.Unmarshal(events[0].Payload, &header))
	s.Equal(tx.ExternalID, header.ExternalID)
	s.Empty(header.Entries)

	_, err = s.svc.Outbox.PollEvents(s.ctx, -1, 10)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerSuite) TestLayeredBalances() {
	req := recordDepositRequest()
	req.Code = "PENDING_DEPOSIT"
	req.Entries[0].Layer = "PENDING"
	req.Entries[1].Layer = "pending"
	_, err := s.svc.TxTemplate.CreateTxTemplate(s.ctx, req)
	s.Require().NoError(err)

	_, err = s.svc.Transaction.PostTransaction(s.ctx, "PENDING_DEPOSIT", s.depositParams(uuid.NewString(), 40))
	s.Require().NoError(err)
	_, err = s.svc.Transaction.PostTransaction(s.ctx, "RECORD_DEPOSIT", s.depositParams(uuid.NewString(), 60))
	s.Require().NoError(err)

	lb, err := s.svc.Balance.FindBalances(s.ctx, s.omnibus.AccountID, s.journal.JournalID, "USD")
	s.Require().NoError(err)
	s.True(lb.Settled.Net().Equal(decimal.NewFromInt(60)))
	s.True(lb.Pending.Net().Equal(decimal.NewFromInt(40)))
	s.True(lb.Encumbrance.IsZero())
	s.Equal(domain.Encumbrance, lb.Encumbrance.Layer)

	_, err = s.svc.Balance.FindBalances(s.ctx, s.omnibus.AccountID, s.journal.JournalID, "usd")
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerSuite) TestTemplateRegistry() {
	_, err := s.svc.TxTemplate.CreateTxTemplate(s.ctx, recordDepositRequest())
	s.ErrorIs(err, apperrors.ErrDuplicateCode)

	single := recordDepositRequest()
	single.Code = "SINGLE"
	single.Entries = single.Entries[:1]
	_, err = s.svc.TxTemplate.CreateTxTemplate(s.ctx, single)
	s.ErrorIs(err, apperrors.ErrInvalidTemplate)

	arithmetic := recordDepositRequest()
	arithmetic.Code = "ARITHMETIC"
	arithmetic.Entries[0].Units = "params.amount * 2"
	_, err = s.svc.TxTemplate.CreateTxTemplate(s.ctx, arithmetic)
	s.ErrorIs(err, apperrors.ErrInvalidTemplate)
	s.ErrorIs(err, apperrors.ErrUnsupportedExpression)

	withExt := recordDepositRequest()
	withExt.Code = "WITH_EXT"
	withExt.ExternalID = "tpl-ext"
	created, err := s.svc.TxTemplate.CreateTxTemplate(s.ctx, withExt)
	s.Require().NoError(err)
	s.Equal(services.TemplateVersion, created.Version)

	byExt, err := s.svc.TxTemplate.FindTxTemplateByExternalID(s.ctx, "tpl-ext")
	s.Require().NoError(err)
	s.Equal("WITH_EXT", byExt.Code)

	again := recordDepositRequest()
	again.Code = "OTHER"
	again.ExternalID = "tpl-ext"
	_, err = s.svc.TxTemplate.CreateTxTemplate(s.ctx, again)
	s.ErrorIs(err, apperrors.ErrDuplicateExternalID)

	_, err = s.svc.TxTemplate.FindTxTemplateByCode(s.ctx, "MISSING")
	s.ErrorIs(err, apperrors.ErrNotFound)

	page, err := s.svc.TxTemplate.ListTxTemplates(s.ctx, dto.ListTxTemplatesParams{First: 1})
	s.Require().NoError(err)
	s.Require().Len(page.TxTemplates, 1)
	s.Equal("RECORD_DEPOSIT", page.TxTemplates[0].Code)
	s.True(page.PageInfo.HasNextPage)

	next, err := s.svc.TxTemplate.ListTxTemplates(s.ctx, dto.ListTxTemplatesParams{First: 10, After: page.PageInfo.EndCursor})
	s.Require().NoError(err)
	s.Require().Len(next.TxTemplates, 1)
	s.Equal("WITH_EXT", next.TxTemplates[0].Code)
	s.False(next.PageInfo.HasNextPage)

	bad := "not-a-cursor"
	_, err = s.svc.TxTemplate.ListTxTemplates(s.ctx, dto.ListTxTemplatesParams{After: &bad})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerSuite) TestParamDefaults() {
	req := recordDepositRequest()
	req.Code = "USD_DEPOSIT"
	usd := "USD"
	req.Params[2].Default = &usd
	_, err := s.svc.TxTemplate.CreateTxTemplate(s.ctx, req)
	s.Require().NoError(err)

	params := s.depositParams(uuid.NewString(), 12)
	delete(params, "currency")
	tx, err := s.svc.Transaction.PostTransaction(s.ctx, "USD_DEPOSIT", params)
	s.Require().NoError(err)
	s.Equal("USD", tx.Entries[0].Currency)
}

func (s *LedgerSuite) TestIntegerAmountOutOfRangeIsRejected() {
	req := recordDepositRequest()
	req.Code = "RECORD_DEPOSIT_WHOLE"
	for i := range req.Params {
		if req.Params[i].Name == "amount" {
			req.Params[i].Type = "INTEGER"
		}
	}
	_, err := s.svc.TxTemplate.CreateTxTemplate(s.ctx, req)
	s.Require().NoError(err)

	_, err = s.svc.Transaction.PostTransaction(s.ctx, "RECORD_DEPOSIT_WHOLE", s.depositParams("huge", json.Number("100000000000000000000")))
	s.ErrorIs(err, apperrors.ErrTypeMismatch)
	s.True(s.balance(s.omnibus.AccountID).IsZero())
	_, err = s.svc.Transaction.FindTransactionByExternalID(s.ctx, "huge")
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.svc.Transaction.PostTransaction(s.ctx, "RECORD_DEPOSIT_WHOLE", s.depositParams("whole", json.Number("250")))
	s.Require().NoError(err)
	s.True(s.balance(s.omnibus.AccountID).Net().Equal(decimal.NewFromInt(250)))
}

func (s *LedgerSuite) TestMalformedIdentifiersGiveTypedErrors() {
	_, err := s.svc.Account.GetAccountByID(s.ctx, "alice")
	s.ErrorIs(err, apperrors.ErrNotFound)
	_, err = s.svc.Journal.GetJournalByID(s.ctx, "GL")
	s.ErrorIs(err, apperrors.ErrNotFound)

	ok, err := s.svc.Journal.JournalExists(s.ctx, "GL")
	s.Require().NoError(err)
	s.False(ok)
	missing, err := s.svc.Account.MissingAccounts(s.ctx, []string{s.omnibus.AccountID, "alice"})
	s.Require().NoError(err)
	s.Equal([]string{"alice"}, missing)

	_, err = s.svc.Balance.FindBalance(s.ctx, "alice", s.journal.JournalID, "USD", domain.Settled)
	s.ErrorIs(err, apperrors.ErrValidation)
	_, err = s.svc.Balance.FindBalances(s.ctx, s.omnibus.AccountID, "GL", "USD")
	s.ErrorIs(err, apperrors.ErrValidation)

	req := recordDepositRequest()
	req.Code = "WITH_BAD_ID"
	req.TxTemplateID = "template-1"
	_, err = s.svc.TxTemplate.CreateTxTemplate(s.ctx, req)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerSuite) TestEntryListingsPageInCommitOrder() {
	for i := 1; i <= 3; i++ {
		_, err := s.svc.Transaction.PostTransaction(s.ctx, "RECORD_DEPOSIT", s.depositParams(uuid.NewString(), i*10))
		s.Require().NoError(err)
	}

	first, err := s.svc.Transaction.ListEntriesForAccount(s.ctx, s.customer.AccountID, dto.ListEntriesParams{First: 2})
	s.Require().NoError(err)
	s.Require().Len(first.Entries, 2)
	s.True(first.PageInfo.HasNextPage)
	s.True(first.Entries[0].Units.Equal(decimal.NewFromInt(10)))
	s.Less(first.Entries[0].Seq, first.Entries[1].Seq)

	second, err := s.svc.Transaction.ListEntriesForAccount(s.ctx, s.customer.AccountID, dto.ListEntriesParams{First: 2, After: first.PageInfo.EndCursor})
	s.Require().NoError(err)
	s.Require().Len(second.Entries, 1)
	s.False(second.PageInfo.HasNextPage)
	s.True(second.Entries[0].Units.Equal(decimal.NewFromInt(30)))

	newest, err := s.svc.Transaction.ListEntriesForAccount(s.ctx, s.customer.AccountID, dto.ListEntriesParams{First: 1, Direction: "desc"})
	s.Require().NoError(err)
	s.Require().Len(newest.Entries, 1)
	s.True(newest.Entries[0].Units.Equal(decimal.NewFromInt(30)))

	journal, err := s.svc.Transaction.ListEntriesForJournal(s.ctx, s.journal.JournalID, dto.ListEntriesParams{})
	s.Require().NoError(err)
	s.Len(journal.Entries, 6)
	s.False(journal.PageInfo.HasNextPage)

	_, err = s.svc.Transaction.ListEntriesForAccount(s.ctx, uuid.NewString(), dto.ListEntriesParams{})
	s.ErrorIs(err, apperrors.ErrNotFound)
	_, err = s.svc.Transaction.ListEntriesForAccount(s.ctx, "alice", dto.ListEntriesParams{})
	s.ErrorIs(err, apperrors.ErrNotFound)
	_, err = s.svc.Transaction.ListEntriesForJournal(s.ctx, "GL", dto.ListEntriesParams{})
	s.ErrorIs(err, apperrors.ErrNotFound)

	bad := "not-a-cursor"
	_, err = s.svc.Transaction.ListEntriesForJournal(s.ctx, s.journal.JournalID, dto.ListEntriesParams{After: &bad})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerSuite) TestBalancesByAccountGroupJournalAndCurrency() {
	_, err := s.svc.Transaction.PostTransaction(s.ctx, "RECORD_DEPOSIT", s.depositParams(uuid.NewString(), 10))
	s.Require().NoError(err)
	eur := s.depositParams(uuid.NewString(), 7)
	eur["currency"] = "EUR"
	_, err = s.svc.Transaction.PostTransaction(s.ctx, "RECORD_DEPOSIT", eur)
	s.Require().NoError(err)

	got, err := s.svc.Balance.FindBalancesByAccount(s.ctx, s.customer.AccountID)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("EUR", got[0].Currency)
	s.Equal("USD", got[1].Currency)
	s.True(got[0].Settled.CrBalance.Equal(decimal.NewFromInt(7)))
	s.True(got[1].Settled.CrBalance.Equal(decimal.NewFromInt(10)))
	s.True(got[1].Pending.IsZero())
	s.Equal(domain.Pending, got[1].Pending.Layer)

	untouched, err := s.svc.Balance.FindBalancesByAccount(s.ctx, uuid.NewString())
	s.Require().NoError(err)
	s.Empty(untouched)

	_, err = s.svc.Balance.FindBalancesByAccount(s.ctx, "alice")
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerSuite) TestLookupByCode() {
	account, err := s.svc.Account.GetAccountByCode(s.ctx, "ALICE")
	s.Require().NoError(err)
	s.Equal(s.customer.AccountID, account.AccountID)

	journal, err := s.svc.Journal.GetJournalByCode(s.ctx, "GL")
	s.Require().NoError(err)
	s.Equal(s.journal.JournalID, journal.JournalID)

	_, err = s.svc.Account.GetAccountByCode(s.ctx, "BOB")
	s.ErrorIs(err, apperrors.ErrNotFound)
	_, err = s.svc.Journal.GetJournalByCode(s.ctx, "AP")
	s.ErrorIs(err, apperrors.ErrNotFound)
	_, err = s.svc.Account.GetAccountByCode(s.ctx, " ")
	s.ErrorIs(err, apperrors.ErrValidation)
}
