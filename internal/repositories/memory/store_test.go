package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/txledger/internal/apperrors"
	"github.com/SscSPs/txledger/internal/core/domain"
	"github.com/SscSPs/txledger/internal/utils/accounting"
)

func transfer(journalID, from, to string, units int64) (domain.Transaction, []domain.Entry) {
	tx := domain.Transaction{
		TransactionID: uuid.NewString(),
		JournalID:     journalID,
		Effective:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:     time.Now().UTC(),
	}
	mk := func(seq int, account string, dir domain.Direction) domain.Entry {
		return domain.Entry{
			EntryID:       uuid.NewString(),
			TransactionID: tx.TransactionID,
			JournalID:     journalID,
			AccountID:     account,
			EntryType:     "TRANSFER",
			Currency:      "USD",
			Direction:     dir,
			Layer:         domain.Settled,
			Units:         decimal.NewFromInt(units),
			Sequence:      seq,
			CreatedAt:     tx.CreatedAt,
		}
	}
	return tx, []domain.Entry{mk(0, from, domain.Debit), mk(1, to, domain.Credit)}
}

func TestStore_SaveTransactionUpdatesBalances(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	journal, a, b := uuid.NewString(), uuid.NewString(), uuid.NewString()

	tx, entries := transfer(journal, a, b, 100)
	balances, err := s.SaveTransaction(ctx, tx, entries)
	require.NoError(t, err)
	require.Len(t, balances, 2)

	got, err := s.FindBalance(ctx, entries[0].BalanceKey())
	require.NoError(t, err)
	assert.True(t, got.DrBalance.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, int64(1), got.Version)
	assert.Equal(t, entries[0].EntryID, got.LastEntryID)

	stored, err := s.FindEntriesByTransactionID(ctx, tx.TransactionID)
	require.NoError(t, err)
	for i := range entries {
		entries[i].Seq = int64(i + 1)
	}
	assert.Equal(t, entries, stored)

	_, err = s.FindBalance(ctx, domain.BalanceKey{AccountID: a, JournalID: journal, Currency: "EUR", Layer: domain.Settled})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_DuplicateExternalIDAndVoid(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	journal, a, b := uuid.NewString(), uuid.NewString(), uuid.NewString()

	tx1, e1 := transfer(journal, a, b, 10)
	tx1.ExternalID = "ext-1"
	_, err := s.SaveTransaction(ctx, tx1, e1)
	require.NoError(t, err)

	tx2, e2 := transfer(journal, a, b, 10)
	tx2.ExternalID = "ext-1"
	_, err = s.SaveTransaction(ctx, tx2, e2)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateExternalID)

	// The rejected transaction left nothing behind.
	_, err = s.FindTransactionByID(ctx, tx2.TransactionID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	bal, err := s.FindBalance(ctx, e1[0].BalanceKey())
	require.NoError(t, err)
	assert.Equal(t, int64(1), bal.Version)

	found, err := s.FindTransactionByExternalID(ctx, "ext-1")
	require.NoError(t, err)
	assert.Equal(t, tx1.TransactionID, found.TransactionID)

	void1, ve1 := transfer(journal, b, a, 10)
	void1.VoidOf = tx1.TransactionID
	_, err = s.SaveTransaction(ctx, void1, ve1)
	require.NoError(t, err)

	void2, ve2 := transfer(journal, b, a, 10)
	void2.VoidOf = tx1.TransactionID
	_, err = s.SaveTransaction(ctx, void2, ve2)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyVoided)
}

func TestStore_ConcurrentPostingsLoseNoUpdates(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	journal := uuid.NewString()
	accounts := []string{uuid.NewString(), uuid.NewString(), uuid.NewString()}

	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				// Alternate direction so lock order differs between callers.
				from, to := accounts[(w+i)%3], accounts[(w+i+1)%3]
				tx, entries := transfer(journal, from, to, 1)
				_, err := s.SaveTransaction(ctx, tx, entries)
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	total := int64(0)
	for _, account := range accounts {
		key := domain.BalanceKey{AccountID: account, JournalID: journal, Currency: "USD", Layer: domain.Settled}
		b, err := s.FindBalance(ctx, key)
		require.NoError(t, err)
		total += b.Version

		entries, err := s.ListEntriesByBalanceKey(ctx, key)
		require.NoError(t, err)
		replayed := accounting.Replay(entries)[key]
		assert.True(t, replayed.DrBalance.Equal(b.DrBalance), "dr mismatch for %s", account)
		assert.True(t, replayed.CrBalance.Equal(b.CrBalance), "cr mismatch for %s", account)
		assert.Equal(t, replayed.Version, b.Version)
	}
	assert.Equal(t, int64(workers*perWorker*2), total)
	assert.Empty(t, s.locks.locks, "released key locks must not linger")
}

func TestKeyLocker_DropsReleasedKeys(t *testing.T) {
	k := newKeyLocker()
	keys := []domain.BalanceKey{
		{AccountID: "a", JournalID: "j", Currency: "USD", Layer: domain.Settled},
		{AccountID: "b", JournalID: "j", Currency: "USD", Layer: domain.Settled},
	}

	unlock := k.Lock(keys)
	assert.Len(t, k.locks, 2)

	acquired := make(chan struct{})
	go func() {
		second := k.Lock(keys[:1])
		close(acquired)
		second()
	}()
	// The waiter keeps the first key's entry alive after the holder lets go.
	assert.Eventually(t, func() bool {
		k.mu.Lock()
		defer k.mu.Unlock()
		return k.locks[keys[0]].refs == 2
	}, time.Second, time.Millisecond)

	unlock()
	<-acquired
	assert.Eventually(t, func() bool {
		k.mu.Lock()
		defer k.mu.Unlock()
		return len(k.locks) == 0
	}, time.Second, time.Millisecond)
}

func TestStore_ListEntriesForAccountAndJournal(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	journal, other := uuid.NewString(), uuid.NewString()
	a, b, c := uuid.NewString(), uuid.NewString(), uuid.NewString()

	for i := 0; i < 3; i++ {
		tx, entries := transfer(journal, a, b, int64(i+1))
		_, err := s.SaveTransaction(ctx, tx, entries)
		require.NoError(t, err)
	}
	tx, entries := transfer(other, a, c, 9)
	_, err := s.SaveTransaction(ctx, tx, entries)
	require.NoError(t, err)

	// Account a has one debit per transaction, four in total across both journals.
	var seqs []int64
	var token *string
	for {
		page, next, err := s.ListEntriesForAccount(ctx, a, domain.EntryPage{Limit: 3, After: token})
		require.NoError(t, err)
		for _, e := range page {
			assert.Equal(t, a, e.AccountID)
			seqs = append(seqs, e.Seq)
		}
		if next == nil {
			break
		}
		token = next
	}
	assert.Equal(t, []int64{1, 3, 5, 7}, seqs)

	desc, next, err := s.ListEntriesForAccount(ctx, a, domain.EntryPage{Limit: 3, Descending: true})
	require.NoError(t, err)
	require.Len(t, desc, 3)
	assert.Equal(t, int64(7), desc[0].Seq)
	require.NotNil(t, next)
	rest, next, err := s.ListEntriesForAccount(ctx, a, domain.EntryPage{Limit: 3, After: next, Descending: true})
	require.NoError(t, err)
	assert.Nil(t, next)
	require.Len(t, rest, 1)
	assert.Equal(t, int64(1), rest[0].Seq)

	inJournal, next, err := s.ListEntriesForJournal(ctx, journal, domain.EntryPage{Limit: 10})
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Len(t, inJournal, 6)

	none, next, err := s.ListEntriesForAccount(ctx, uuid.NewString(), domain.EntryPage{Limit: 10})
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Empty(t, none)

	bad := "!!"
	_, _, err = s.ListEntriesForJournal(ctx, journal, domain.EntryPage{Limit: 10, After: &bad})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestStore_FindBalancesByAccount(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	j1, j2 := uuid.NewString(), uuid.NewString()
	a, b := uuid.NewString(), uuid.NewString()

	for _, journal := range []string{j2, j1} {
		tx, entries := transfer(journal, a, b, 4)
		_, err := s.SaveTransaction(ctx, tx, entries)
		require.NoError(t, err)
	}

	got, err := s.FindBalancesByAccount(ctx, a)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].JournalID < got[1].JournalID)
	for _, bal := range got {
		assert.Equal(t, a, bal.AccountID)
		assert.True(t, bal.DrBalance.Equal(decimal.NewFromInt(4)))
	}

	none, err := s.FindBalancesByAccount(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_FindByCode(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	account := domain.Account{AccountID: uuid.NewString(), Name: "Alice", Code: "ALICE"}
	journal := domain.Journal{JournalID: uuid.NewString(), Name: "General Ledger", Code: "GL"}
	require.NoError(t, s.SaveAccount(ctx, account))
	require.NoError(t, s.SaveJournal(ctx, journal))

	gotAccount, err := s.FindAccountByCode(ctx, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, account.AccountID, gotAccount.AccountID)
	gotJournal, err := s.FindJournalByCode(ctx, "GL")
	require.NoError(t, err)
	assert.Equal(t, journal.JournalID, gotJournal.JournalID)

	_, err = s.FindAccountByCode(ctx, "BOB")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = s.FindJournalByCode(ctx, "AP")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_CancelledContextCommitsNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewStore()

	tx, entries := transfer(uuid.NewString(), uuid.NewString(), uuid.NewString(), 5)
	_, err := s.SaveTransaction(ctx, tx, entries)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = s.FindTransactionByID(context.Background(), tx.TransactionID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_ListTxTemplates(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.SaveTxTemplate(ctx, domain.TxTemplate{Code: fmt.Sprintf("TPL_%d", i)}))
	}
	err := s.SaveTxTemplate(ctx, domain.TxTemplate{Code: "TPL_0"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateCode)

	var codes []string
	var token *string
	pages := 0
	for {
		page, next, err := s.ListTxTemplates(ctx, 2, token)
		require.NoError(t, err)
		pages++
		for _, tpl := range page {
			codes = append(codes, tpl.Code)
		}
		if next == nil {
			break
		}
		token = next
	}
	assert.Equal(t, 3, pages)
	assert.Equal(t, []string{"TPL_0", "TPL_1", "TPL_2", "TPL_3", "TPL_4"}, codes)

	bad := "!!"
	_, _, err = s.ListTxTemplates(ctx, 2, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestOutboxLog_PublishAndPoll(t *testing.T) {
	ctx := context.Background()
	log := NewOutboxLog()
	require.NoError(t, log.Publish(ctx,
		domain.OutboxEvent{Type: domain.TransactionCreated, AggregateID: "t1"},
		domain.OutboxEvent{Type: domain.EntryCreated, AggregateID: "e1"},
		domain.OutboxEvent{Type: domain.EntryCreated, AggregateID: "e2"},
	))

	first, err := log.Poll(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, int64(1), first[0].Seq)
	assert.Equal(t, int64(2), first[1].Seq)

	rest, err := log.Poll(ctx, first[1].Seq, 10)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "e2", rest[0].AggregateID)

	none, err := log.Poll(ctx, 3, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}
