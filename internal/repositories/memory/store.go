// Package memory provides in-process implementations of the repository ports.
// They back the memory storage driver and the service tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/txledger/internal/apperrors"
	"github.com/SscSPs/txledger/internal/core/domain"
	portsrepo "github.com/SscSPs/txledger/internal/core/ports/repositories"
	"github.com/SscSPs/txledger/internal/utils/accounting"
	"github.com/SscSPs/txledger/internal/utils/pagination"
)

// Store keeps every ledger record in maps guarded by mu. Balance updates are additionally
// serialised per key by locks, so postings on disjoint keys only meet briefly on mu.
type Store struct {
	mu sync.RWMutex

	accounts     map[string]domain.Account
	accountCodes map[string]string
	journals     map[string]domain.Journal
	journalCodes map[string]string

	templates     map[string]domain.TxTemplate // by code
	templateExtID map[string]string            // external id -> code
	templateOrder []string                     // codes in creation order
	templateSeq   int64

	transactions map[string]domain.Transaction
	txExternalID map[string]string // external id -> transaction id
	voidedBy     map[string]string // original -> void transaction id
	txEntries    map[string][]domain.Entry
	keyEntries   map[domain.BalanceKey][]domain.Entry
	balances     map[domain.BalanceKey]domain.Balance

	// Entry listings by account and journal, each in ascending Seq order.
	entrySeq       int64
	accountEntries map[string][]domain.Entry
	journalEntries map[string][]domain.Entry

	locks *keyLocker
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts:      make(map[string]domain.Account),
		accountCodes:  make(map[string]string),
		journals:      make(map[string]domain.Journal),
		journalCodes:  make(map[string]string),
		templates:     make(map[string]domain.TxTemplate),
		templateExtID: make(map[string]string),
		transactions:  make(map[string]domain.Transaction),
		txExternalID:  make(map[string]string),
		voidedBy:      make(map[string]string),
		txEntries:     make(map[string][]domain.Entry),
		keyEntries:    make(map[domain.BalanceKey][]domain.Entry),
		balances:      make(map[domain.BalanceKey]domain.Balance),
		locks:         newKeyLocker(),

		accountEntries: make(map[string][]domain.Entry),
		journalEntries: make(map[string][]domain.Entry),
	}
}

// NewRepositoryProvider wires a fresh store and outbox log into every repository port.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	store := NewStore()
	return portsrepo.RepositoryProvider{
		AccountRepo:     store,
		JournalRepo:     store,
		TxTemplateRepo:  store,
		TransactionRepo: store,
		BalanceRepo:     store,
		OutboxRepo:      NewOutboxLog(),
	}
}

var (
	_ portsrepo.AccountRepositoryFacade     = (*Store)(nil)
	_ portsrepo.JournalRepositoryFacade     = (*Store)(nil)
	_ portsrepo.TxTemplateRepositoryFacade  = (*Store)(nil)
	_ portsrepo.TransactionRepositoryFacade = (*Store)(nil)
	_ portsrepo.BalanceRepositoryFacade     = (*Store)(nil)
)

// --- Accounts ---

func (s *Store) SaveAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[account.AccountID]; ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrDuplicateCode, account.AccountID)
	}
	if _, ok := s.accountCodes[account.Code]; ok {
		return fmt.Errorf("%w: account code %q", apperrors.ErrDuplicateCode, account.Code)
	}
	s.accounts[account.AccountID] = account
	s.accountCodes[account.Code] = account.AccountID
	return nil
}

func (s *Store) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &account, nil
}

func (s *Store) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	s.mu.RLock()
	id, ok := s.accountCodes[code]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return s.FindAccountByID(ctx, id)
}

func (s *Store) FindAccountsByIDs(_ context.Context, accountIDs []string) (map[string]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	found := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if account, ok := s.accounts[id]; ok {
			found[id] = account
		}
	}
	return found, nil
}

// --- Journals ---

func (s *Store) SaveJournal(_ context.Context, journal domain.Journal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.journals[journal.JournalID]; ok {
		return fmt.Errorf("%w: journal %s", apperrors.ErrDuplicateCode, journal.JournalID)
	}
	if _, ok := s.journalCodes[journal.Code]; ok {
		return fmt.Errorf("%w: journal code %q", apperrors.ErrDuplicateCode, journal.Code)
	}
	s.journals[journal.JournalID] = journal
	s.journalCodes[journal.Code] = journal.JournalID
	return nil
}

func (s *Store) FindJournalByID(_ context.Context, journalID string) (*domain.Journal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	journal, ok := s.journals[journalID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &journal, nil
}

func (s *Store) FindJournalByCode(ctx context.Context, code string) (*domain.Journal, error) {
	s.mu.RLock()
	id, ok := s.journalCodes[code]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return s.FindJournalByID(ctx, id)
}

// --- Templates ---

func (s *Store) SaveTxTemplate(_ context.Context, tpl domain.TxTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.templates[tpl.Code]; ok {
		return fmt.Errorf("%w: template %q", apperrors.ErrDuplicateCode, tpl.Code)
	}
	if tpl.ExternalID != "" {
		if _, ok := s.templateExtID[tpl.ExternalID]; ok {
			return fmt.Errorf("%w: template external id %q", apperrors.ErrDuplicateExternalID, tpl.ExternalID)
		}
		s.templateExtID[tpl.ExternalID] = tpl.Code
	}
	s.templateSeq++
	tpl.Seq = s.templateSeq
	s.templates[tpl.Code] = tpl
	s.templateOrder = append(s.templateOrder, tpl.Code)
	return nil
}

func (s *Store) FindTxTemplateByCode(_ context.Context, code string) (*domain.TxTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tpl, ok := s.templates[code]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &tpl, nil
}

func (s *Store) FindTxTemplateByExternalID(ctx context.Context, externalID string) (*domain.TxTemplate, error) {
	s.mu.RLock()
	code, ok := s.templateExtID[externalID]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return s.FindTxTemplateByCode(ctx, code)
}

func (s *Store) ListTxTemplates(_ context.Context, limit int, nextToken *string) ([]domain.TxTemplate, *string, error) {
	var after int64
	if nextToken != nil {
		seq, err := pagination.DecodeSeqToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		after = seq
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	// Seq n lives at templateOrder[n-1].
	start := int(after)
	if start > len(s.templateOrder) {
		start = len(s.templateOrder)
	}
	end := start + limit
	if end > len(s.templateOrder) {
		end = len(s.templateOrder)
	}

	page := make([]domain.TxTemplate, 0, end-start)
	for _, code := range s.templateOrder[start:end] {
		page = append(page, s.templates[code])
	}
	if end == len(s.templateOrder) || len(page) == 0 {
		return page, nil, nil
	}
	token := pagination.EncodeSeqToken(page[len(page)-1].Seq)
	return page, &token, nil
}

// --- Transactions ---

// SaveTransaction applies entries under per-key locks taken in sorted order, then publishes
// the transaction, entries and balances together under the store lock.
func (s *Store) SaveTransaction(ctx context.Context, tx domain.Transaction, entries []domain.Entry) ([]domain.Balance, error) {
	keys := accounting.SortedBalanceKeys(entries)
	unlock := s.locks.Lock(keys)
	defer unlock()

	now := time.Now().UTC()
	updated := make(map[domain.BalanceKey]domain.Balance, len(keys))
	s.mu.RLock()
	for _, key := range keys {
		b, ok := s.balances[key]
		if !ok {
			b = domain.NewBalance(key)
		}
		updated[key] = b
	}
	s.mu.RUnlock()

	for _, e := range entries {
		b := updated[e.BalanceKey()]
		accounting.ApplyEntry(&b, e, now)
		updated[e.BalanceKey()] = b
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transactions[tx.TransactionID]; ok {
		return nil, apperrors.NewStorageError("transaction id already used", fmt.Errorf("transaction %s exists", tx.TransactionID))
	}
	if tx.ExternalID != "" {
		if _, ok := s.txExternalID[tx.ExternalID]; ok {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrDuplicateExternalID, tx.ExternalID)
		}
	}
	if tx.VoidOf != "" {
		if _, ok := s.voidedBy[tx.VoidOf]; ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAlreadyVoided, tx.VoidOf)
		}
	}

	header := tx
	header.Entries = nil
	s.transactions[tx.TransactionID] = header
	if tx.ExternalID != "" {
		s.txExternalID[tx.ExternalID] = tx.TransactionID
	}
	if tx.VoidOf != "" {
		s.voidedBy[tx.VoidOf] = tx.TransactionID
	}
	stored := append([]domain.Entry(nil), entries...)
	for i := range stored {
		s.entrySeq++
		stored[i].Seq = s.entrySeq
	}
	s.txEntries[tx.TransactionID] = stored
	for _, e := range stored {
		k := e.BalanceKey()
		s.keyEntries[k] = append(s.keyEntries[k], e)
		s.accountEntries[e.AccountID] = append(s.accountEntries[e.AccountID], e)
		s.journalEntries[e.JournalID] = append(s.journalEntries[e.JournalID], e)
	}

	result := make([]domain.Balance, 0, len(keys))
	for _, key := range keys {
		s.balances[key] = updated[key]
		result = append(result, updated[key])
	}
	return result, nil
}

func (s *Store) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tx, ok := s.transactions[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &tx, nil
}

func (s *Store) FindTransactionByExternalID(ctx context.Context, externalID string) (*domain.Transaction, error) {
	s.mu.RLock()
	id, ok := s.txExternalID[externalID]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return s.FindTransactionByID(ctx, id)
}

func (s *Store) FindEntriesByTransactionID(_ context.Context, transactionID string) ([]domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := append([]domain.Entry(nil), s.txEntries[transactionID]...)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Sequence < entries[j].Sequence })
	return entries, nil
}

func (s *Store) ListEntriesByBalanceKey(_ context.Context, key domain.BalanceKey) ([]domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Entry(nil), s.keyEntries[key]...), nil
}

func (s *Store) ListEntriesForAccount(_ context.Context, accountID string, page domain.EntryPage) ([]domain.Entry, *string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pageEntries(s.accountEntries[accountID], page)
}

func (s *Store) ListEntriesForJournal(_ context.Context, journalID string, page domain.EntryPage) ([]domain.Entry, *string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pageEntries(s.journalEntries[journalID], page)
}

// pageEntries cuts one page out of entries, which must be in ascending Seq order.
func pageEntries(entries []domain.Entry, page domain.EntryPage) ([]domain.Entry, *string, error) {
	after, hasCursor, err := pagination.SeqCursor(page.After)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	var rows []domain.Entry
	if page.Descending {
		end := len(entries)
		if hasCursor {
			end = sort.Search(len(entries), func(i int) bool { return entries[i].Seq >= after })
		}
		for i := end - 1; i >= 0 && len(rows) <= page.Limit; i-- {
			rows = append(rows, entries[i])
		}
	} else {
		start := sort.Search(len(entries), func(i int) bool { return entries[i].Seq > after })
		end := start + page.Limit + 1
		if end > len(entries) {
			end = len(entries)
		}
		rows = append(rows, entries[start:end]...)
	}

	rows, next := pagination.SeqPage(rows, page.Limit, func(e domain.Entry) int64 { return e.Seq })
	if rows == nil {
		rows = []domain.Entry{}
	}
	return rows, next, nil
}

// --- Balances ---

func (s *Store) FindBalance(_ context.Context, key domain.BalanceKey) (*domain.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.balances[key]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &b, nil
}

func (s *Store) FindBalancesForAccount(_ context.Context, accountID, journalID, currency string) ([]domain.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Balance
	for _, layer := range domain.Layers {
		key := domain.BalanceKey{AccountID: accountID, JournalID: journalID, Currency: currency, Layer: layer}
		if b, ok := s.balances[key]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) FindBalancesByAccount(_ context.Context, accountID string) ([]domain.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Balance{}
	for key, b := range s.balances {
		if key.AccountID == accountID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.JournalID != b.JournalID {
			return a.JournalID < b.JournalID
		}
		if a.Currency != b.Currency {
			return a.Currency < b.Currency
		}
		return a.Layer < b.Layer
	})
	return out, nil
}
