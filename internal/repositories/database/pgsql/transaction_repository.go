package pgsql

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/txledger/internal/apperrors"
	"github.com/SscSPs/txledger/internal/core/domain"
	portsrepo "github.com/SscSPs/txledger/internal/core/ports/repositories"
	"github.com/SscSPs/txledger/internal/models"
	"github.com/SscSPs/txledger/internal/utils/accounting"
	"github.com/SscSPs/txledger/internal/utils/mapping"
	"github.com/SscSPs/txledger/internal/utils/pagination"
)

const (
	transactionColumns = `transaction_id, journal_id, tx_template_code, effective, external_id, correlation_id, description, metadata, void_of, created_at`
	entryInsertColumns = `entry_id, transaction_id, journal_id, account_id, entry_type, currency, direction, layer, units, sequence, description, created_at`
	entryColumns       = `seq, ` + entryInsertColumns
	balanceColumns     = `account_id, journal_id, currency, layer, dr_balance, cr_balance, version, last_entry_id, modified_at`
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates the repository that commits postings and reads them back.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// SaveTransaction inserts the transaction header and its entries and applies them to the
// balance rows, all in one database transaction. Balance rows are locked in sorted key order.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.Entry) ([]domain.Balance, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// Defer rollback in case of error
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	// 1. Insert the transaction header. Unique and foreign keys reject duplicates and dangling ids.
	m := mapping.ToModelTransaction(txn)
	_, err = tx.Exec(ctx, `INSERT INTO transactions (`+transactionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
		m.TransactionID,
		m.JournalID,
		m.TxTemplateCode,
		m.Effective,
		m.ExternalID,
		m.CorrelationID,
		m.Description,
		m.Metadata,
		m.VoidOf,
		m.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err, "failed to insert transaction "+m.TransactionID)
	}

	// 2. Lock the balance rows, creating zero rows for keys seen for the first time.
	now := time.Now().UTC()
	keys := accounting.SortedBalanceKeys(entries)
	balances := make(map[domain.BalanceKey]domain.Balance, len(keys))
	for _, key := range keys {
		b, err := r.lockBalance(ctx, tx, key, now)
		if err != nil {
			return nil, err
		}
		balances[key] = b
	}

	// 3. Apply entries in order and queue the writes.
	batch := &pgx.Batch{}
	for _, e := range entries {
		b := balances[e.BalanceKey()]
		accounting.ApplyEntry(&b, e, now)
		balances[e.BalanceKey()] = b

		me := mapping.ToModelEntry(e)
		batch.Queue(`INSERT INTO entries (`+entryInsertColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`,
			me.EntryID,
			me.TransactionID,
			me.JournalID,
			me.AccountID,
			me.EntryType,
			me.Currency,
			me.Direction,
			me.Layer,
			me.Units,
			me.Sequence,
			me.Description,
			me.CreatedAt,
		)
	}
	result := make([]domain.Balance, 0, len(keys))
	for _, key := range keys {
		mb := mapping.ToModelBalance(balances[key])
		batch.Queue(`
			UPDATE balances
			SET dr_balance = $5, cr_balance = $6, version = $7, last_entry_id = $8, modified_at = $9
			WHERE account_id = $1 AND journal_id = $2 AND currency = $3 AND layer = $4;`,
			mb.AccountID, mb.JournalID, mb.Currency, mb.Layer,
			mb.DrBalance, mb.CrBalance, mb.Version, mb.LastEntryID, mb.ModifiedAt,
		)
		result = append(result, balances[key])
	}

	// 4. Send the batch and commit.
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, translateError(err, "failed to write entries for transaction "+m.TransactionID)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return result, nil
}

// lockBalance returns the current row for key under FOR UPDATE.
func (r *PgxTransactionRepository) lockBalance(ctx context.Context, tx pgx.Tx, key domain.BalanceKey, now time.Time) (domain.Balance, error) {
	_, err := tx.Exec(ctx, `
		INSERT INTO balances (account_id, journal_id, currency, layer, modified_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (account_id, journal_id, currency, layer) DO NOTHING;`,
		key.AccountID, key.JournalID, key.Currency, string(key.Layer), now,
	)
	if err != nil {
		return domain.Balance{}, translateError(err, "failed to create balance "+key.String())
	}

	rows, _ := tx.Query(ctx, `
		SELECT `+balanceColumns+` FROM balances
		WHERE account_id = $1 AND journal_id = $2 AND currency = $3 AND layer = $4
		FOR UPDATE;`,
		key.AccountID, key.JournalID, key.Currency, string(key.Layer),
	)
	mb, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Balance])
	if err != nil {
		return domain.Balance{}, translateError(err, "failed to lock balance "+key.String())
	}
	return mapping.ToDomainBalance(mb), nil
}

// FindTransactionByID retrieves a transaction header by ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return r.findOne(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1;`, transactionID)
}

// FindTransactionByExternalID retrieves a transaction header by its external id.
func (r *PgxTransactionRepository) FindTransactionByExternalID(ctx context.Context, externalID string) (*domain.Transaction, error) {
	return r.findOne(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE external_id = $1;`, externalID)
}

func (r *PgxTransactionRepository) findOne(ctx context.Context, query, arg string) (*domain.Transaction, error) {
	rows, _ := r.Pool.Query(ctx, query, arg)
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, notFoundOr(err, "failed to find transaction "+arg)
	}
	t := mapping.ToDomainTransaction(m)
	return &t, nil
}

// FindEntriesByTransactionID retrieves the entries of a transaction ordered by sequence.
func (r *PgxTransactionRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE transaction_id = $1 ORDER BY sequence;`
	return r.queryEntries(ctx, query, transactionID)
}

// ListEntriesByBalanceKey retrieves entries contributing to key in commit order.
func (r *PgxTransactionRepository) ListEntriesByBalanceKey(ctx context.Context, key domain.BalanceKey) ([]domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + ` FROM entries
		WHERE account_id = $1 AND journal_id = $2 AND currency = $3 AND layer = $4
		ORDER BY seq;`
	return r.queryEntries(ctx, query, key.AccountID, key.JournalID, key.Currency, string(key.Layer))
}

// ListEntriesForAccount pages through an account's entries by commit sequence.
func (r *PgxTransactionRepository) ListEntriesForAccount(ctx context.Context, accountID string, page domain.EntryPage) ([]domain.Entry, *string, error) {
	return r.pageEntries(ctx, "account_id", accountID, page)
}

// ListEntriesForJournal pages through a journal's entries by commit sequence.
func (r *PgxTransactionRepository) ListEntriesForJournal(ctx context.Context, journalID string, page domain.EntryPage) ([]domain.Entry, *string, error) {
	return r.pageEntries(ctx, "journal_id", journalID, page)
}

// pageEntries fetches one row past the limit to learn whether another page follows.
// column is always a constant from this file.
func (r *PgxTransactionRepository) pageEntries(ctx context.Context, column, id string, page domain.EntryPage) ([]domain.Entry, *string, error) {
	after, hasCursor, err := pagination.SeqCursor(page.After)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	cmp, order := ">", "ASC"
	if page.Descending {
		cmp, order = "<", "DESC"
		if !hasCursor {
			after = math.MaxInt64
		}
	}
	query := `
		SELECT ` + entryColumns + ` FROM entries
		WHERE ` + column + ` = $1 AND seq ` + cmp + ` $2
		ORDER BY seq ` + order + `
		LIMIT $3;`
	entries, err := r.queryEntries(ctx, query, id, after, page.Limit+1)
	if err != nil {
		return nil, nil, err
	}
	entries, next := pagination.SeqPage(entries, page.Limit, func(e domain.Entry) int64 { return e.Seq })
	return entries, next, nil
}

func (r *PgxTransactionRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.Entry, error) {
	rows, _ := r.Pool.Query(ctx, query, args...)
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Entry])
	if err != nil {
		return nil, translateError(err, "failed to query entries")
	}
	return mapping.ToDomainEntrySlice(ms), nil
}
