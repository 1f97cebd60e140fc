package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/txledger/internal/core/domain"
	portsrepo "github.com/SscSPs/txledger/internal/core/ports/repositories"
	"github.com/SscSPs/txledger/internal/models"
	"github.com/SscSPs/txledger/internal/utils/mapping"
)

type PgxBalanceRepository struct {
	BaseRepository
}

// newPgxBalanceRepository creates a read-only repository over the balances table.
func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepositoryFacade {
	return &PgxBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceRepositoryFacade = (*PgxBalanceRepository)(nil)

// FindBalance retrieves one balance row.
func (r *PgxBalanceRepository) FindBalance(ctx context.Context, key domain.BalanceKey) (*domain.Balance, error) {
	query := `
		SELECT ` + balanceColumns + ` FROM balances
		WHERE account_id = $1 AND journal_id = $2 AND currency = $3 AND layer = $4;`
	rows, _ := r.Pool.Query(ctx, query, key.AccountID, key.JournalID, key.Currency, string(key.Layer))
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Balance])
	if err != nil {
		return nil, notFoundOr(err, "failed to find balance "+key.String())
	}
	b := mapping.ToDomainBalance(m)
	return &b, nil
}

// FindBalancesForAccount retrieves every stored layer of (account, journal, currency).
func (r *PgxBalanceRepository) FindBalancesForAccount(ctx context.Context, accountID, journalID, currency string) ([]domain.Balance, error) {
	query := `
		SELECT ` + balanceColumns + ` FROM balances
		WHERE account_id = $1 AND journal_id = $2 AND currency = $3
		ORDER BY layer;`
	rows, _ := r.Pool.Query(ctx, query, accountID, journalID, currency)
	return r.queryBalances(rows, accountID)
}

// FindBalancesByAccount retrieves every balance row of an account.
func (r *PgxBalanceRepository) FindBalancesByAccount(ctx context.Context, accountID string) ([]domain.Balance, error) {
	query := `
		SELECT ` + balanceColumns + ` FROM balances
		WHERE account_id = $1
		ORDER BY journal_id, currency, layer;`
	rows, _ := r.Pool.Query(ctx, query, accountID)
	return r.queryBalances(rows, accountID)
}

func (r *PgxBalanceRepository) queryBalances(rows pgx.Rows, accountID string) ([]domain.Balance, error) {
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Balance])
	if err != nil {
		return nil, translateError(err, "failed to find balances for account "+accountID)
	}
	out := make([]domain.Balance, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainBalance(m)
	}
	return out, nil
}
