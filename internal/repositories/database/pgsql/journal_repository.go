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

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveJournal inserts a new journal.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	m := mapping.ToModelJournal(journal)
	query := `
		INSERT INTO journals (journal_id, name, code, description, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query, m.JournalID, m.Name, m.Code, m.Description, m.CreatedAt)
	return translateError(err, "failed to save journal "+m.JournalID)
}

// FindJournalByID retrieves a journal by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	return r.findOne(ctx, "journal_id", journalID)
}

// FindJournalByCode retrieves a journal by its code.
func (r *PgxJournalRepository) FindJournalByCode(ctx context.Context, code string) (*domain.Journal, error) {
	return r.findOne(ctx, "code", code)
}

func (r *PgxJournalRepository) findOne(ctx context.Context, column, value string) (*domain.Journal, error) {
	query := `
		SELECT journal_id, name, code, description, created_at
		FROM journals
		WHERE ` + column + ` = $1;
	`
	rows, _ := r.Pool.Query(ctx, query, value)
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Journal])
	if err != nil {
		return nil, notFoundOr(err, "failed to find journal "+value)
	}
	j := mapping.ToDomainJournal(m)
	return &j, nil
}
