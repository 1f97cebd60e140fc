package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/txledger/internal/apperrors"
	"github.com/SscSPs/txledger/internal/core/domain"
	portsrepo "github.com/SscSPs/txledger/internal/core/ports/repositories"
	"github.com/SscSPs/txledger/internal/models"
	"github.com/SscSPs/txledger/internal/utils/mapping"
	"github.com/SscSPs/txledger/internal/utils/pagination"
)

const txTemplateColumns = `seq, tx_template_id, code, version, description, external_id, params, transaction, entries, metadata, created_at`

type PgxTxTemplateRepository struct {
	BaseRepository
}

// newPgxTxTemplateRepository creates a new repository for the template registry.
func newPgxTxTemplateRepository(pool *pgxpool.Pool) portsrepo.TxTemplateRepositoryFacade {
	return &PgxTxTemplateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TxTemplateRepositoryFacade = (*PgxTxTemplateRepository)(nil)

// SaveTxTemplate inserts a template. Rows are never updated afterwards.
func (r *PgxTxTemplateRepository) SaveTxTemplate(ctx context.Context, tpl domain.TxTemplate) error {
	m, err := mapping.ToModelTxTemplate(tpl)
	if err != nil {
		return apperrors.NewStorageError("failed to encode template "+tpl.Code, err)
	}
	query := `
		INSERT INTO tx_templates (tx_template_id, code, version, description, external_id, params, transaction, entries, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.TxTemplateID,
		m.Code,
		m.Version,
		m.Description,
		m.ExternalID,
		m.Params,
		m.Transaction,
		m.Entries,
		m.Metadata,
		m.CreatedAt,
	)
	return translateError(err, "failed to save template "+m.Code)
}

// FindTxTemplateByCode retrieves a template by its code.
func (r *PgxTxTemplateRepository) FindTxTemplateByCode(ctx context.Context, code string) (*domain.TxTemplate, error) {
	return r.findOne(ctx, `SELECT `+txTemplateColumns+` FROM tx_templates WHERE code = $1;`, code)
}

// FindTxTemplateByExternalID retrieves a template by its external id.
func (r *PgxTxTemplateRepository) FindTxTemplateByExternalID(ctx context.Context, externalID string) (*domain.TxTemplate, error) {
	return r.findOne(ctx, `SELECT `+txTemplateColumns+` FROM tx_templates WHERE external_id = $1;`, externalID)
}

func (r *PgxTxTemplateRepository) findOne(ctx context.Context, query string, arg string) (*domain.TxTemplate, error) {
	rows, _ := r.Pool.Query(ctx, query, arg)
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.TxTemplate])
	if err != nil {
		return nil, notFoundOr(err, "failed to find template "+arg)
	}
	tpl, err := mapping.ToDomainTxTemplate(m)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to decode template "+m.Code, err)
	}
	return &tpl, nil
}

// ListTxTemplates retrieves templates in creation order using a sequence cursor.
func (r *PgxTxTemplateRepository) ListTxTemplates(ctx context.Context, limit int, nextToken *string) ([]domain.TxTemplate, *string, error) {
	var after int64
	if nextToken != nil {
		seq, err := pagination.DecodeSeqToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		after = seq
	}

	// Fetch one extra row to know whether another page exists.
	query := `SELECT ` + txTemplateColumns + ` FROM tx_templates WHERE seq > $1 ORDER BY seq LIMIT $2;`
	rows, _ := r.Pool.Query(ctx, query, after, limit+1)
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.TxTemplate])
	if err != nil {
		return nil, nil, translateError(err, "failed to list templates")
	}

	hasMore := len(ms) > limit
	if hasMore {
		ms = ms[:limit]
	}
	tpls := make([]domain.TxTemplate, 0, len(ms))
	for _, m := range ms {
		tpl, err := mapping.ToDomainTxTemplate(m)
		if err != nil {
			return nil, nil, apperrors.NewStorageError("failed to decode template "+m.Code, err)
		}
		tpls = append(tpls, tpl)
	}
	if !hasMore || len(tpls) == 0 {
		return tpls, nil, nil
	}
	token := pagination.EncodeSeqToken(tpls[len(tpls)-1].Seq)
	return tpls, &token, nil
}
