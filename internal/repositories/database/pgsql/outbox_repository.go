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

// outboxLockKey serialises publishers so seq order matches commit order and a poller never
// skips a row that commits late with a smaller seq.
const outboxLockKey int64 = 0x6c6564676572

type PgxOutboxRepository struct {
	BaseRepository
}

// newPgxOutboxRepository creates the outbox_events backed notification sink.
func newPgxOutboxRepository(pool *pgxpool.Pool) portsrepo.OutboxRepositoryFacade {
	return &PgxOutboxRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OutboxRepositoryFacade = (*PgxOutboxRepository)(nil)

// Publish appends events in one database transaction.
func (r *PgxOutboxRepository) Publish(ctx context.Context, events ...domain.OutboxEvent) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1);`, outboxLockKey); err != nil {
		return translateError(err, "failed to lock outbox")
	}

	batch := &pgx.Batch{}
	for _, e := range events {
		m := mapping.ToModelOutboxEvent(e)
		batch.Queue(`
			INSERT INTO outbox_events (event_type, aggregate_id, payload, recorded_at)
			VALUES ($1, $2, $3, $4);`,
			m.EventType, m.AggregateID, m.Payload, m.RecordedAt,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return translateError(err, "failed to append outbox events")
	}
	return r.Commit(ctx, tx)
}

// Poll returns up to limit events after the given sequence number.
func (r *PgxOutboxRepository) Poll(ctx context.Context, after int64, limit int) ([]domain.OutboxEvent, error) {
	query := `
		SELECT seq, event_type, aggregate_id, payload, recorded_at
		FROM outbox_events
		WHERE seq > $1
		ORDER BY seq
		LIMIT $2;`
	rows, _ := r.Pool.Query(ctx, query, after, limit)
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.OutboxEvent])
	if err != nil {
		return nil, translateError(err, "failed to poll outbox")
	}
	out := make([]domain.OutboxEvent, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainOutboxEvent(m)
	}
	return out, nil
}
