package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/txledger/internal/apperrors"
)

// Postgres SQLSTATE codes the repositories translate into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidTextRep      = "22P02"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewStorageError("failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewStorageError("failed to rollback transaction", err)
	}
	return nil
}

// translateError maps constraint violations onto domain errors using the constraint names
// declared in the migrations. Anything else becomes a storage failure carrying msg.
func translateError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			switch {
			case strings.HasSuffix(pgErr.ConstraintName, "external_id_key"):
				return fmt.Errorf("%w: %s", apperrors.ErrDuplicateExternalID, pgErr.Detail)
			case pgErr.ConstraintName == "transactions_void_of_key":
				return fmt.Errorf("%w: %s", apperrors.ErrAlreadyVoided, pgErr.Detail)
			default:
				return fmt.Errorf("%w: %s", apperrors.ErrDuplicateCode, pgErr.Detail)
			}
		case pgInvalidTextRep:
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, pgErr.Message)
		case pgForeignKeyViolation:
			switch {
			case strings.HasSuffix(pgErr.ConstraintName, "account_id_fkey"):
				return fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, pgErr.Detail)
			case strings.HasSuffix(pgErr.ConstraintName, "journal_id_fkey"):
				return fmt.Errorf("%w: %s", apperrors.ErrUnknownJournal, pgErr.Detail)
			case strings.HasSuffix(pgErr.ConstraintName, "void_of_fkey"):
				return fmt.Errorf("%w: %s", apperrors.ErrNotFound, pgErr.Detail)
			}
		}
	}
	return apperrors.NewStorageError(msg, err)
}

// notFoundOr returns apperrors.ErrNotFound for an empty result or a key that cannot exist,
// and a storage failure otherwise.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRep {
		return apperrors.ErrNotFound
	}
	return translateError(err, msg)
}
