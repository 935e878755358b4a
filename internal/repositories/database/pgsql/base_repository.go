package pgsql

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/bank_backoffice/internal/middleware"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes the ledger reacts to.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgInvalidTextRep      = "22P02"
	pgNumericOverflow     = "22003"
	pgStringTooLong       = "22001"
	pgLockNotAvailable    = "55P03"
	pgQueryCanceled       = "57014"
	pgDeadlockDetected    = "40P01"
	pgSerialization       = "40001"
)

const balanceCheckConstraint = "accounts_balance_non_negative"

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// txKey is the key type for storing the open transaction in a context.
type txKey struct{}

func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func getTx(ctx context.Context) pgx.Tx {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return nil
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// q returns the unit of work bound to ctx, or the pool when there is none.
func (r *BaseRepository) q(ctx context.Context) querier {
	if tx := getTx(ctx); tx != nil {
		return tx
	}
	return r.Pool
}

// TxManager implements portsrepo.TransactionManager on a pgx pool.
type TxManager struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// NewTxManager creates a transaction manager. lockTimeout is applied with
// SET LOCAL semantics to every unit of work; zero leaves the server default.
func NewTxManager(pool *pgxpool.Pool, lockTimeout time.Duration) *TxManager {
	return &TxManager{pool: pool, lockTimeout: lockTimeout}
}

var _ portsrepo.TransactionManager = (*TxManager)(nil)

// WithTransaction executes fn within a database transaction stored in the context.
// If fn returns an error the transaction is rolled back, otherwise it is committed.
func (tm *TxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if getTx(ctx) != nil {
		return fn(ctx)
	}

	tx, err := tm.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return translateError(err, "failed to begin transaction")
	}

	// Rollback and commit must run even if the caller gave up after locks were taken.
	settle := context.WithoutCancel(ctx)
	defer func() {
		if rbErr := tx.Rollback(settle); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			middleware.GetLoggerFromCtx(ctx).Error("failed to rollback transaction", slog.String("error", rbErr.Error()))
		}
	}()

	if tm.lockTimeout > 0 {
		timeout := fmt.Sprintf("%dms", tm.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, "SELECT set_config('lock_timeout', $1, true)", timeout); err != nil {
			return translateError(err, "failed to set lock timeout")
		}
	}

	if err := fn(withTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(settle); err != nil {
		return translateError(err, "failed to commit transaction")
	}
	return nil
}

// translateError maps driver errors onto the application error kinds.
func translateError(err error, msg string) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperrors.NewAppError(apperrors.ErrBusy, msg+": request deadline reached while waiting", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.NewAppError(apperrors.ErrDuplicate, msg+": "+pgErr.Detail, err)
		case pgForeignKeyViolation:
			return apperrors.NewAppError(apperrors.ErrNotFound, msg+": referenced record does not exist", err)
		case pgCheckViolation:
			if pgErr.ConstraintName == balanceCheckConstraint {
				return apperrors.NewAppError(apperrors.ErrInsufficientFunds, msg, err)
			}
			return apperrors.NewAppError(apperrors.ErrValidation, msg+": "+pgErr.ConstraintName, err)
		case pgInvalidTextRep:
			return apperrors.NewAppError(apperrors.ErrValidation, msg+": malformed value", err)
		case pgNumericOverflow:
			return apperrors.NewAppError(apperrors.ErrInvalidAmount, msg+": amount exceeds the ledger's precision", err)
		case pgStringTooLong:
			return apperrors.NewAppError(apperrors.ErrValidation, msg+": value too long", err)
		case pgLockNotAvailable, pgQueryCanceled, pgDeadlockDetected, pgSerialization:
			return apperrors.NewAppError(apperrors.ErrBusy, msg+": account is locked by another operation", err)
		}
		return fmt.Errorf("%s: %w", msg, err)
	}

	var connErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connErr) || errors.As(err, &netErr) || errors.Is(err, io.ErrUnexpectedEOF) || pgconn.SafeToRetry(err) {
		return apperrors.NewAppError(apperrors.ErrStoreUnavailable, msg, err)
	}

	return fmt.Errorf("%s: %w", msg, err)
}
