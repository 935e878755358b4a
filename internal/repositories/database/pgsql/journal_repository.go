package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/bank_backoffice/internal/models"
	"github.com/SscSPs/bank_backoffice/internal/utils/mapping"
	"github.com/SscSPs/bank_backoffice/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, accno, kind, amount, created_at, maker_id, checker_id, transfer_id, reversal_of`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(&m.TransactionID, &m.Accno, &m.Kind, &m.Amount, &m.CreatedAt, &m.MakerID, &m.CheckerID, &m.TransferID, &m.ReversalOf)
	if err != nil {
		return domain.Transaction{}, err
	}
	return mapping.ToDomainTransaction(m), nil
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	defer rows.Close()
	txns := []domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// AppendTransaction inserts a journal entry. Entries are never updated or deleted.
func (r *PgxJournalRepository) AppendTransaction(ctx context.Context, txn *domain.Transaction) error {
	if txn.TransactionID == "" {
		txn.TransactionID = uuid.NewString()
	}
	m := mapping.ToModelTransaction(*txn)
	query := `INSERT INTO transactions (` + transactionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`

	_, err := r.q(ctx).Exec(ctx, query, m.TransactionID, m.Accno, m.Kind, m.Amount, m.CreatedAt, m.MakerID, m.CheckerID, m.TransferID, m.ReversalOf)
	if err != nil {
		err = translateError(err, "failed to append transaction for account "+m.Accno)
		if errors.Is(err, apperrors.ErrDuplicate) && m.ReversalOf != nil {
			return apperrors.NewAppError(apperrors.ErrDuplicate, "transaction "+*m.ReversalOf+" is already reversed", err)
		}
		return err
	}
	return nil
}

// FindTransactionByID retrieves a single journal entry.
func (r *PgxJournalRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	if _, err := uuid.Parse(transactionID); err != nil {
		return nil, apperrors.NewNotFoundError("transaction " + transactionID)
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	t, err := scanTransaction(r.q(ctx).QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transaction " + transactionID)
		}
		return nil, translateError(err, "failed to find transaction "+transactionID)
	}
	return &t, nil
}

// ListTransactionsByAccount retrieves a page of entries for an account, newest first.
// It returns the entries, a token for the next page, and an error.
func (r *PgxJournalRepository) ListTransactionsByAccount(ctx context.Context, accno string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + transactionColumns + ` FROM transactions WHERE accno = $1`
	// Ordering must be stable: created_at DESC with the id as a tie-breaker.
	orderByClause := `ORDER BY created_at DESC, transaction_id DESC`
	args := []any{accno}

	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(apperrors.ErrValidation, "invalid nextToken", err)
		}
		// Tuple comparison is concise and efficient in Postgres
		query += ` AND (created_at, transaction_id) < ($2, $3)`
		args = append(args, cursor.Timestamp, cursor.ID)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, translateError(err, "failed to query transactions for account "+accno)
	}
	txns, err := collectTransactions(rows)
	if err != nil {
		return nil, nil, translateError(err, "failed to scan transactions for account "+accno)
	}

	var next *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[limit-1]
		token := pagination.EncodeToken(last.Timestamp, last.TransactionID)
		next = &token
	}
	return txns, next, nil
}

// ListRecentTransactions retrieves the latest entries across all accounts.
func (r *PgxJournalRepository) ListRecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY created_at DESC, transaction_id DESC LIMIT $1;`
	rows, err := r.q(ctx).Query(ctx, query, limit)
	if err != nil {
		return nil, translateError(err, "failed to query recent transactions")
	}
	txns, err := collectTransactions(rows)
	if err != nil {
		return nil, translateError(err, "failed to scan recent transactions")
	}
	return txns, nil
}

// LatestEntryTime returns the newest entry timestamp on the account or the zero time.
func (r *PgxJournalRepository) LatestEntryTime(ctx context.Context, accno string) (time.Time, error) {
	var latest *time.Time
	err := r.q(ctx).QueryRow(ctx, `SELECT max(created_at) FROM transactions WHERE accno = $1;`, accno).Scan(&latest)
	if err != nil {
		return time.Time{}, translateError(err, "failed to read latest entry time for account "+accno)
	}
	if latest == nil {
		return time.Time{}, nil
	}
	return latest.UTC(), nil
}
