package pgsql

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/bank_backoffice/internal/models"
	"github.com/SscSPs/bank_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `accno, cif, account_type, balance, interest_rate, opened_at, opened_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	err := row.Scan(&m.Accno, &m.CIF, &m.AccountType, &m.Balance, &m.InterestRate, &m.OpenedAt, &m.OpenedBy)
	if err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	defer rows.Close()
	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `INSERT INTO accounts (` + accountColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7);`

	_, err := r.q(ctx).Exec(ctx, query, m.Accno, m.CIF, m.AccountType, m.Balance, m.InterestRate, m.OpenedAt, m.OpenedBy)
	if err != nil {
		err = translateError(err, "failed to save account "+m.Accno)
		if errors.Is(err, apperrors.ErrDuplicate) {
			return apperrors.NewAppError(apperrors.ErrDuplicate, fmt.Sprintf("account %s already exists", m.Accno), err)
		}
		return err
	}
	return nil
}

// FindAccountByNumber retrieves an account by its account number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accno string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE accno = $1;`
	acc, err := scanAccount(r.q(ctx).QueryRow(ctx, query, accno))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account " + accno)
		}
		return nil, translateError(err, "failed to find account "+accno)
	}
	return &acc, nil
}

// ListAccountsByCustomer retrieves every account owned by cif.
func (r *PgxAccountRepository) ListAccountsByCustomer(ctx context.Context, cif string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE cif = $1 ORDER BY accno;`
	rows, err := r.q(ctx).Query(ctx, query, cif)
	if err != nil {
		return nil, translateError(err, "failed to query accounts for customer "+cif)
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, translateError(err, "failed to scan accounts for customer "+cif)
	}
	return accounts, nil
}

// ListAccounts retrieves a page of all accounts ordered by account number.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY accno LIMIT $1 OFFSET $2;`
	rows, err := r.q(ctx).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, translateError(err, "failed to query accounts")
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, translateError(err, "failed to scan accounts")
	}
	return accounts, nil
}

// LockAccounts selects the accounts FOR UPDATE one at a time in ascending
// account-number order, so concurrent callers always queue in the same order.
func (r *PgxAccountRepository) LockAccounts(ctx context.Context, accnos []string) (map[string]domain.Account, error) {
	tx := getTx(ctx)
	if tx == nil {
		return nil, errors.New("LockAccounts requires an open unit of work")
	}

	ordered := slices.Clone(accnos)
	slices.Sort(ordered)
	ordered = slices.Compact(ordered)

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE accno = $1 FOR UPDATE;`
	locked := make(map[string]domain.Account, len(ordered))
	for _, accno := range ordered {
		acc, err := scanAccount(tx.QueryRow(ctx, query, accno))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFoundError("account " + accno)
			}
			return nil, translateError(err, "failed to lock account "+accno)
		}
		locked[accno] = acc
	}
	return locked, nil
}

// ApplyDelta adds delta to the balance in one conditional statement, so the
// sufficiency check cannot race with another debit.
func (r *PgxAccountRepository) ApplyDelta(ctx context.Context, accno string, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE accounts
		SET balance = balance + $2
		WHERE accno = $1 AND balance + $2 >= 0
		RETURNING balance;
	`
	var balance decimal.Decimal
	err := r.q(ctx).QueryRow(ctx, query, accno, delta).Scan(&balance)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, translateError(err, "failed to apply delta to account "+accno)
	}

	// No row updated: either the account is missing or the guard rejected the debit.
	var exists bool
	if err := r.q(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE accno = $1);`, accno).Scan(&exists); err != nil {
		return decimal.Zero, translateError(err, "failed to check account "+accno)
	}
	if !exists {
		return decimal.Zero, apperrors.NewNotFoundError("account " + accno)
	}
	return decimal.Zero, apperrors.NewAppError(apperrors.ErrInsufficientFunds,
		fmt.Sprintf("account %s cannot be debited by %s", accno, delta.Neg().String()), nil)
}
