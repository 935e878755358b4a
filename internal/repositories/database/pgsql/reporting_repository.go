package pgsql

import (
	"context"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetSummary returns the dashboard totals.
func (r *reportingRepository) GetSummary(ctx context.Context) (*domain.LedgerSummary, error) {
	query := `SELECT COUNT(*), COUNT(DISTINCT cif), COALESCE(SUM(balance), 0) FROM accounts;`
	var s domain.LedgerSummary
	if err := r.q(ctx).QueryRow(ctx, query).Scan(&s.AccountCount, &s.CustomerCount, &s.TotalBalance); err != nil {
		return nil, translateError(err, "error querying ledger summary")
	}
	return &s, nil
}

// GetAccountsAboveBalance returns accounts with a balance strictly above threshold.
func (r *reportingRepository) GetAccountsAboveBalance(ctx context.Context, threshold decimal.Decimal) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE balance > $1 ORDER BY balance DESC, accno;`
	rows, err := r.q(ctx).Query(ctx, query, threshold)
	if err != nil {
		return nil, translateError(err, "error querying high value accounts")
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, translateError(err, "error scanning high value accounts")
	}
	return accounts, nil
}

// GetDepositTotals sums DEPOSIT entries per account, including accounts without any.
func (r *reportingRepository) GetDepositTotals(ctx context.Context) ([]domain.AccountDepositTotal, error) {
	query := `
		SELECT a.accno, COALESCE(SUM(t.amount) FILTER (WHERE t.kind = 'DEPOSIT'), 0) AS total_deposits
		FROM accounts a
		LEFT JOIN transactions t ON t.accno = a.accno
		GROUP BY a.accno
		ORDER BY a.accno;
	`
	rows, err := r.q(ctx).Query(ctx, query)
	if err != nil {
		return nil, translateError(err, "error querying deposit totals")
	}
	defer rows.Close()

	result := []domain.AccountDepositTotal{}
	for rows.Next() {
		var row domain.AccountDepositTotal
		if err := rows.Scan(&row.AccountNumber, &row.TotalDeposits); err != nil {
			return nil, translateError(err, "error scanning deposit totals")
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "error iterating deposit totals")
	}
	return result, nil
}

// GetBalanceMismatches recomputes each balance from the journal.
// It runs as a single statement, so it sees one consistent snapshot.
func (r *reportingRepository) GetBalanceMismatches(ctx context.Context) ([]domain.BalanceMismatch, error) {
	query := `
		SELECT a.accno, a.balance, j.journal_balance
		FROM accounts a
		CROSS JOIN LATERAL (
			SELECT COALESCE(SUM(CASE WHEN t.kind = 'DEPOSIT' THEN t.amount ELSE -t.amount END), 0) AS journal_balance
			FROM transactions t
			WHERE t.accno = a.accno
		) j
		WHERE a.balance <> j.journal_balance
		ORDER BY a.accno;
	`
	rows, err := r.q(ctx).Query(ctx, query)
	if err != nil {
		return nil, translateError(err, "error querying balance mismatches")
	}
	defer rows.Close()

	result := []domain.BalanceMismatch{}
	for rows.Next() {
		var row domain.BalanceMismatch
		if err := rows.Scan(&row.AccountNumber, &row.StoredBalance, &row.JournalBalance); err != nil {
			return nil, translateError(err, "error scanning balance mismatches")
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "error iterating balance mismatches")
	}
	return result, nil
}
