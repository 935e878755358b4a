package pgsql

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/bank_backoffice/internal/models"
	"github.com/SscSPs/bank_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const loanColumns = `loan_id, cif, accno, amount, loan_type, interest_rate, tenure_months, status, applied_at, applied_by, decided_at, decided_by`

type PgxLoanRepository struct {
	BaseRepository
}

func newPgxLoanRepository(pool *pgxpool.Pool) *PgxLoanRepository {
	return &PgxLoanRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

func scanLoan(row pgx.Row) (domain.Loan, error) {
	var m models.Loan
	err := row.Scan(&m.LoanID, &m.CIF, &m.Accno, &m.Amount, &m.LoanType, &m.InterestRate, &m.TenureMonths,
		&m.Status, &m.AppliedAt, &m.AppliedBy, &m.DecidedAt, &m.DecidedBy)
	if err != nil {
		return domain.Loan{}, err
	}
	return mapping.ToDomainLoan(m), nil
}

// SaveLoan inserts a new application.
func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	m := mapping.ToModelLoan(loan)
	query := `INSERT INTO loans (` + loanColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`
	_, err := r.q(ctx).Exec(ctx, query, m.LoanID, m.CIF, m.Accno, m.Amount, m.LoanType, m.InterestRate, m.TenureMonths,
		m.Status, m.AppliedAt, m.AppliedBy, m.DecidedAt, m.DecidedBy)
	if err != nil {
		err = translateError(err, "failed to save loan "+m.LoanID)
		if errors.Is(err, apperrors.ErrDuplicate) {
			return apperrors.NewAppError(apperrors.ErrDuplicate, "loan "+m.LoanID+" already exists", err)
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("account " + m.Accno)
		}
		return err
	}
	return nil
}

// FindLoanByID retrieves a loan.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1;`
	l, err := scanLoan(r.q(ctx).QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("loan " + loanID)
		}
		return nil, translateError(err, "failed to find loan "+loanID)
	}
	return &l, nil
}

// UpdateLoanDecision writes the decision only while the row is still PENDING,
// so two concurrent approvals cannot both succeed.
func (r *PgxLoanRepository) UpdateLoanDecision(ctx context.Context, loan domain.Loan) error {
	query := `
		UPDATE loans
		SET status = $2, decided_at = $3, decided_by = $4
		WHERE loan_id = $1 AND status = 'PENDING';
	`
	tag, err := r.q(ctx).Exec(ctx, query, loan.LoanID, string(loan.Status), loan.DecidedAt, loan.DecidedBy)
	if err != nil {
		return translateError(err, "failed to update loan "+loan.LoanID)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	current, err := r.FindLoanByID(ctx, loan.LoanID)
	if err != nil {
		return err
	}
	return apperrors.NewAppError(apperrors.ErrAlreadyDecided, "loan "+loan.LoanID+" is "+string(current.Status), nil)
}

// ListLoans returns loans matching the filter, newest application first.
func (r *PgxLoanRepository) ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	var conditions []string
	var args []any
	add := func(column, value string) {
		args = append(args, value)
		conditions = append(conditions, column+" = $"+strconv.Itoa(len(args)))
	}
	if filter.CIF != "" {
		add("cif", filter.CIF)
	}
	if filter.AccountNumber != "" {
		add("accno", filter.AccountNumber)
	}
	if filter.Status != "" {
		add("status", string(filter.Status))
	}

	query := `SELECT ` + loanColumns + ` FROM loans`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY applied_at DESC, loan_id;"

	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to query loans")
	}
	defer rows.Close()

	loans := []domain.Loan{}
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, translateError(err, "failed to scan loan row")
		}
		loans = append(loans, l)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "error iterating loan rows")
	}
	return loans, nil
}
