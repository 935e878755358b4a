package repositories

import (
	"context"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
)

// LoanReader defines read operations for loan data
type LoanReader interface {
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)
	ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error)
}

// LoanWriter defines write operations for loan data
type LoanWriter interface {
	// SaveLoan persists a new application. Returns ErrDuplicate if the id exists.
	SaveLoan(ctx context.Context, loan domain.Loan) error

	// UpdateLoanDecision stores a decided loan. The write only applies while the
	// stored loan is still PENDING; otherwise it returns ErrAlreadyDecided.
	UpdateLoanDecision(ctx context.Context, loan domain.Loan) error
}

// LoanRepositoryFacade combines all loan-related repository interfaces
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
}
