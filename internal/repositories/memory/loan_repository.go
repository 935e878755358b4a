package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
)

func (s *Store) SaveLoan(ctx context.Context, loan domain.Loan) error {
	return s.inUnit(ctx, func(_ context.Context, u *unitOfWork) error {
		s.mu.RLock()
		_, exists := s.loans[loan.LoanID]
		s.mu.RUnlock()
		if _, pending := u.newLoans[loan.LoanID]; exists || pending {
			return apperrors.NewAppError(apperrors.ErrDuplicate, "loan "+loan.LoanID+" already exists", nil)
		}
		if _, err := s.viewAccount(u, loan.AccountNumber); err != nil {
			return err
		}
		u.newLoans[loan.LoanID] = loan
		return nil
	})
}

func (s *Store) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if u := getUnitOfWork(ctx); u != nil {
		if l, ok := u.decisions[loanID]; ok {
			return &l, nil
		}
		if l, ok := u.newLoans[loanID]; ok {
			return &l, nil
		}
	}
	s.mu.RLock()
	l, ok := s.loans[loanID]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewNotFoundError("loan " + loanID)
	}
	return &l, nil
}

// UpdateLoanDecision records a decision for a loan that is still PENDING. The
// status is checked again at commit, so of two racing decisions only one lands.
func (s *Store) UpdateLoanDecision(ctx context.Context, loan domain.Loan) error {
	return s.inUnit(ctx, func(ctx context.Context, u *unitOfWork) error {
		current, err := s.FindLoanByID(ctx, loan.LoanID)
		if err != nil {
			return err
		}
		if current.Status != domain.LoanPending {
			return apperrors.NewAppError(apperrors.ErrAlreadyDecided, "loan "+loan.LoanID+" is "+string(current.Status), nil)
		}
		if _, isNew := u.newLoans[loan.LoanID]; isNew {
			u.newLoans[loan.LoanID] = loan
			return nil
		}
		u.decisions[loan.LoanID] = loan
		return nil
	})
}

func (s *Store) ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	s.mu.RLock()
	loans := []domain.Loan{}
	for _, l := range s.loans {
		if filter.Matches(l) {
			loans = append(loans, l)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(loans, func(a, b domain.Loan) int {
		if c := b.AppliedAt.Compare(a.AppliedAt); c != 0 {
			return c
		}
		return strings.Compare(a.LoanID, b.LoanID)
	})
	return loans, nil
}
