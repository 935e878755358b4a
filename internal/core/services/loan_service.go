package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice/internal/dto"
)

type loanService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	accountRepo portsrepo.AccountReader
	loanRepo    portsrepo.LoanRepositoryFacade
	auditSvc    portssvc.AuditSvc
}

// NewLoanService creates the loan lifecycle manager.
func NewLoanService(
	txManager portsrepo.TransactionManager,
	accountRepo portsrepo.AccountReader,
	loanRepo portsrepo.LoanRepositoryFacade,
	auditSvc portssvc.AuditSvc,
	options ...Option,
) portssvc.LoanSvcFacade {
	return &loanService{
		BaseService: newBaseService(options...),
		txManager:   txManager,
		accountRepo: accountRepo,
		loanRepo:    loanRepo,
		auditSvc:    auditSvc,
	}
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

func validateLoanRequest(req dto.ApplyLoanRequest) error {
	if req.LoanID == "" {
		return apperrors.NewAppError(apperrors.ErrValidation, "loan id is required", nil)
	}
	if err := domain.ValidateAmount(req.Amount); err != nil {
		return err
	}
	if req.TenureMonths < 1 || req.TenureMonths > math.MaxInt32 {
		return apperrors.NewAppError(apperrors.ErrInvalidAmount, fmt.Sprintf("tenure must be between one and %d months, got %d", math.MaxInt32, req.TenureMonths), nil)
	}
	if !req.LoanType.IsValid() {
		return apperrors.NewAppError(apperrors.ErrValidation, fmt.Sprintf("unknown loan type '%s'", req.LoanType), nil)
	}
	return domain.ValidateRate(req.InterestRate)
}

// ApplyLoan creates a PENDING application against an existing account of the customer.
func (s *loanService) ApplyLoan(ctx context.Context, caller domain.Identity, req dto.ApplyLoanRequest) (*domain.Loan, error) {
	if err := validateLoanRequest(req); err != nil {
		return nil, err
	}
	if err := s.AuthorizeCustomer(caller, req.CIF); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByNumber(ctx, req.AccountNumber)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to find loan account", slog.String("accno", req.AccountNumber))
		return nil, err
	}
	if !account.OwnedBy(req.CIF) {
		return nil, apperrors.NewAppError(apperrors.ErrValidation,
			fmt.Sprintf("account %s does not belong to customer %s", req.AccountNumber, req.CIF), nil)
	}

	loan := domain.Loan{
		LoanID:        req.LoanID,
		CIF:           req.CIF,
		AccountNumber: req.AccountNumber,
		Amount:        req.Amount,
		LoanType:      req.LoanType,
		InterestRate:  req.InterestRate,
		TenureMonths:  req.TenureMonths,
		Status:        domain.LoanPending,
		AppliedAt:     s.Now(),
		AppliedBy:     caller.ID,
	}

	err = s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.loanRepo.SaveLoan(ctx, loan); err != nil {
			return err
		}
		return s.auditSvc.Record(ctx, caller.ID, domain.ActionLoanApplied, domain.LoanRef(loan.LoanID))
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to apply for loan", slog.String("loan_id", loan.LoanID))
		return nil, err
	}

	s.LogInfo(ctx, "Loan application created", slog.String("loan_id", loan.LoanID), slog.String("cif", loan.CIF))
	s.publish(ctx, domain.LedgerEvent{
		Type:       domain.EventLoanApplied,
		EntityRef:  domain.LoanRef(loan.LoanID),
		Actor:      caller.ID,
		OccurredAt: loan.AppliedAt,
		Data:       loan,
	})
	return &loan, nil
}

func (s *loanService) ApproveLoan(ctx context.Context, caller domain.Identity, loanID string) (*domain.Loan, error) {
	return s.decide(ctx, caller, loanID, domain.LoanApproved)
}

func (s *loanService) RejectLoan(ctx context.Context, caller domain.Identity, loanID string) (*domain.Loan, error) {
	return s.decide(ctx, caller, loanID, domain.LoanRejected)
}

func (s *loanService) decide(ctx context.Context, caller domain.Identity, loanID string, status domain.LoanStatus) (*domain.Loan, error) {
	if err := s.RequireAdmin(caller); err != nil {
		return nil, err
	}
	if caller.ID == "" {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidApprover, "approver identity is required", nil)
	}

	action, eventType := domain.ActionLoanApproved, domain.EventLoanApproved
	if status == domain.LoanRejected {
		action, eventType = domain.ActionLoanRejected, domain.EventLoanRejected
	}

	var decided domain.Loan
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
		if err != nil {
			return err
		}
		if err := loan.Decide(status, caller.ID, s.Now()); err != nil {
			return err
		}
		// The update is conditional on PENDING, so a concurrent decision loses here.
		if err := s.loanRepo.UpdateLoanDecision(ctx, *loan); err != nil {
			return err
		}
		decided = *loan
		return s.auditSvc.Record(ctx, caller.ID, action, domain.LoanRef(loanID))
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to decide loan", slog.String("loan_id", loanID), slog.String("status", string(status)))
		return nil, err
	}

	s.LogInfo(ctx, "Loan decided", slog.String("loan_id", loanID), slog.String("status", string(status)))
	s.publish(ctx, domain.LedgerEvent{
		Type:       eventType,
		EntityRef:  domain.LoanRef(loanID),
		Actor:      caller.ID,
		OccurredAt: *decided.DecidedAt,
		Data:       decided,
	})
	return &decided, nil
}

func (s *loanService) GetLoan(ctx context.Context, caller domain.Identity, loanID string) (*domain.Loan, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to find loan", slog.String("loan_id", loanID))
		return nil, err
	}
	if err := s.AuthorizeCustomer(caller, loan.CIF); err != nil {
		return nil, err
	}
	return loan, nil
}

// ListLoans lists loans matching filter. Customers are always restricted to their own CIF.
func (s *loanService) ListLoans(ctx context.Context, caller domain.Identity, filter domain.LoanFilter) ([]domain.Loan, error) {
	if !caller.IsStaff() {
		if filter.CIF == "" {
			filter.CIF = caller.ID
		}
		if err := s.AuthorizeCustomer(caller, filter.CIF); err != nil {
			return nil, err
		}
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, apperrors.NewAppError(apperrors.ErrValidation, fmt.Sprintf("unknown loan status '%s'", filter.Status), nil)
	}

	loans, err := s.loanRepo.ListLoans(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list loans")
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return loans, nil
}
