package services

import (
	"context"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/SscSPs/bank_backoffice/internal/dto"
)

// LoanWriterSvc runs the loan state machine.
type LoanWriterSvc interface {
	// ApplyLoan creates a PENDING application.
	ApplyLoan(ctx context.Context, caller domain.Identity, req dto.ApplyLoanRequest) (*domain.Loan, error)

	// ApproveLoan moves a PENDING loan to APPROVED. Admin only.
	ApproveLoan(ctx context.Context, caller domain.Identity, loanID string) (*domain.Loan, error)

	// RejectLoan moves a PENDING loan to REJECTED. Admin only.
	RejectLoan(ctx context.Context, caller domain.Identity, loanID string) (*domain.Loan, error)
}

// LoanReaderSvc reads loan applications.
type LoanReaderSvc interface {
	GetLoan(ctx context.Context, caller domain.Identity, loanID string) (*domain.Loan, error)
	ListLoans(ctx context.Context, caller domain.Identity, filter domain.LoanFilter) ([]domain.Loan, error)
}

// LoanSvcFacade combines all loan-related service interfaces
type LoanSvcFacade interface {
	LoanWriterSvc
	LoanReaderSvc
}

// AuditSvc records and lists audit entries.
type AuditSvc interface {
	// Record appends an entry in the caller's unit of work. A failure must abort that unit.
	Record(ctx context.Context, actor string, action domain.AuditAction, entityRef string) error

	// ListAuditLog returns the newest entries first. Admin only.
	ListAuditLog(ctx context.Context, caller domain.Identity, limit int) ([]domain.AuditEntry, error)
}
