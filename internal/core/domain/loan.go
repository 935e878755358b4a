package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/shopspring/decimal"
)

// LoanType is the loan product.
type LoanType string

const (
	HomeLoan     LoanType = "HOME"
	AutoLoan     LoanType = "AUTO"
	PersonalLoan LoanType = "PERSONAL"
)

// IsValid reports whether t is a known loan type.
func (t LoanType) IsValid() bool {
	switch t {
	case HomeLoan, AutoLoan, PersonalLoan:
		return true
	}
	return false
}

// LoanStatus is the state of a loan application.
type LoanStatus string

const (
	LoanPending  LoanStatus = "PENDING"
	LoanApproved LoanStatus = "APPROVED"
	LoanRejected LoanStatus = "REJECTED"
)

// IsValid reports whether s is a known status.
func (s LoanStatus) IsValid() bool {
	switch s {
	case LoanPending, LoanApproved, LoanRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible from s.
func (s LoanStatus) IsTerminal() bool {
	return s == LoanApproved || s == LoanRejected
}

// Loan is a loan application and its decision.
type Loan struct {
	LoanID        string          `json:"loanID"` // Caller supplied, unique
	CIF           string          `json:"cif"`
	AccountNumber string          `json:"accno"`
	Amount        decimal.Decimal `json:"amount"`
	LoanType      LoanType        `json:"loanType"`
	InterestRate  decimal.Decimal `json:"interestRate"`
	TenureMonths  int             `json:"tenureMonths"`
	Status        LoanStatus      `json:"status"`
	AppliedAt     time.Time       `json:"appliedAt"`
	AppliedBy     string          `json:"appliedBy"`
	DecidedAt     *time.Time      `json:"decidedAt"` // Set on transition out of PENDING
	DecidedBy     *string         `json:"decidedBy"` // Approver (or rejecter) identity
}

// Decide moves a pending loan to a terminal status.
func (l *Loan) Decide(status LoanStatus, decidedBy string, at time.Time) error {
	if !status.IsTerminal() {
		return fmt.Errorf("%w: %s is not a decision", apperrors.ErrValidation, status)
	}
	if decidedBy == "" {
		return fmt.Errorf("%w: approver identity is required", apperrors.ErrInvalidApprover)
	}
	if l.Status != LoanPending {
		return fmt.Errorf("%w: loan %s is %s", apperrors.ErrAlreadyDecided, l.LoanID, l.Status)
	}
	l.Status = status
	l.DecidedAt = &at
	l.DecidedBy = &decidedBy
	return nil
}

// LoanFilter narrows ListLoans. Empty fields match everything.
type LoanFilter struct {
	CIF           string
	AccountNumber string
	Status        LoanStatus
}

// Matches reports whether l satisfies the filter.
func (f LoanFilter) Matches(l Loan) bool {
	if f.CIF != "" && l.CIF != f.CIF {
		return false
	}
	if f.AccountNumber != "" && l.AccountNumber != f.AccountNumber {
		return false
	}
	if f.Status != "" && l.Status != f.Status {
		return false
	}
	return true
}
