package dto

import (
	"time"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ApplyLoanRequest defines the data needed to apply for a loan.
type ApplyLoanRequest struct {
	LoanID        string          `json:"loanID" binding:"required,max=20"`
	CIF           string          `json:"cif" binding:"required,cif"`
	AccountNumber string          `json:"accno" binding:"required,accno"`
	Amount        decimal.Decimal `json:"amount"`
	LoanType      domain.LoanType `json:"loanType" binding:"required,oneof=HOME AUTO PERSONAL"`
	InterestRate  decimal.Decimal `json:"interestRate"`
	TenureMonths  int             `json:"tenureMonths"`
}

// LoanResponse defines the data returned for a loan.
type LoanResponse struct {
	LoanID        string            `json:"loanID"`
	CIF           string            `json:"cif"`
	AccountNumber string            `json:"accno"`
	Amount        decimal.Decimal   `json:"amount"`
	LoanType      domain.LoanType   `json:"loanType"`
	InterestRate  decimal.Decimal   `json:"interestRate"`
	TenureMonths  int               `json:"tenureMonths"`
	Status        domain.LoanStatus `json:"status"`
	AppliedAt     time.Time         `json:"appliedAt"`
	DecidedAt     *time.Time        `json:"decidedAt,omitempty"`
	DecidedBy     *string           `json:"decidedBy,omitempty"`
}

// ToLoanResponse converts a domain.Loan to its DTO.
func ToLoanResponse(l *domain.Loan) LoanResponse {
	return LoanResponse{
		LoanID:        l.LoanID,
		CIF:           l.CIF,
		AccountNumber: l.AccountNumber,
		Amount:        l.Amount,
		LoanType:      l.LoanType,
		InterestRate:  l.InterestRate,
		TenureMonths:  l.TenureMonths,
		Status:        l.Status,
		AppliedAt:     l.AppliedAt,
		DecidedAt:     l.DecidedAt,
		DecidedBy:     l.DecidedBy,
	}
}

// ToListLoanResponse converts loans to DTOs.
func ToListLoanResponse(loans []domain.Loan) []LoanResponse {
	res := make([]LoanResponse, len(loans))
	for i, l := range loans {
		res[i] = ToLoanResponse(&l)
	}
	return res
}

// ListLoansParams defines the optional filters for listing loans.
type ListLoansParams struct {
	CIF           string            `form:"cif"`
	AccountNumber string            `form:"accno"`
	Status        domain.LoanStatus `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
}

// InterestQuery is the query string of the interest calculator.
type InterestQuery struct {
	Principal decimal.Decimal `form:"principal"`
	Rate      decimal.Decimal `form:"rate"`
	Months    int             `form:"months"`
}

// InterestResponse is the result of the interest calculator.
type InterestResponse struct {
	Principal decimal.Decimal `json:"principal"`
	Rate      decimal.Decimal `json:"rate"`
	Months    int             `json:"months"`
	Interest  decimal.Decimal `json:"interest"`
}
