package dto

import (
	"time"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenAccountRequest defines the data needed to open a new account.
type OpenAccountRequest struct {
	AccountNumber string             `json:"accno" binding:"required,accno"`
	CIF           string             `json:"cif" binding:"required,cif"`
	AccountType   domain.AccountType `json:"accountType" binding:"required,oneof=SAVINGS CURRENT RECURRING"`
	InterestRate  decimal.Decimal    `json:"interestRate"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountNumber string             `json:"accno"`
	CIF           string             `json:"cif"`
	AccountType   domain.AccountType `json:"accountType"`
	Balance       decimal.Decimal    `json:"balance"`
	InterestRate  decimal.Decimal    `json:"interestRate"`
	OpenedAt      time.Time          `json:"openedAt"`
	OpenedBy      string             `json:"openedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountNumber: acc.AccountNumber,
		CIF:           acc.CIF,
		AccountType:   acc.AccountType,
		Balance:       acc.Balance,
		InterestRate:  acc.InterestRate,
		OpenedAt:      acc.OpenedAt,
		OpenedBy:      acc.OpenedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	CIF    string `form:"cif"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// ListAccountsResponse wraps a list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
