package services

import (
	"context"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/SscSPs/bank_backoffice/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccount retrieves an account. Customers may only read their own accounts.
	GetAccount(ctx context.Context, caller domain.Identity, accno string) (*domain.Account, error)

	// ListAccountsByCustomer retrieves all accounts of a customer.
	ListAccountsByCustomer(ctx context.Context, caller domain.Identity, cif string) ([]domain.Account, error)

	// ListAllAccounts retrieves a page of all accounts. Staff only.
	ListAllAccounts(ctx context.Context, caller domain.Identity, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// OpenAccount creates a zero-balance account. Staff only.
	OpenAccount(ctx context.Context, caller domain.Identity, req dto.OpenAccountRequest) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
