package repositories

import (
	"context"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByNumber retrieves a specific account by its account number.
	FindAccountByNumber(ctx context.Context, accno string) (*domain.Account, error)

	// ListAccountsByCustomer retrieves all accounts owned by a customer.
	ListAccountsByCustomer(ctx context.Context, cif string) ([]domain.Account, error)

	// ListAccounts retrieves a paginated list of all accounts ordered by account number.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. Returns ErrDuplicate if the number is taken.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines operations that must run inside a unit of work
type AccountTransactionSupport interface {
	// LockAccounts acquires exclusive locks on the given accounts in ascending
	// account-number order and returns their current state. It fails with
	// ErrNotFound for an unknown account and ErrBusy when the lock wait exceeds
	// the caller's deadline or the configured lock timeout.
	LockAccounts(ctx context.Context, accnos []string) (map[string]domain.Account, error)

	// ApplyDelta adds delta to the account balance and returns the new balance.
	// The sufficiency check and the update are a single step: it fails with
	// ErrInsufficientFunds without changing anything if the result would be negative.
	ApplyDelta(ctx context.Context, accno string, delta decimal.Decimal) (decimal.Decimal, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
