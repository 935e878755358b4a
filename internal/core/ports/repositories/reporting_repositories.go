package repositories

import (
	"context"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines read-only aggregate queries over the ledger
type ReportingRepository interface {
	// GetSummary returns account count, distinct customer count and total balance.
	GetSummary(ctx context.Context) (*domain.LedgerSummary, error)

	// GetAccountsAboveBalance returns accounts whose balance is strictly greater than threshold.
	GetAccountsAboveBalance(ctx context.Context, threshold decimal.Decimal) ([]domain.Account, error)

	// GetDepositTotals returns the sum of DEPOSIT entries per account.
	GetDepositTotals(ctx context.Context) ([]domain.AccountDepositTotal, error)

	// GetBalanceMismatches recomputes every account from its journal and
	// returns those whose stored balance differs.
	GetBalanceMismatches(ctx context.Context) ([]domain.BalanceMismatch, error)
}
