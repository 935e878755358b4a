package services

import (
	"context"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingService defines read-only views over the ledger
type ReportingService interface {
	// Summary returns the dashboard totals. Staff only.
	Summary(ctx context.Context, caller domain.Identity) (*domain.LedgerSummary, error)

	// HighValueAccounts returns accounts above threshold; a nil threshold uses the configured default.
	HighValueAccounts(ctx context.Context, caller domain.Identity, threshold *decimal.Decimal) ([]domain.Account, decimal.Decimal, error)

	// DepositTotals returns the total deposits per account. Staff only.
	DepositTotals(ctx context.Context, caller domain.Identity) ([]domain.AccountDepositTotal, error)

	// Reconcile returns accounts whose stored balance differs from their journal. Staff only.
	Reconcile(ctx context.Context, caller domain.Identity) ([]domain.BalanceMismatch, error)

	// CalculateInterest is the stateless simple interest estimator. Open to every caller.
	CalculateInterest(ctx context.Context, principal, ratePercent decimal.Decimal, months int) (decimal.Decimal, error)
}
