package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo      portsrepo.ReportingRepository
	highValueThreshold decimal.Decimal
}

// NewReportingService creates a new reporting service. highValueThreshold is
// used when HighValueAccounts is called without an explicit threshold.
func NewReportingService(repo portsrepo.ReportingRepository, highValueThreshold decimal.Decimal, options ...Option) portssvc.ReportingService {
	return &reportingService{
		BaseService:        newBaseService(options...),
		reportingRepo:      repo,
		highValueThreshold: highValueThreshold,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// Summary returns the dashboard totals
func (s *reportingService) Summary(ctx context.Context, caller domain.Identity) (*domain.LedgerSummary, error) {
	if err := s.RequireStaff(caller); err != nil {
		return nil, err
	}

	summary, err := s.reportingRepo.GetSummary(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve ledger summary")
		return nil, fmt.Errorf("failed to retrieve ledger summary: %w", err)
	}

	s.LogInfo(ctx, "Ledger summary generated successfully",
		slog.Int("accounts", summary.AccountCount),
		slog.Int("customers", summary.CustomerCount))
	return summary, nil
}

// HighValueAccounts returns the accounts above threshold and the threshold that was applied
func (s *reportingService) HighValueAccounts(ctx context.Context, caller domain.Identity, threshold *decimal.Decimal) ([]domain.Account, decimal.Decimal, error) {
	if err := s.RequireStaff(caller); err != nil {
		return nil, decimal.Zero, err
	}

	applied := s.highValueThreshold
	if threshold != nil {
		if threshold.IsNegative() {
			return nil, decimal.Zero, apperrors.NewAppError(apperrors.ErrValidation, "threshold must not be negative", nil)
		}
		applied = *threshold
	}

	accounts, err := s.reportingRepo.GetAccountsAboveBalance(ctx, applied)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve high value accounts", slog.String("threshold", applied.String()))
		return nil, decimal.Zero, fmt.Errorf("failed to retrieve high value accounts: %w", err)
	}
	return accounts, applied, nil
}

// DepositTotals returns the sum of deposits per account
func (s *reportingService) DepositTotals(ctx context.Context, caller domain.Identity) ([]domain.AccountDepositTotal, error) {
	if err := s.RequireStaff(caller); err != nil {
		return nil, err
	}

	rows, err := s.reportingRepo.GetDepositTotals(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve deposit totals")
		return nil, fmt.Errorf("failed to retrieve deposit totals: %w", err)
	}
	return rows, nil
}

// Reconcile recomputes every balance from the journal and reports the accounts that disagree
func (s *reportingService) Reconcile(ctx context.Context, caller domain.Identity) ([]domain.BalanceMismatch, error) {
	if err := s.RequireStaff(caller); err != nil {
		return nil, err
	}

	mismatches, err := s.reportingRepo.GetBalanceMismatches(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to reconcile balances")
		return nil, fmt.Errorf("failed to reconcile balances: %w", err)
	}

	if len(mismatches) > 0 {
		s.GetLogger(ctx).Warn("Balance reconciliation found mismatches", slog.Int("count", len(mismatches)))
	} else {
		s.LogDebug(ctx, "Balance reconciliation found no mismatches")
	}
	return mismatches, nil
}

// CalculateInterest estimates simple interest. It reads no state.
func (s *reportingService) CalculateInterest(ctx context.Context, principal, ratePercent decimal.Decimal, months int) (decimal.Decimal, error) {
	return domain.CalculateInterest(principal, ratePercent, months)
}
