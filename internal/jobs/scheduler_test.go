package jobs

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockReporting struct {
	mock.Mock
}

func (m *mockReporting) Summary(ctx context.Context, caller domain.Identity) (*domain.LedgerSummary, error) {
	args := m.Called(ctx, caller)
	return nil, args.Error(1)
}

func (m *mockReporting) HighValueAccounts(ctx context.Context, caller domain.Identity, threshold *decimal.Decimal) ([]domain.Account, decimal.Decimal, error) {
	args := m.Called(ctx, caller, threshold)
	return nil, decimal.Zero, args.Error(2)
}

func (m *mockReporting) DepositTotals(ctx context.Context, caller domain.Identity) ([]domain.AccountDepositTotal, error) {
	args := m.Called(ctx, caller)
	return nil, args.Error(1)
}

func (m *mockReporting) Reconcile(ctx context.Context, caller domain.Identity) ([]domain.BalanceMismatch, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceMismatch), args.Error(1)
}

func (m *mockReporting) CalculateInterest(ctx context.Context, principal, ratePercent decimal.Decimal, months int) (decimal.Decimal, error) {
	args := m.Called(ctx, principal, ratePercent, months)
	return decimal.Zero, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_ReconcileRunsAsSystem(t *testing.T) {
	reporting := new(mockReporting)
	reporting.On("Reconcile", mock.Anything, domain.SystemIdentity()).
		Return([]domain.BalanceMismatch{{AccountNumber: "A001"}}, nil).Once()

	s := NewScheduler(reporting, discardLogger(), "@every 1h")
	s.Reconcile()

	reporting.AssertExpectations(t)
}

func TestScheduler_ReconcileErrorIsLogged(t *testing.T) {
	reporting := new(mockReporting)
	reporting.On("Reconcile", mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()

	s := NewScheduler(reporting, discardLogger(), "@every 1h")
	assert.NotPanics(t, s.Reconcile)
	reporting.AssertExpectations(t)
}

func TestScheduler_Start(t *testing.T) {
	reporting := new(mockReporting)

	disabled := NewScheduler(reporting, discardLogger(), "")
	assert.NoError(t, disabled.Start())

	invalid := NewScheduler(reporting, discardLogger(), "not a schedule")
	assert.Error(t, invalid.Start())

	valid := NewScheduler(reporting, discardLogger(), "@every 1h")
	assert.NoError(t, valid.Start())
	<-valid.Stop().Done()

	reporting.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything)
}
