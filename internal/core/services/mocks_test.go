package services_test

import (
	"context"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionManager ---
// Runs fn inline; the mock records that a unit of work was opened.
type MockTxManager struct {
	mock.Mock
}

var _ portsrepo.TransactionManager = (*MockTxManager)(nil)

func (m *MockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, accno string) (*domain.Account, error) {
	args := m.Called(ctx, accno)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByCustomer(ctx context.Context, cif string) ([]domain.Account, error) {
	args := m.Called(ctx, cif)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) LockAccounts(ctx context.Context, accnos []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accnos)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyDelta(ctx context.Context, accno string, delta decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, accno, delta)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

var _ portsrepo.AuditRepositoryFacade = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) SaveAuditEntry(ctx context.Context, entry *domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListAuditEntries(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetSummary(ctx context.Context) (*domain.LedgerSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSummary), args.Error(1)
}

func (m *MockReportingRepository) GetAccountsAboveBalance(ctx context.Context, threshold decimal.Decimal) ([]domain.Account, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockReportingRepository) GetDepositTotals(ctx context.Context) ([]domain.AccountDepositTotal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountDepositTotal), args.Error(1)
}

func (m *MockReportingRepository) GetBalanceMismatches(ctx context.Context) ([]domain.BalanceMismatch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceMismatch), args.Error(1)
}
