package services_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice/internal/core/services"
	"github.com/SscSPs/bank_backoffice/internal/dto"
	"github.com/SscSPs/bank_backoffice/internal/platform/config"
	"github.com/SscSPs/bank_backoffice/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	admin    = domain.Identity{ID: "ADMIN1", Role: domain.RoleAdmin}
	employee = domain.Identity{ID: "PF1001", Role: domain.RoleEmployee}
)

func customer(cif string) domain.Identity {
	return domain.Identity{ID: cif, Role: domain.RoleCustomer}
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.LedgerEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.LedgerEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// switchableAudit writes through to the store until failing is set.
type switchableAudit struct {
	*memory.Store
	failing atomic.Bool
}

func (a *switchableAudit) SaveAuditEntry(ctx context.Context, entry *domain.AuditEntry) error {
	if a.failing.Load() {
		return apperrors.NewAppError(apperrors.ErrStoreUnavailable, "audit log unavailable", nil)
	}
	return a.Store.SaveAuditEntry(ctx, entry)
}

type harness struct {
	store     *memory.Store
	audit     *switchableAudit
	svc       *portssvc.ServiceContainer
	publisher *recordingPublisher
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := memory.NewStore(2 * time.Second)
	audit := &switchableAudit{Store: store}
	repos := memory.NewRepositoryProvider(store)
	repos.AuditRepo = audit

	pub := &recordingPublisher{}
	cfg := &config.Config{HighValueThreshold: decimal.NewFromInt(50000)}
	return &harness{
		store:     store,
		audit:     audit,
		svc:       services.NewServiceContainer(cfg, repos, services.WithPublisher(pub)),
		publisher: pub,
	}
}

func (h *harness) open(t *testing.T, accno, cif string) {
	t.Helper()
	_, err := h.svc.Account.OpenAccount(context.Background(), employee, dto.OpenAccountRequest{
		AccountNumber: accno,
		CIF:           cif,
		AccountType:   domain.Savings,
		InterestRate:  decimal.RequireFromString("3.5"),
	})
	require.NoError(t, err)
}

func (h *harness) deposit(t *testing.T, accno string, amount string) {
	t.Helper()
	_, err := h.svc.Ledger.PostDeposit(context.Background(), employee, accno, decimal.RequireFromString(amount), nil)
	require.NoError(t, err)
}

func (h *harness) balance(t *testing.T, accno string) decimal.Decimal {
	t.Helper()
	acc, err := h.svc.Account.GetAccount(context.Background(), admin, accno)
	require.NoError(t, err)
	return acc.Balance
}

func (h *harness) auditCount(t *testing.T) int {
	t.Helper()
	entries, err := h.svc.Audit.ListAuditLog(context.Background(), admin, 10000)
	require.NoError(t, err)
	return len(entries)
}

func (h *harness) entries(t *testing.T, accno string) []domain.Transaction {
	t.Helper()
	txns, _, err := h.svc.Ledger.ListTransactionsByAccount(context.Background(), admin, accno, 500, nil)
	require.NoError(t, err)
	return txns
}
