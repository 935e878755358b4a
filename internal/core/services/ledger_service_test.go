package services_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/SscSPs/bank_backoffice/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostDeposit_RejectsInvalidAmounts(t *testing.T) {
	h := newHarness(t)
	h.open(t, "A001", "C1")
	before := h.auditCount(t)

	for _, amount := range []string{"0", "-5", "10.001", "100000000000000000000"} {
		t.Run(amount, func(t *testing.T) {
			_, err := h.svc.Ledger.PostDeposit(context.Background(), employee, "A001", decimal.RequireFromString(amount), nil)
			assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
		})
	}

	assert.Empty(t, h.entries(t, "A001"), "no journal entry for a rejected amount")
	assert.Equal(t, before, h.auditCount(t), "no audit entry for a rejected amount")
	assert.True(t, h.balance(t, "A001").IsZero())
}

func TestPostWithdrawal_OverdraftLeavesBalanceUnchanged(t *testing.T) {
	h := newHarness(t)
	h.open(t, "A001", "C1")
	h.deposit(t, "A001", "100.00")
	before := h.auditCount(t)

	_, err := h.svc.Ledger.PostWithdrawal(context.Background(), employee, "A001", decimal.RequireFromString("100.01"), nil)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	assert.Equal(t, "100", h.balance(t, "A001").String())
	assert.Len(t, h.entries(t, "A001"), 1)
	assert.Equal(t, before, h.auditCount(t))
}

func TestPosting_UnknownAccount(t *testing.T) {
	h := newHarness(t)
	_, err := h.svc.Ledger.PostDeposit(context.Background(), employee, "NOPE", decimal.NewFromInt(1), nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPosting_MakerChecker(t *testing.T) {
	h := newHarness(t)
	h.open(t, "A001", "C1")
	ctx := context.Background()

	checker := "PF2002"
	staffTxn, err := h.svc.Ledger.PostDeposit(ctx, employee, "A001", decimal.NewFromInt(10), &checker)
	require.NoError(t, err)
	require.NotNil(t, staffTxn.MakerID)
	assert.Equal(t, employee.ID, *staffTxn.MakerID)
	require.NotNil(t, staffTxn.CheckerID)
	assert.Equal(t, checker, *staffTxn.CheckerID)

	selfTxn, err := h.svc.Ledger.PostWithdrawal(ctx, customer("C1"), "A001", decimal.NewFromInt(5), &checker)
	require.NoError(t, err)
	assert.Nil(t, selfTxn.MakerID)
	assert.Nil(t, selfTxn.CheckerID)
}

func TestPosting_BoundsMatchTheSchema(t *testing.T) {
	h := newHarness(t)
	h.open(t, "A001", "C1")
	ctx := context.Background()
	before := h.auditCount(t)

	longChecker := strings.Repeat("P", domain.MaxIdentifierLength+1)
	_, err := h.svc.Ledger.PostDeposit(ctx, employee, "A001", decimal.NewFromInt(10), &longChecker)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = h.svc.Ledger.PostDeposit(ctx, employee, "A001", domain.MaxAmount, nil)
	require.NoError(t, err)
	_, err = h.svc.Ledger.PostDeposit(ctx, employee, "A001", decimal.RequireFromString("0.01"), nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount, "balance may not outgrow the ledger's precision")

	assert.True(t, domain.MaxAmount.Equal(h.balance(t, "A001")))
	assert.Len(t, h.entries(t, "A001"), 1)
	assert.Equal(t, before+1, h.auditCount(t))
}

func TestPosting_CustomerCannotTouchOtherAccounts(t *testing.T) {
	h := newHarness(t)
	h.open(t, "A001", "C1")
	ctx := context.Background()

	_, err := h.svc.Ledger.PostDeposit(ctx, customer("C2"), "A001", decimal.NewFromInt(10), nil)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, _, err = h.svc.Ledger.ListTransactionsByAccount(ctx, customer("C2"), "A001", 10, nil)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = h.svc.Ledger.ListRecentTransactions(ctx, customer("C1"), 10)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestBalanceMatchesJournal(t *testing.T) {
	h := newHarness(t)
	h.open(t, "A001", "C1")
	h.open(t, "A002", "C2")
	ctx := context.Background()

	h.deposit(t, "A001", "1000.50")
	h.deposit(t, "A002", "20")
	_, err := h.svc.Ledger.PostWithdrawal(ctx, employee, "A001", decimal.RequireFromString("200.25"), nil)
	require.NoError(t, err)
	_, err = h.svc.Transfer.Transfer(ctx, customer("C1"), "A001", "A002", decimal.RequireFromString("300"))
	require.NoError(t, err)
	_, err = h.svc.Ledger.PostWithdrawal(ctx, employee, "A002", decimal.RequireFromString("999"), nil)
	require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	for _, accno := range []string{"A001", "A002"} {
		assert.True(t, h.balance(t, accno).Equal(accounting.JournalBalance(h.entries(t, accno))), accno)
	}
	assert.Equal(t, "500.25", h.balance(t, "A001").String())
	assert.Equal(t, "320", h.balance(t, "A002").String())

	mismatches, err := h.svc.Reporting.Reconcile(ctx, employee)
	require.NoError(t, err)
	assert.Empty(t, mismatches)
}

func TestConcurrentPostings_ConserveMoney(t *testing.T) {
	h := newHarness(t)
	h.open(t, "A001", "C1")
	h.deposit(t, "A001", "500")

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			var err error
			if i%2 == 0 {
				_, err = h.svc.Ledger.PostDeposit(context.Background(), employee, "A001", decimal.NewFromInt(10), nil)
			} else {
				_, err = h.svc.Ledger.PostWithdrawal(context.Background(), employee, "A001", decimal.NewFromInt(10), nil)
			}
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, "500", h.balance(t, "A001").String())
	txns := h.entries(t, "A001")
	assert.Len(t, txns, 41)
	assert.True(t, accounting.JournalBalance(txns).Equal(h.balance(t, "A001")))

	for i := 1; i < len(txns); i++ {
		assert.False(t, txns[i].Timestamp.After(txns[i-1].Timestamp), "entries must be newest first")
	}
}

func TestReverseTransaction(t *testing.T) {
	h := newHarness(t)
	h.open(t, "A001", "C1")
	h.open(t, "A002", "C1")
	ctx := context.Background()

	deposit, err := h.svc.Ledger.PostDeposit(ctx, employee, "A001", decimal.NewFromInt(75), nil)
	require.NoError(t, err)

	_, err = h.svc.Ledger.ReverseTransaction(ctx, customer("C1"), deposit.TransactionID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	reversal, err := h.svc.Ledger.ReverseTransaction(ctx, employee, deposit.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, domain.Withdraw, reversal.Kind)
	require.NotNil(t, reversal.ReversalOf)
	assert.Equal(t, deposit.TransactionID, *reversal.ReversalOf)
	assert.True(t, h.balance(t, "A001").IsZero())

	_, err = h.svc.Ledger.ReverseTransaction(ctx, employee, deposit.TransactionID)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	_, err = h.svc.Ledger.ReverseTransaction(ctx, employee, reversal.TransactionID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	h.deposit(t, "A001", "10")
	_, err = h.svc.Transfer.Transfer(ctx, employee, "A001", "A002", decimal.NewFromInt(10))
	require.NoError(t, err)
	leg := h.entries(t, "A002")[0]
	require.True(t, leg.IsTransferLeg())
	_, err = h.svc.Ledger.ReverseTransaction(ctx, employee, leg.TransactionID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = h.svc.Ledger.ReverseTransaction(ctx, employee, "does-not-exist")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReverseTransaction_DepositAlreadySpent(t *testing.T) {
	h := newHarness(t)
	h.open(t, "A001", "C1")
	ctx := context.Background()

	deposit, err := h.svc.Ledger.PostDeposit(ctx, employee, "A001", decimal.NewFromInt(50), nil)
	require.NoError(t, err)
	_, err = h.svc.Ledger.PostWithdrawal(ctx, employee, "A001", decimal.NewFromInt(40), nil)
	require.NoError(t, err)

	_, err = h.svc.Ledger.ReverseTransaction(ctx, employee, deposit.TransactionID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.Equal(t, "10", h.balance(t, "A001").String())
}

func TestAuditCountsOnlySuccessfulMutations(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.open(t, "A001", "C1")
	assert.Equal(t, 1, h.auditCount(t))

	h.deposit(t, "A001", "10")
	assert.Equal(t, 2, h.auditCount(t))

	_, err := h.svc.Ledger.PostWithdrawal(ctx, employee, "A001", decimal.NewFromInt(11), nil)
	require.Error(t, err)
	assert.Equal(t, 2, h.auditCount(t))

	_, err = h.svc.Account.OpenAccount(ctx, employee, openRequest("A001", "C9"))
	require.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.Equal(t, 2, h.auditCount(t))

	entries, err := h.svc.Audit.ListAuditLog(ctx, admin, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActionDepositPosted, entries[0].Action)
	assert.Equal(t, employee.ID, entries[0].Actor)

	_, err = h.svc.Audit.ListAuditLog(ctx, employee, 10)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	assert.Equal(t, []string{domain.EventAccountOpened, domain.EventDepositPosted}, h.publisher.types())
}
