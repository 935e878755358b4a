package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/SscSPs/bank_backoffice/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAccount(t *testing.T, s *memory.Store, accno, cif string) {
	t.Helper()
	require.NoError(t, s.SaveAccount(context.Background(), domain.Account{
		AccountNumber: accno,
		CIF:           cif,
		AccountType:   domain.Savings,
		Balance:       decimal.Zero,
		InterestRate:  decimal.Zero,
		OpenedAt:      time.Now().UTC(),
		OpenedBy:      "E1",
	}))
}

func balanceOf(t *testing.T, s *memory.Store, accno string) decimal.Decimal {
	t.Helper()
	acc, err := s.FindAccountByNumber(context.Background(), accno)
	require.NoError(t, err)
	return acc.Balance
}

func TestSaveAccount_Duplicate(t *testing.T) {
	s := memory.NewStore(time.Second)
	openAccount(t, s, "A001", "C1")

	err := s.SaveAccount(context.Background(), domain.Account{AccountNumber: "A001", CIF: "C2"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestWithTransaction_WritesInvisibleUntilCommit(t *testing.T) {
	s := memory.NewStore(time.Second)
	openAccount(t, s, "A001", "C1")
	ctx := context.Background()

	err := s.WithTransaction(ctx, func(txCtx context.Context) error {
		_, err := s.ApplyDelta(txCtx, "A001", decimal.NewFromInt(100))
		require.NoError(t, err)

		inside, err := s.FindAccountByNumber(txCtx, "A001")
		require.NoError(t, err)
		assert.True(t, inside.Balance.Equal(decimal.NewFromInt(100)))

		outside, err := s.FindAccountByNumber(ctx, "A001")
		require.NoError(t, err)
		assert.True(t, outside.Balance.IsZero(), "uncommitted balance leaked")
		return nil
	})
	require.NoError(t, err)
	assert.True(t, balanceOf(t, s, "A001").Equal(decimal.NewFromInt(100)))
}

func TestWithTransaction_ErrorDiscardsEveryWrite(t *testing.T) {
	s := memory.NewStore(time.Second)
	openAccount(t, s, "A001", "C1")
	boom := errors.New("boom")

	err := s.WithTransaction(context.Background(), func(txCtx context.Context) error {
		_, err := s.ApplyDelta(txCtx, "A001", decimal.NewFromInt(50))
		require.NoError(t, err)
		require.NoError(t, s.AppendTransaction(txCtx, &domain.Transaction{
			AccountNumber: "A001", Kind: domain.Deposit, Amount: decimal.NewFromInt(50), Timestamp: time.Now(),
		}))
		require.NoError(t, s.SaveAuditEntry(txCtx, &domain.AuditEntry{Actor: "E1", Action: domain.ActionDepositPosted}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	assert.True(t, balanceOf(t, s, "A001").IsZero())
	txns, _, err := s.ListTransactionsByAccount(context.Background(), "A001", 10, nil)
	require.NoError(t, err)
	assert.Empty(t, txns)
	audit, err := s.ListAuditEntries(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, audit)
}

func TestApplyDelta(t *testing.T) {
	s := memory.NewStore(time.Second)
	openAccount(t, s, "A001", "C1")
	ctx := context.Background()

	bal, err := s.ApplyDelta(ctx, "A001", decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.Equal(t, "500", bal.String())

	_, err = s.ApplyDelta(ctx, "A001", decimal.NewFromInt(-600))
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.Equal(t, "500", balanceOf(t, s, "A001").String())

	_, err = s.ApplyDelta(ctx, "NOPE", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestApplyDelta_ConcurrentDepositsAreNotLost(t *testing.T) {
	s := memory.NewStore(5 * time.Second)
	openAccount(t, s, "A001", "C1")

	var wg sync.WaitGroup
	for n := 0; n < 100; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.ApplyDelta(context.Background(), "A001", decimal.NewFromInt(1))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, "100", balanceOf(t, s, "A001").String())
}

func TestLockAccounts(t *testing.T) {
	t.Run("requires a unit of work", func(t *testing.T) {
		s := memory.NewStore(time.Second)
		openAccount(t, s, "A001", "C1")
		_, err := s.LockAccounts(context.Background(), []string{"A001"})
		assert.Error(t, err)
	})

	t.Run("unknown account", func(t *testing.T) {
		s := memory.NewStore(time.Second)
		err := s.WithTransaction(context.Background(), func(txCtx context.Context) error {
			_, err := s.LockAccounts(txCtx, []string{"NOPE"})
			return err
		})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("lock wait times out as busy", func(t *testing.T) {
		s := memory.NewStore(50 * time.Millisecond)
		openAccount(t, s, "A001", "C1")

		locked := make(chan struct{})
		release := make(chan struct{})
		go func() {
			_ = s.WithTransaction(context.Background(), func(txCtx context.Context) error {
				_, err := s.LockAccounts(txCtx, []string{"A001"})
				close(locked)
				<-release
				return err
			})
		}()
		<-locked
		defer close(release)

		err := s.WithTransaction(context.Background(), func(txCtx context.Context) error {
			_, err := s.LockAccounts(txCtx, []string{"A001"})
			return err
		})
		assert.ErrorIs(t, err, apperrors.ErrBusy)
	})

	t.Run("cancelled context is busy", func(t *testing.T) {
		s := memory.NewStore(0)
		openAccount(t, s, "A001", "C1")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := s.WithTransaction(ctx, func(txCtx context.Context) error {
			_, err := s.LockAccounts(txCtx, []string{"A001"})
			return err
		})
		assert.ErrorIs(t, err, apperrors.ErrBusy)
	})

	t.Run("opposite orders do not deadlock", func(t *testing.T) {
		s := memory.NewStore(2 * time.Second)
		openAccount(t, s, "A001", "C1")
		openAccount(t, s, "A002", "C2")

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				pair := []string{"A001", "A002"}
				if i%2 == 1 {
					pair = []string{"A002", "A001"}
				}
				err := s.WithTransaction(context.Background(), func(txCtx context.Context) error {
					_, err := s.LockAccounts(txCtx, pair)
					return err
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
	})
}

func TestAppendTransaction_SingleReversal(t *testing.T) {
	s := memory.NewStore(time.Second)
	openAccount(t, s, "A001", "C1")
	ctx := context.Background()

	original := &domain.Transaction{AccountNumber: "A001", Kind: domain.Deposit, Amount: decimal.NewFromInt(10), Timestamp: time.Now()}
	require.NoError(t, s.AppendTransaction(ctx, original))
	require.NotEmpty(t, original.TransactionID)

	reversal := func() *domain.Transaction {
		return &domain.Transaction{
			AccountNumber: "A001", Kind: domain.Withdraw, Amount: decimal.NewFromInt(10),
			Timestamp: time.Now(), ReversalOf: &original.TransactionID,
		}
	}
	require.NoError(t, s.AppendTransaction(ctx, reversal()))
	assert.ErrorIs(t, s.AppendTransaction(ctx, reversal()), apperrors.ErrDuplicate)
}

func TestListTransactionsByAccount_Pagination(t *testing.T) {
	s := memory.NewStore(time.Second)
	openAccount(t, s, "A001", "C1")
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.AppendTransaction(ctx, &domain.Transaction{
			AccountNumber: "A001", Kind: domain.Deposit, Amount: decimal.NewFromInt(int64(i + 1)),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	first, next, err := s.ListTransactionsByAccount(ctx, "A001", 2, nil)
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.NotNil(t, next)
	assert.Equal(t, "5", first[0].Amount.String())
	assert.Equal(t, "4", first[1].Amount.String())

	second, next, err := s.ListTransactionsByAccount(ctx, "A001", 2, next)
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, "3", second[0].Amount.String())

	third, next, err := s.ListTransactionsByAccount(ctx, "A001", 2, next)
	require.NoError(t, err)
	require.Len(t, third, 1)
	assert.Nil(t, next)

	bad := "not-a-token"
	_, _, err = s.ListTransactionsByAccount(ctx, "A001", 2, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	latest, err := s.LatestEntryTime(ctx, "A001")
	require.NoError(t, err)
	assert.True(t, latest.Equal(base.Add(4*time.Minute)))
}

func TestUpdateLoanDecision_OnlyOneConcurrentDecisionWins(t *testing.T) {
	s := memory.NewStore(time.Second)
	openAccount(t, s, "A001", "C1")
	ctx := context.Background()

	require.NoError(t, s.SaveLoan(ctx, domain.Loan{
		LoanID: "L1", CIF: "C1", AccountNumber: "A001", Amount: decimal.NewFromInt(1000),
		LoanType: domain.HomeLoan, TenureMonths: 12, Status: domain.LoanPending, AppliedAt: time.Now().UTC(),
	}))
	assert.ErrorIs(t, s.SaveLoan(ctx, domain.Loan{LoanID: "L1", AccountNumber: "A001"}), apperrors.ErrDuplicate)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, status := range []domain.LoanStatus{domain.LoanApproved, domain.LoanRejected} {
		i, status := i, status
		wg.Add(1)
		go func() {
			defer wg.Done()
			l, err := s.FindLoanByID(ctx, "L1")
			if err != nil {
				results[i] = err
				return
			}
			if err := l.Decide(status, "ADMIN1", time.Now().UTC()); err != nil {
				results[i] = err
				return
			}
			results[i] = s.UpdateLoanDecision(ctx, *l)
		}()
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, apperrors.ErrAlreadyDecided)
		}
	}
	assert.Equal(t, 1, wins)

	final, err := s.FindLoanByID(ctx, "L1")
	require.NoError(t, err)
	assert.True(t, final.Status.IsTerminal())
}

func TestReports(t *testing.T) {
	s := memory.NewStore(time.Second)
	openAccount(t, s, "A001", "C1")
	openAccount(t, s, "A002", "C1")
	openAccount(t, s, "A003", "C2")
	ctx := context.Background()

	post := func(accno string, kind domain.TransactionKind, amount int64) {
		err := s.WithTransaction(ctx, func(txCtx context.Context) error {
			if _, err := s.ApplyDelta(txCtx, accno, kind.Signed(decimal.NewFromInt(amount))); err != nil {
				return err
			}
			return s.AppendTransaction(txCtx, &domain.Transaction{
				AccountNumber: accno, Kind: kind, Amount: decimal.NewFromInt(amount), Timestamp: time.Now(),
			})
		})
		require.NoError(t, err)
	}
	post("A001", domain.Deposit, 60000)
	post("A001", domain.Withdraw, 1000)
	post("A002", domain.Deposit, 200)

	summary, err := s.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.AccountCount)
	assert.Equal(t, 2, summary.CustomerCount)
	assert.Equal(t, "59200", summary.TotalBalance.String())

	high, err := s.GetAccountsAboveBalance(ctx, decimal.NewFromInt(50000))
	require.NoError(t, err)
	require.Len(t, high, 1)
	assert.Equal(t, "A001", high[0].AccountNumber)

	totals, err := s.GetDepositTotals(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 3)
	assert.Equal(t, "60000", totals[0].TotalDeposits.String())
	assert.True(t, totals[2].TotalDeposits.IsZero())

	mismatches, err := s.GetBalanceMismatches(ctx)
	require.NoError(t, err)
	assert.Empty(t, mismatches)
}
