package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/SscSPs/bank_backoffice/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loanRequest(loanID, cif, accno string) dto.ApplyLoanRequest {
	return dto.ApplyLoanRequest{
		LoanID:        loanID,
		CIF:           cif,
		AccountNumber: accno,
		Amount:        decimal.NewFromInt(500000),
		LoanType:      domain.HomeLoan,
		InterestRate:  decimal.RequireFromString("8.5"),
		TenureMonths:  240,
	}
}

func TestLoanLifecycle(t *testing.T) {
	h := newHarness(t)
	h.open(t, "A001", "C1")
	ctx := context.Background()

	loan, err := h.svc.Loan.ApplyLoan(ctx, customer("C1"), loanRequest("L1", "C1", "A001"))
	require.NoError(t, err)
	assert.Equal(t, domain.LoanPending, loan.Status)
	assert.Nil(t, loan.DecidedAt)

	_, err = h.svc.Loan.ApproveLoan(ctx, employee, "L1")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	approved, err := h.svc.Loan.ApproveLoan(ctx, admin, "L1")
	require.NoError(t, err)
	assert.Equal(t, domain.LoanApproved, approved.Status)
	require.NotNil(t, approved.DecidedBy)
	assert.Equal(t, admin.ID, *approved.DecidedBy)
	require.NotNil(t, approved.DecidedAt)
	assert.False(t, approved.DecidedAt.Before(loan.AppliedAt))

	_, err = h.svc.Loan.ApproveLoan(ctx, admin, "L1")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyDecided)
	_, err = h.svc.Loan.RejectLoan(ctx, admin, "L1")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyDecided)

	stored, err := h.svc.Loan.GetLoan(ctx, customer("C1"), "L1")
	require.NoError(t, err)
	assert.Equal(t, domain.LoanApproved, stored.Status)

	_, err = h.svc.Loan.GetLoan(ctx, customer("C2"), "L1")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestApplyLoan_Validation(t *testing.T) {
	h := newHarness(t)
	h.open(t, "A001", "C1")
	h.open(t, "A002", "C2")
	ctx := context.Background()

	_, err := h.svc.Loan.ApplyLoan(ctx, employee, loanRequest("L1", "C1", "A001"))
	require.NoError(t, err)

	mutate := func(f func(*dto.ApplyLoanRequest)) dto.ApplyLoanRequest {
		req := loanRequest("L2", "C1", "A001")
		f(&req)
		return req
	}
	cases := []struct {
		name    string
		caller  domain.Identity
		req     dto.ApplyLoanRequest
		wantErr error
	}{
		{"duplicate id", employee, loanRequest("L1", "C1", "A001"), apperrors.ErrDuplicate},
		{"zero amount", employee, mutate(func(r *dto.ApplyLoanRequest) { r.Amount = decimal.Zero }), apperrors.ErrInvalidAmount},
		{"zero tenure", employee, mutate(func(r *dto.ApplyLoanRequest) { r.TenureMonths = 0 }), apperrors.ErrInvalidAmount},
		{"unknown type", employee, mutate(func(r *dto.ApplyLoanRequest) { r.LoanType = "BOAT" }), apperrors.ErrValidation},
		{"amount beyond ledger precision", employee, mutate(func(r *dto.ApplyLoanRequest) { r.Amount = decimal.RequireFromString("1e20") }), apperrors.ErrInvalidAmount},
		{"rate beyond column precision", employee, mutate(func(r *dto.ApplyLoanRequest) { r.InterestRate = decimal.NewFromInt(1000) }), apperrors.ErrValidation},
		{"negative rate", employee, mutate(func(r *dto.ApplyLoanRequest) { r.InterestRate = decimal.NewFromInt(-1) }), apperrors.ErrValidation},
		{"unknown account", employee, mutate(func(r *dto.ApplyLoanRequest) { r.AccountNumber = "A999" }), apperrors.ErrNotFound},
		{"account of another customer", employee, mutate(func(r *dto.ApplyLoanRequest) { r.AccountNumber = "A002" }), apperrors.ErrValidation},
		{"customer applying for someone else", customer("C2"), loanRequest("L3", "C1", "A001"), apperrors.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.svc.Loan.ApplyLoan(ctx, tc.caller, tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	loans, err := h.svc.Loan.ListLoans(ctx, admin, domain.LoanFilter{})
	require.NoError(t, err)
	assert.Len(t, loans, 1)
}

func TestDecideLoan_Errors(t *testing.T) {
	h := newHarness(t)
	h.open(t, "A001", "C1")
	ctx := context.Background()

	_, err := h.svc.Loan.ApproveLoan(ctx, admin, "NOPE")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = h.svc.Loan.ApproveLoan(ctx, domain.Identity{Role: domain.RoleAdmin}, "NOPE")
	assert.ErrorIs(t, err, apperrors.ErrInvalidApprover)

	_, err = h.svc.Loan.ApplyLoan(ctx, employee, loanRequest("L1", "C1", "A001"))
	require.NoError(t, err)
	rejected, err := h.svc.Loan.RejectLoan(ctx, admin, "L1")
	require.NoError(t, err)
	assert.Equal(t, domain.LoanRejected, rejected.Status)
}

func TestApproveLoan_ConcurrentApprovalsDecideOnce(t *testing.T) {
	h := newHarness(t)
	h.open(t, "A001", "C1")
	ctx := context.Background()
	_, err := h.svc.Loan.ApplyLoan(ctx, employee, loanRequest("L1", "C1", "A001"))
	require.NoError(t, err)
	auditBefore := h.auditCount(t)

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for n := 0; n < 10; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.svc.Loan.ApproveLoan(ctx, admin, "L1")
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrAlreadyDecided)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, auditBefore+1, h.auditCount(t))
}

func TestListLoans_CustomerSeesOwnOnly(t *testing.T) {
	h := newHarness(t)
	h.open(t, "A001", "C1")
	h.open(t, "A002", "C2")
	ctx := context.Background()

	_, err := h.svc.Loan.ApplyLoan(ctx, employee, loanRequest("L1", "C1", "A001"))
	require.NoError(t, err)
	_, err = h.svc.Loan.ApplyLoan(ctx, employee, loanRequest("L2", "C2", "A002"))
	require.NoError(t, err)

	own, err := h.svc.Loan.ListLoans(ctx, customer("C1"), domain.LoanFilter{})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "L1", own[0].LoanID)

	_, err = h.svc.Loan.ListLoans(ctx, customer("C1"), domain.LoanFilter{CIF: "C2"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	pending, err := h.svc.Loan.ListLoans(ctx, admin, domain.LoanFilter{Status: domain.LoanPending})
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}
