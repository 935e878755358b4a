package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoan_Decide(t *testing.T) {
	at := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

	t.Run("approve pending", func(t *testing.T) {
		l := domain.Loan{LoanID: "L1", Status: domain.LoanPending}
		require.NoError(t, l.Decide(domain.LoanApproved, "ADMIN1", at))
		assert.Equal(t, domain.LoanApproved, l.Status)
		require.NotNil(t, l.DecidedBy)
		assert.Equal(t, "ADMIN1", *l.DecidedBy)
		require.NotNil(t, l.DecidedAt)
		assert.True(t, at.Equal(*l.DecidedAt))
	})

	t.Run("already decided", func(t *testing.T) {
		l := domain.Loan{LoanID: "L1", Status: domain.LoanRejected}
		assert.ErrorIs(t, l.Decide(domain.LoanApproved, "ADMIN1", at), apperrors.ErrAlreadyDecided)
		assert.Equal(t, domain.LoanRejected, l.Status)
	})

	t.Run("empty approver", func(t *testing.T) {
		l := domain.Loan{LoanID: "L1", Status: domain.LoanPending}
		assert.ErrorIs(t, l.Decide(domain.LoanApproved, "", at), apperrors.ErrInvalidApprover)
		assert.Equal(t, domain.LoanPending, l.Status)
	})

	t.Run("pending is not a decision", func(t *testing.T) {
		l := domain.Loan{LoanID: "L1", Status: domain.LoanPending}
		assert.ErrorIs(t, l.Decide(domain.LoanPending, "ADMIN1", at), apperrors.ErrValidation)
	})
}

func TestLoanFilter_Matches(t *testing.T) {
	l := domain.Loan{CIF: "C1", AccountNumber: "A001", Status: domain.LoanPending}

	assert.True(t, domain.LoanFilter{}.Matches(l))
	assert.True(t, domain.LoanFilter{CIF: "C1", Status: domain.LoanPending}.Matches(l))
	assert.False(t, domain.LoanFilter{CIF: "C2"}.Matches(l))
	assert.False(t, domain.LoanFilter{AccountNumber: "A002"}.Matches(l))
	assert.False(t, domain.LoanFilter{Status: domain.LoanApproved}.Matches(l))
}
