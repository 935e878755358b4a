package accounting

import (
	"fmt"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalBalance folds entries into the balance they imply:
// DEPOSIT adds, WITHDRAW subtracts.
// Used by reconciliation and tests to check stored balances against the journal.
func JournalBalance(transactions []domain.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, txn := range transactions {
		sum = sum.Add(txn.SignedAmount())
	}
	return sum
}

// ValidateTransferLegs checks that the entries of one transfer form a
// balanced pair: one WITHDRAW and one DEPOSIT of the same positive amount,
// on different accounts, sharing the transfer id and timestamp.
func ValidateTransferLegs(legs []domain.Transaction) error {
	if len(legs) != 2 {
		return fmt.Errorf("transfer must have exactly two entries, got %d", len(legs))
	}

	debit, credit := legs[0], legs[1]
	if debit.Kind == domain.Deposit {
		debit, credit = credit, debit
	}
	if debit.Kind != domain.Withdraw || credit.Kind != domain.Deposit {
		return fmt.Errorf("transfer must have one %s and one %s entry", domain.Withdraw, domain.Deposit)
	}
	if debit.AccountNumber == credit.AccountNumber {
		return fmt.Errorf("transfer entries must touch two accounts, both are %s", debit.AccountNumber)
	}
	if !debit.Amount.IsPositive() {
		return fmt.Errorf("transfer amount must be positive, got %s", debit.Amount.String())
	}
	if !debit.IsTransferLeg() || !credit.IsTransferLeg() || *debit.TransferID != *credit.TransferID {
		return fmt.Errorf("transfer entries must share one transfer id")
	}
	if !debit.Timestamp.Equal(credit.Timestamp) {
		return fmt.Errorf("transfer entries must share one timestamp")
	}

	if sum := JournalBalance(legs); !sum.IsZero() {
		return fmt.Errorf("transfer entries do not balance to zero: sum is %s", sum.String())
	}
	return nil
}
