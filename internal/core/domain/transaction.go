package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind indicates the direction of a journal entry.
type TransactionKind string

const (
	Deposit  TransactionKind = "DEPOSIT"
	Withdraw TransactionKind = "WITHDRAW"
)

// IsValid reports whether k is a known kind.
func (k TransactionKind) IsValid() bool {
	return k == Deposit || k == Withdraw
}

// Opposite returns the kind that compensates k.
func (k TransactionKind) Opposite() TransactionKind {
	if k == Deposit {
		return Withdraw
	}
	return Deposit
}

// Signed returns amount with the sign this kind applies to a balance.
func (k TransactionKind) Signed(amount decimal.Decimal) decimal.Decimal {
	if k == Withdraw {
		return amount.Neg()
	}
	return amount
}

// Transaction is an immutable journal entry. Balances are derived from these.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	AccountNumber string          `json:"accno"`         // FK -> accounts.accno
	Kind          TransactionKind `json:"kind"`          // DEPOSIT or WITHDRAW
	Amount        decimal.Decimal `json:"amount"`        // Always positive
	Timestamp     time.Time       `json:"timestamp"`     // Server assigned, non-decreasing per account
	MakerID       *string         `json:"makerID"`       // Null for self-service customer postings
	CheckerID     *string         `json:"checkerID"`     // Optional second approver
	TransferID    *string         `json:"transferID"`    // Set on both legs of a transfer
	ReversalOf    *string         `json:"reversalOf"`    // Set on compensating entries
}

// SignedAmount is the entry's effect on the account balance.
func (t Transaction) SignedAmount() decimal.Decimal {
	return t.Kind.Signed(t.Amount)
}

// IsTransferLeg reports whether the entry is half of a transfer.
func (t Transaction) IsTransferLeg() bool {
	return t.TransferID != nil && *t.TransferID != ""
}
