package domain

import "time"

// LedgerEvent is published after a mutating operation has committed.
type LedgerEvent struct {
	Type       string    `json:"type"` // Routing key, e.g. "ledger.transfer.completed"
	EntityRef  string    `json:"entityRef"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

const (
	EventAccountOpened       = "ledger.account.opened"
	EventDepositPosted       = "ledger.deposit.posted"
	EventWithdrawalPosted    = "ledger.withdrawal.posted"
	EventTransactionReversed = "ledger.transaction.reversed"
	EventTransferCompleted   = "ledger.transfer.completed"
	EventLoanApplied         = "loan.applied"
	EventLoanApproved        = "loan.approved"
	EventLoanRejected        = "loan.rejected"
)
