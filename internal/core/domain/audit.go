package domain

import "time"

// AuditAction names a mutating operation in the audit log.
type AuditAction string

const (
	ActionAccountOpened       AuditAction = "ACCOUNT_OPENED"
	ActionDepositPosted       AuditAction = "DEPOSIT_POSTED"
	ActionWithdrawalPosted    AuditAction = "WITHDRAWAL_POSTED"
	ActionTransactionReversed AuditAction = "TRANSACTION_REVERSED"
	ActionTransferCompleted   AuditAction = "TRANSFER_COMPLETED"
	ActionLoanApplied         AuditAction = "LOAN_APPLIED"
	ActionLoanApproved        AuditAction = "LOAN_APPROVED"
	ActionLoanRejected        AuditAction = "LOAN_REJECTED"
)

// AuditEntry is an append-only record of who did what, to which entity, and when.
type AuditEntry struct {
	AuditID   string      `json:"auditID"`
	Actor     string      `json:"actor"`
	Action    AuditAction `json:"action"`
	EntityRef string      `json:"entityRef"` // e.g. "account:A001", "loan:L1"
	Timestamp time.Time   `json:"timestamp"`
}

// Entity reference helpers keep the "<kind>:<id>" format in one place.
func AccountRef(accno string) string  { return "account:" + accno }
func TransactionRef(id string) string { return "transaction:" + id }
func TransferRef(id string) string    { return "transfer:" + id }
func LoanRef(loanID string) string    { return "loan:" + loanID }
