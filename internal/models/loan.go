package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is the row shape of the loans table.
type Loan struct {
	LoanID       string          `db:"loan_id"`
	CIF          string          `db:"cif"`
	Accno        string          `db:"accno"`
	Amount       decimal.Decimal `db:"amount"`
	LoanType     string          `db:"loan_type"`
	InterestRate decimal.Decimal `db:"interest_rate"`
	TenureMonths int             `db:"tenure_months"`
	Status       string          `db:"status"`
	AppliedAt    time.Time       `db:"applied_at"`
	AppliedBy    string          `db:"applied_by"`
	DecidedAt    *time.Time      `db:"decided_at"`
	DecidedBy    *string         `db:"decided_by"`
}

// AuditLog is the row shape of the audit_logs table.
type AuditLog struct {
	AuditID   string    `db:"audit_id"`
	Actor     string    `db:"actor"`
	Action    string    `db:"action"`
	EntityRef string    `db:"entity_ref"`
	CreatedAt time.Time `db:"created_at"`
}
