package dto

import (
	"time"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// HighValueParams defines the query parameter of the high value report.
type HighValueParams struct {
	Threshold *decimal.Decimal `form:"threshold"`
}

// HighValueResponse lists accounts whose balance exceeds a threshold.
type HighValueResponse struct {
	Threshold decimal.Decimal   `json:"threshold"`
	Accounts  []AccountResponse `json:"accounts"`
}

// DepositTotalsResponse lists total deposits per account.
type DepositTotalsResponse struct {
	Rows []domain.AccountDepositTotal `json:"rows"`
}

// ReconcileResponse is the outcome of recomputing balances from the journal.
type ReconcileResponse struct {
	Consistent bool                     `json:"consistent"`
	Mismatches []domain.BalanceMismatch `json:"mismatches"`
}

// AuditEntryResponse defines the data returned for an audit log entry.
type AuditEntryResponse struct {
	AuditID   string             `json:"auditID"`
	Actor     string             `json:"actor"`
	Action    domain.AuditAction `json:"action"`
	EntityRef string             `json:"entityRef"`
	Timestamp time.Time          `json:"timestamp"`
}

// ToListAuditEntryResponse converts audit entries to DTOs.
func ToListAuditEntryResponse(entries []domain.AuditEntry) []AuditEntryResponse {
	res := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = AuditEntryResponse{
			AuditID:   e.AuditID,
			Actor:     e.Actor,
			Action:    e.Action,
			EntityRef: e.EntityRef,
			Timestamp: e.Timestamp,
		}
	}
	return res
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}
