package mapping

import (
	"time"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/SscSPs/bank_backoffice/internal/models"
)

// ToModelLoan converts a domain Loan to a model Loan
func ToModelLoan(d domain.Loan) models.Loan {
	return models.Loan{
		LoanID:       d.LoanID,
		CIF:          d.CIF,
		Accno:        d.AccountNumber,
		Amount:       d.Amount,
		LoanType:     string(d.LoanType),
		InterestRate: d.InterestRate,
		TenureMonths: d.TenureMonths,
		Status:       string(d.Status),
		AppliedAt:    d.AppliedAt,
		AppliedBy:    d.AppliedBy,
		DecidedAt:    d.DecidedAt,
		DecidedBy:    d.DecidedBy,
	}
}

// ToDomainLoan converts a model Loan to a domain Loan
func ToDomainLoan(m models.Loan) domain.Loan {
	var decidedAt *time.Time
	if m.DecidedAt != nil {
		t := m.DecidedAt.UTC()
		decidedAt = &t
	}
	return domain.Loan{
		LoanID:        m.LoanID,
		CIF:           m.CIF,
		AccountNumber: m.Accno,
		Amount:        m.Amount,
		LoanType:      domain.LoanType(m.LoanType),
		InterestRate:  m.InterestRate,
		TenureMonths:  m.TenureMonths,
		Status:        domain.LoanStatus(m.Status),
		AppliedAt:     m.AppliedAt.UTC(),
		AppliedBy:     m.AppliedBy,
		DecidedAt:     decidedAt,
		DecidedBy:     m.DecidedBy,
	}
}

// ToModelAuditLog converts a domain AuditEntry to a model AuditLog
func ToModelAuditLog(d domain.AuditEntry) models.AuditLog {
	return models.AuditLog{
		AuditID:   d.AuditID,
		Actor:     d.Actor,
		Action:    string(d.Action),
		EntityRef: d.EntityRef,
		CreatedAt: d.Timestamp,
	}
}

// ToDomainAuditEntry converts a model AuditLog to a domain AuditEntry
func ToDomainAuditEntry(m models.AuditLog) domain.AuditEntry {
	return domain.AuditEntry{
		AuditID:   m.AuditID,
		Actor:     m.Actor,
		Action:    domain.AuditAction(m.Action),
		EntityRef: m.EntityRef,
		Timestamp: m.CreatedAt.UTC(),
	}
}
