package repositories

import (
	"context"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
)

// AuditRepositoryFacade is the append-only audit log.
type AuditRepositoryFacade interface {
	// SaveAuditEntry appends an entry. A missing AuditID is generated.
	SaveAuditEntry(ctx context.Context, entry *domain.AuditEntry) error

	// ListAuditEntries returns the newest entries first.
	ListAuditEntries(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}
