package memory

import (
	"context"
	"slices"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/google/uuid"
)

func (s *Store) SaveAuditEntry(ctx context.Context, entry *domain.AuditEntry) error {
	if entry.AuditID == "" {
		entry.AuditID = uuid.NewString()
	}
	return s.inUnit(ctx, func(_ context.Context, u *unitOfWork) error {
		u.audit = append(u.audit, *entry)
		return nil
	})
}

func (s *Store) ListAuditEntries(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	s.mu.RLock()
	entries := slices.Clone(s.audit)
	s.mu.RUnlock()

	// Newest first; entries sharing a timestamp keep reverse insertion order.
	slices.Reverse(entries)
	slices.SortStableFunc(entries, func(a, b domain.AuditEntry) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
