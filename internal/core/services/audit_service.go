package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
)

type auditService struct {
	BaseService
	auditRepo portsrepo.AuditRepositoryFacade
}

// NewAuditService creates the audit recorder.
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade, options ...Option) portssvc.AuditSvc {
	return &auditService{
		BaseService: newBaseService(options...),
		auditRepo:   auditRepo,
	}
}

var _ portssvc.AuditSvc = (*auditService)(nil)

// Record writes through the caller's unit of work, so the entry commits or
// rolls back together with the mutation it describes.
func (s *auditService) Record(ctx context.Context, actor string, action domain.AuditAction, entityRef string) error {
	entry := &domain.AuditEntry{
		Actor:     actor,
		Action:    action,
		EntityRef: entityRef,
		Timestamp: s.Now(),
	}
	if err := s.auditRepo.SaveAuditEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to record audit entry",
			slog.String("action", string(action)),
			slog.String("entity_ref", entityRef))
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

func (s *auditService) ListAuditLog(ctx context.Context, caller domain.Identity, limit int) ([]domain.AuditEntry, error) {
	if err := s.RequireAdmin(caller); err != nil {
		return nil, err
	}
	entries, err := s.auditRepo.ListAuditEntries(ctx, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit log", slog.Int("limit", limit))
		return nil, fmt.Errorf("failed to list audit log: %w", err)
	}
	return entries, nil
}
