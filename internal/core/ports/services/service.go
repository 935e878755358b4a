package services

import (
	"context"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Ledger    LedgerSvcFacade
	Transfer  TransferSvcFacade
	Loan      LoanSvcFacade
	Audit     AuditSvc
	Reporting ReportingService
}

// EventPublisher delivers committed ledger events to downstream consumers.
// Publishing happens after commit; implementations must not block the caller for long.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.LedgerEvent) error
	Close() error
}
