package services

import (
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, options ...Option) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit first: every mutating service records through it inside its own unit of work.
	container.Audit = NewAuditService(repos.AuditRepo, options...)

	container.Account = NewAccountService(repos.TxManager, repos.AccountRepo, container.Audit, options...)
	container.Ledger = NewLedgerService(repos.TxManager, repos.AccountRepo, repos.JournalRepo, container.Audit, options...)
	container.Transfer = NewTransferService(repos.TxManager, repos.AccountRepo, repos.JournalRepo, repos.TransferRepo, container.Audit, options...)
	container.Loan = NewLoanService(repos.TxManager, repos.AccountRepo, repos.LoanRepo, container.Audit, options...)
	container.Reporting = NewReportingService(repos.ReportingRepo, cfg.HighValueThreshold, options...)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade  = (*accountService)(nil)
	_ portssvc.LedgerSvcFacade   = (*ledgerService)(nil)
	_ portssvc.TransferSvcFacade = (*transferService)(nil)
	_ portssvc.LoanSvcFacade     = (*loanService)(nil)
	_ portssvc.AuditSvc          = (*auditService)(nil)
	_ portssvc.ReportingService  = (*reportingService)(nil)
)
