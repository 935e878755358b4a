package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every PostgreSQL repository over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:     NewTxManager(dbPool, lockTimeout),
		AccountRepo:   newPgxAccountRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
		TransferRepo:  newPgxTransferRepository(dbPool),
		LoanRepo:      newPgxLoanRepository(dbPool),
		AuditRepo:     newPgxAuditRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
	}
}
