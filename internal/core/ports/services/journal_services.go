package services

import (
	"context"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerWriterSvc posts balance-affecting entries.
type LedgerWriterSvc interface {
	// PostDeposit credits an account and journals a DEPOSIT entry.
	PostDeposit(ctx context.Context, caller domain.Identity, accno string, amount decimal.Decimal, checkerID *string) (*domain.Transaction, error)

	// PostWithdrawal debits an account and journals a WITHDRAW entry.
	PostWithdrawal(ctx context.Context, caller domain.Identity, accno string, amount decimal.Decimal, checkerID *string) (*domain.Transaction, error)

	// ReverseTransaction posts the compensating entry for a committed deposit or withdrawal. Staff only.
	ReverseTransaction(ctx context.Context, caller domain.Identity, transactionID string) (*domain.Transaction, error)
}

// LedgerReaderSvc reads the transaction journal.
type LedgerReaderSvc interface {
	GetTransaction(ctx context.Context, caller domain.Identity, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccount returns entries newest first with a continuation token.
	ListTransactionsByAccount(ctx context.Context, caller domain.Identity, accno string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListRecentTransactions returns the latest entries across the bank. Staff only.
	ListRecentTransactions(ctx context.Context, caller domain.Identity, limit int) ([]domain.Transaction, error)
}

// LedgerSvcFacade combines the ledger engine and journal read interfaces
type LedgerSvcFacade interface {
	LedgerWriterSvc
	LedgerReaderSvc
}

// TransferSvcFacade coordinates two-account transfers.
type TransferSvcFacade interface {
	// Transfer moves amount from one account to another as a single atomic unit.
	Transfer(ctx context.Context, caller domain.Identity, fromAccno, toAccno string, amount decimal.Decimal) (*domain.Transfer, error)

	// GetTransfer returns one transfer. Customers see only transfers touching an account they own.
	GetTransfer(ctx context.Context, caller domain.Identity, transferID string) (*domain.Transfer, error)

	ListTransfersByAccount(ctx context.Context, caller domain.Identity, accno string, limit int) ([]domain.Transfer, error)
}
