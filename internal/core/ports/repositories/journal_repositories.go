package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
)

// JournalReader defines read operations for journal entries
type JournalReader interface {
	// FindTransactionByID retrieves a specific journal entry.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves entries for an account newest first using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListTransactionsByAccount(ctx context.Context, accno string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListRecentTransactions retrieves the latest entries across all accounts.
	ListRecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error)

	// LatestEntryTime returns the timestamp of the newest entry on the account,
	// or the zero time if it has none.
	LatestEntryTime(ctx context.Context, accno string) (time.Time, error)
}

// JournalWriter defines the append-only write side of the journal
type JournalWriter interface {
	// AppendTransaction persists a new entry. A missing TransactionID is generated.
	// Returns ErrDuplicate if the entry reverses an already reversed entry.
	AppendTransaction(ctx context.Context, txn *domain.Transaction) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
