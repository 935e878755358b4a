package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/SscSPs/bank_backoffice/internal/utils/pagination"
	"github.com/google/uuid"
)

// AppendTransaction buffers a journal entry in the unit of work.
func (s *Store) AppendTransaction(ctx context.Context, txn *domain.Transaction) error {
	return s.inUnit(ctx, func(_ context.Context, u *unitOfWork) error {
		if _, err := s.viewAccount(u, txn.AccountNumber); err != nil {
			return err
		}
		if txn.ReversalOf != nil && s.isReversed(u, *txn.ReversalOf) {
			return apperrors.NewAppError(apperrors.ErrDuplicate, "transaction "+*txn.ReversalOf+" is already reversed", nil)
		}
		if txn.TransactionID == "" {
			txn.TransactionID = uuid.NewString()
		}
		txn.Timestamp = txn.Timestamp.UTC()
		u.txns = append(u.txns, *txn)
		return nil
	})
}

func (s *Store) isReversed(u *unitOfWork, transactionID string) bool {
	s.mu.RLock()
	_, done := s.reversed[transactionID]
	s.mu.RUnlock()
	if done {
		return true
	}
	for _, t := range u.txns {
		if t.ReversalOf != nil && *t.ReversalOf == transactionID {
			return true
		}
	}
	return false
}

func (s *Store) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.RLock()
	idx, ok := s.txIndex[transactionID]
	var t domain.Transaction
	if ok {
		t = s.transactions[idx]
	}
	s.mu.RUnlock()
	if ok {
		return &t, nil
	}

	if u := getUnitOfWork(ctx); u != nil {
		for _, pending := range u.txns {
			if pending.TransactionID == transactionID {
				return &pending, nil
			}
		}
	}
	return nil, apperrors.NewNotFoundError("transaction " + transactionID)
}

// ListTransactionsByAccount pages committed entries newest first, with the same
// cursor format as the PostgreSQL repository.
func (s *Store) ListTransactionsByAccount(ctx context.Context, accno string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(apperrors.ErrValidation, "invalid nextToken", err)
		}
		cursor = &c
	}

	s.mu.RLock()
	txns := make([]domain.Transaction, 0, len(s.byAccount[accno]))
	for _, idx := range s.byAccount[accno] {
		t := s.transactions[idx]
		if cursor == nil || cursor.After(t.Timestamp, t.TransactionID) {
			txns = append(txns, t)
		}
	}
	s.mu.RUnlock()

	sortNewestFirst(txns)

	var next *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[limit-1]
		token := pagination.EncodeToken(last.Timestamp, last.TransactionID)
		next = &token
	}
	return txns, next, nil
}

func (s *Store) ListRecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	s.mu.RLock()
	txns := slices.Clone(s.transactions)
	s.mu.RUnlock()

	sortNewestFirst(txns)
	if len(txns) > limit {
		txns = txns[:limit]
	}
	return txns, nil
}

// LatestEntryTime includes entries buffered by the caller's unit of work.
func (s *Store) LatestEntryTime(ctx context.Context, accno string) (time.Time, error) {
	s.mu.RLock()
	latest := s.latest[accno]
	s.mu.RUnlock()

	if u := getUnitOfWork(ctx); u != nil {
		for _, t := range u.txns {
			if t.AccountNumber == accno && t.Timestamp.After(latest) {
				latest = t.Timestamp
			}
		}
	}
	return latest, nil
}

func sortNewestFirst(txns []domain.Transaction) {
	slices.SortFunc(txns, func(a, b domain.Transaction) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(b.TransactionID, a.TransactionID)
	})
}
