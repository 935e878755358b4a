package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
)

func (s *Store) SaveTransfer(ctx context.Context, transfer domain.Transfer) error {
	return s.inUnit(ctx, func(_ context.Context, u *unitOfWork) error {
		for _, accno := range []string{transfer.FromAccount, transfer.ToAccount} {
			if _, err := s.viewAccount(u, accno); err != nil {
				return err
			}
		}
		transfer.Timestamp = transfer.Timestamp.UTC()
		u.transfers = append(u.transfers, transfer)
		return nil
	})
}

func (s *Store) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.transferIdx[transferID]
	if !ok {
		return nil, apperrors.NewNotFoundError("transfer " + transferID)
	}
	tr := s.transfers[idx]
	return &tr, nil
}

// ListTransfersByAccount returns transfers where accno is either side, newest first.
func (s *Store) ListTransfersByAccount(ctx context.Context, accno string, limit int) ([]domain.Transfer, error) {
	if limit <= 0 {
		limit = 20
	}
	s.mu.RLock()
	transfers := []domain.Transfer{}
	for _, tr := range s.transfers {
		if tr.FromAccount == accno || tr.ToAccount == accno {
			transfers = append(transfers, tr)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(transfers, func(a, b domain.Transfer) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(b.TransferID, a.TransferID)
	})
	if len(transfers) > limit {
		transfers = transfers[:limit]
	}
	return transfers, nil
}
