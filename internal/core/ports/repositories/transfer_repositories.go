package repositories

import (
	"context"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
)

// TransferRepositoryFacade stores the grouping record of a transfer.
type TransferRepositoryFacade interface {
	SaveTransfer(ctx context.Context, transfer domain.Transfer) error
	FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error)
	// ListTransfersByAccount returns transfers where the account is source or destination, newest first.
	ListTransfersByAccount(ctx context.Context, accno string, limit int) ([]domain.Transfer, error)
}
