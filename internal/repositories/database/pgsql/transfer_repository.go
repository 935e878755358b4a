package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/bank_backoffice/internal/models"
	"github.com/SscSPs/bank_backoffice/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transferColumns = `transfer_id, from_accno, to_accno, amount, created_at, initiated_by`

type PgxTransferRepository struct {
	BaseRepository
}

func newPgxTransferRepository(pool *pgxpool.Pool) *PgxTransferRepository {
	return &PgxTransferRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransferRepositoryFacade = (*PgxTransferRepository)(nil)

func scanTransfer(row pgx.Row) (domain.Transfer, error) {
	var m models.Transfer
	if err := row.Scan(&m.TransferID, &m.FromAccno, &m.ToAccno, &m.Amount, &m.CreatedAt, &m.InitiatedBy); err != nil {
		return domain.Transfer{}, err
	}
	return mapping.ToDomainTransfer(m), nil
}

// SaveTransfer inserts the grouping row of a transfer.
func (r *PgxTransferRepository) SaveTransfer(ctx context.Context, transfer domain.Transfer) error {
	m := mapping.ToModelTransfer(transfer)
	query := `INSERT INTO transfers (` + transferColumns + `) VALUES ($1, $2, $3, $4, $5, $6);`
	_, err := r.q(ctx).Exec(ctx, query, m.TransferID, m.FromAccno, m.ToAccno, m.Amount, m.CreatedAt, m.InitiatedBy)
	if err != nil {
		return translateError(err, "failed to save transfer "+m.TransferID)
	}
	return nil
}

// FindTransferByID retrieves a transfer.
func (r *PgxTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	if _, err := uuid.Parse(transferID); err != nil {
		return nil, apperrors.NewNotFoundError("transfer " + transferID)
	}
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE transfer_id = $1;`
	t, err := scanTransfer(r.q(ctx).QueryRow(ctx, query, transferID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transfer " + transferID)
		}
		return nil, translateError(err, "failed to find transfer "+transferID)
	}
	return &t, nil
}

// ListTransfersByAccount returns transfers touching the account, newest first.
func (r *PgxTransferRepository) ListTransfersByAccount(ctx context.Context, accno string, limit int) ([]domain.Transfer, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + transferColumns + `
		FROM transfers
		WHERE from_accno = $1 OR to_accno = $1
		ORDER BY created_at DESC, transfer_id DESC
		LIMIT $2;
	`
	rows, err := r.q(ctx).Query(ctx, query, accno, limit)
	if err != nil {
		return nil, translateError(err, "failed to query transfers for account "+accno)
	}
	defer rows.Close()

	transfers := []domain.Transfer{}
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, translateError(err, "failed to scan transfer row")
		}
		transfers = append(transfers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "error iterating transfer rows")
	}
	return transfers, nil
}
