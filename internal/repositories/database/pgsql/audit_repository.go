package pgsql

import (
	"context"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/bank_backoffice/internal/models"
	"github.com/SscSPs/bank_backoffice/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) *PgxAuditRepository {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// SaveAuditEntry appends an entry inside the caller's unit of work.
func (r *PgxAuditRepository) SaveAuditEntry(ctx context.Context, entry *domain.AuditEntry) error {
	if entry.AuditID == "" {
		entry.AuditID = uuid.NewString()
	}
	m := mapping.ToModelAuditLog(*entry)
	query := `INSERT INTO audit_logs (audit_id, actor, action, entity_ref, created_at) VALUES ($1, $2, $3, $4, $5);`
	if _, err := r.q(ctx).Exec(ctx, query, m.AuditID, m.Actor, m.Action, m.EntityRef, m.CreatedAt); err != nil {
		return translateError(err, "failed to save audit entry")
	}
	return nil
}

// ListAuditEntries returns the newest entries first.
func (r *PgxAuditRepository) ListAuditEntries(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT audit_id, actor, action, entity_ref, created_at
		FROM audit_logs
		ORDER BY created_at DESC, seq DESC
		LIMIT $1;
	`
	rows, err := r.q(ctx).Query(ctx, query, limit)
	if err != nil {
		return nil, translateError(err, "failed to query audit log")
	}
	defer rows.Close()

	entries := []domain.AuditEntry{}
	for rows.Next() {
		var m models.AuditLog
		if err := rows.Scan(&m.AuditID, &m.Actor, &m.Action, &m.EntityRef, &m.CreatedAt); err != nil {
			return nil, translateError(err, "failed to scan audit row")
		}
		entries = append(entries, mapping.ToDomainAuditEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "error iterating audit rows")
	}
	return entries, nil
}
