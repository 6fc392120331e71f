package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/safebank/bank_ledger_app/internal/apperrors"
	"github.com/safebank/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/safebank/bank_ledger_app/internal/core/ports/repositories"
	"github.com/safebank/bank_ledger_app/internal/models"
	"github.com/safebank/bank_ledger_app/internal/utils/mapping"
	"github.com/safebank/bank_ledger_app/internal/utils/pagination"
)

// PgxAuditRepository persists the append-only audit trail. This repository has
// no UPDATE or DELETE statements: rows written here are immutable.
type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for audit log data.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRecordRepositoryFacade {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAuditRepository implements portsrepo.AuditRecordRepositoryFacade
var _ portsrepo.AuditRecordRepositoryFacade = (*PgxAuditRepository)(nil)

const auditInsertQuery = `
	INSERT INTO audit_logs (audit_id, action, status, details, timestamp)
	VALUES ($1, $2, $3, $4, $5);
`

// SaveAuditRecord durably appends a single record outside any account lock.
func (r *PgxAuditRepository) SaveAuditRecord(ctx context.Context, record domain.AuditRecord) error {
	m := mapping.ToModelAuditRecord(record)
	_, err := r.Pool.Exec(ctx, auditInsertQuery, m.AuditID, m.Action, m.Status, m.Details, m.Timestamp)
	if err != nil {
		return fmt.Errorf("%w: failed to append audit record %s: %v", apperrors.ErrStorageUnavailable, m.AuditID, err)
	}
	return nil
}

// SaveAuditRecordsInTx appends records inside an already-open transaction.
func (r *PgxAuditRepository) SaveAuditRecordsInTx(ctx context.Context, tx pgx.Tx, records []domain.AuditRecord) error {
	if len(records) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, record := range records {
		m := mapping.ToModelAuditRecord(record)
		batch.Queue(auditInsertQuery, m.AuditID, m.Action, m.Status, m.Details, m.Timestamp)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("%w: failed to append audit record batch: %v", apperrors.ErrStorageUnavailable, err)
	}
	return nil
}

// ListAuditRecords retrieves records matching the filter, newest first, with
// (timestamp, audit_id) token pagination.
func (r *PgxAuditRepository) ListAuditRecords(ctx context.Context, filter domain.AuditRecordFilter, limit int, nextToken *string) ([]domain.AuditRecord, *string, error) {
	if limit <= 0 {
		limit = 50
	}

	conditions := []string{}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Action != nil {
		conditions = append(conditions, "action = "+arg(string(*filter.Action)))
	}
	if filter.Status != nil {
		conditions = append(conditions, "status = "+arg(string(*filter.Status)))
	}
	if filter.From != nil {
		conditions = append(conditions, "timestamp >= "+arg(*filter.From))
	}
	if filter.To != nil {
		conditions = append(conditions, "timestamp < "+arg(*filter.To))
	}
	if nextToken != nil {
		cursorTime, cursorID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		conditions = append(conditions, fmt.Sprintf("(timestamp, audit_id) < (%s, %s)", arg(cursorTime), arg(cursorID)))
	}

	query := `SELECT audit_id, action, status, details, timestamp FROM audit_logs`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	// Fetch one extra row to know whether a next page exists
	query += fmt.Sprintf(" ORDER BY timestamp DESC, audit_id DESC LIMIT %s;", arg(limit+1))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query audit records: %w", err)
	}
	defer rows.Close()

	records := []domain.AuditRecord{}
	for rows.Next() {
		var m models.AuditRecord
		if err := rows.Scan(&m.AuditID, &m.Action, &m.Status, &m.Details, &m.Timestamp); err != nil {
			return nil, nil, fmt.Errorf("failed to scan audit record row: %w", err)
		}
		records = append(records, mapping.ToDomainAuditRecord(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating audit record rows: %w", err)
	}

	var newNextToken *string
	if len(records) > limit {
		records = records[:limit]
		last := records[len(records)-1]
		token := pagination.EncodeToken(last.Timestamp, last.AuditID)
		newNextToken = &token
	}

	return records, newNextToken, nil
}
