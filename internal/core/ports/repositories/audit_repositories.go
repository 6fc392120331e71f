package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/safebank/bank_ledger_app/internal/core/domain"
)

// AuditRecordWriter defines append operations for the audit log.
// The log is append-only: there is deliberately no update or delete method.
type AuditRecordWriter interface {
	// SaveAuditRecord durably appends a single record. The write is
	// synchronous; it returns only after the record is durable.
	SaveAuditRecord(ctx context.Context, record domain.AuditRecord) error

	// SaveAuditRecordsInTx appends records inside an already-open transaction,
	// so a balance mutation and its outcome records commit atomically.
	SaveAuditRecordsInTx(ctx context.Context, tx pgx.Tx, records []domain.AuditRecord) error
}

// AuditRecordReader defines the read-only query surface over the audit log.
type AuditRecordReader interface {
	// ListAuditRecords retrieves records matching the filter, newest first,
	// using token-based pagination. It returns the records, a token for the
	// next page, and an error.
	ListAuditRecords(ctx context.Context, filter domain.AuditRecordFilter, limit int, nextToken *string) ([]domain.AuditRecord, *string, error)
}

// AuditRecordRepositoryFacade combines the audit log repository interfaces
type AuditRecordRepositoryFacade interface {
	AuditRecordWriter
	AuditRecordReader
}
