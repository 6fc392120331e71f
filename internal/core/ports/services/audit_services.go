package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/safebank/bank_ledger_app/internal/core/domain"
)

// AuditRecorder is the audit log capability the ledger and transfer services
// depend on. Kept narrow so tests can substitute a fake log.
type AuditRecorder interface {
	// Record durably appends one record; returns only after the write is durable.
	Record(ctx context.Context, action domain.ActionType, status domain.ActionStatus, details string) error

	// RecordInTx appends records inside an open transaction so outcome records
	// commit atomically with the balance mutation they describe.
	RecordInTx(ctx context.Context, tx pgx.Tx, records []domain.AuditRecord) error
}

// AuditReader exposes the read-only query surface over the audit log.
type AuditReader interface {
	ListAuditRecords(ctx context.Context, filter domain.AuditRecordFilter, limit int, nextToken *string) ([]domain.AuditRecord, *string, error)
}

// AuditSvcFacade combines the audit log service interfaces.
type AuditSvcFacade interface {
	AuditRecorder
	AuditReader
}
