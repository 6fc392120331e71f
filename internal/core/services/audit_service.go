package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/safebank/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/safebank/bank_ledger_app/internal/core/ports/repositories"
	"github.com/safebank/bank_ledger_app/internal/middleware"
)

// AuditService records and queries the append-only audit trail.
type AuditService struct {
	auditRepo portsrepo.AuditRecordRepositoryFacade
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo portsrepo.AuditRecordRepositoryFacade) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// Record durably appends one record. It returns only after the underlying
// write has completed, so a caller that proceeds past Record can rely on the
// record surviving a crash.
func (s *AuditService) Record(ctx context.Context, action domain.ActionType, status domain.ActionStatus, details string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	record := domain.NewAuditRecord(uuid.NewString(), action, status, details, time.Now())
	if err := s.auditRepo.SaveAuditRecord(ctx, record); err != nil {
		logger.Error("Failed to append audit record", "action", action, "status", status, "error", err)
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// RecordInTx appends records inside an open transaction. Outcome records for a
// balance mutation go through here so they commit or roll back with it.
func (s *AuditService) RecordInTx(ctx context.Context, tx pgx.Tx, records []domain.AuditRecord) error {
	if err := s.auditRepo.SaveAuditRecordsInTx(ctx, tx, records); err != nil {
		return fmt.Errorf("failed to record audit entries in transaction: %w", err)
	}
	return nil
}

// ListAuditRecords retrieves records matching the filter, newest first.
func (s *AuditService) ListAuditRecords(ctx context.Context, filter domain.AuditRecordFilter, limit int, nextToken *string) ([]domain.AuditRecord, *string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	records, newNextToken, err := s.auditRepo.ListAuditRecords(ctx, filter, limit, nextToken)
	if err != nil {
		logger.Error("Failed to list audit records", "error", err)
		return nil, nil, fmt.Errorf("failed to list audit records: %w", err)
	}
	return records, newNextToken, nil
}
