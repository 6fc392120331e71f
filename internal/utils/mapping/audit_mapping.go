package mapping

import (
	"github.com/safebank/bank_ledger_app/internal/core/domain"
	"github.com/safebank/bank_ledger_app/internal/models"
)

// ToModelAuditRecord converts a domain.AuditRecord to its DB model.
func ToModelAuditRecord(d domain.AuditRecord) models.AuditRecord {
	return models.AuditRecord{
		AuditID:   d.AuditID,
		Action:    string(d.Action),
		Status:    string(d.Status),
		Details:   d.Details,
		Timestamp: d.Timestamp,
	}
}

// ToDomainAuditRecord converts a DB model record back to the domain shape.
func ToDomainAuditRecord(m models.AuditRecord) domain.AuditRecord {
	return domain.AuditRecord{
		AuditID:   m.AuditID,
		Action:    domain.ActionType(m.Action),
		Status:    domain.ActionStatus(m.Status),
		Details:   m.Details,
		Timestamp: m.Timestamp,
	}
}
