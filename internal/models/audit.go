package models

import "time"

// AuditRecord is the persistence shape of one audit trail entry.
// Rows in audit_logs are insert-only.
type AuditRecord struct {
	AuditID   string    `db:"audit_id"`
	Action    string    `db:"action"`
	Status    string    `db:"status"`
	Details   string    `db:"details"`
	Timestamp time.Time `db:"timestamp"`
}
