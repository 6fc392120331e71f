package dto

import (
	"time"

	"github.com/safebank/bank_ledger_app/internal/core/domain"
)

// ListAuditRecordsParams defines query parameters for the audit log listing.
type ListAuditRecordsParams struct {
	Action    string     `form:"action" binding:"omitempty,oneof=USER_CREATED DEPOSIT WITHDRAWAL TRANSFER ACCOUNT_CREATED ACCOUNT_UPDATED ACCOUNT_DELETED"`
	Status    string     `form:"status" binding:"omitempty,oneof=PENDING SUCCESS FAILURE"`
	From      *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To        *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit     int        `form:"limit,default=50"`
	NextToken *string    `form:"nextToken"`
}

// ToAuditRecordFilter converts the query params to a domain filter.
func (p ListAuditRecordsParams) ToAuditRecordFilter() domain.AuditRecordFilter {
	filter := domain.AuditRecordFilter{From: p.From, To: p.To}
	if p.Action != "" {
		action := domain.ActionType(p.Action)
		filter.Action = &action
	}
	if p.Status != "" {
		status := domain.ActionStatus(p.Status)
		filter.Status = &status
	}
	return filter
}

// AuditRecordResponse defines the data returned for one audit record.
type AuditRecordResponse struct {
	AuditID   string    `json:"auditID"`
	Action    string    `json:"action"`
	Status    string    `json:"status"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// ListAuditRecordsResponse wraps a page of audit records.
type ListAuditRecordsResponse struct {
	Records   []AuditRecordResponse `json:"records"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToAuditRecordResponse converts a domain.AuditRecord to its response DTO.
func ToAuditRecordResponse(rec domain.AuditRecord) AuditRecordResponse {
	return AuditRecordResponse{
		AuditID:   rec.AuditID,
		Action:    string(rec.Action),
		Status:    string(rec.Status),
		Details:   rec.Details,
		Timestamp: rec.Timestamp,
	}
}

// ToListAuditRecordsResponse converts a page of domain records to the response shape.
func ToListAuditRecordsResponse(records []domain.AuditRecord, nextToken *string) ListAuditRecordsResponse {
	res := ListAuditRecordsResponse{
		Records:   make([]AuditRecordResponse, len(records)),
		NextToken: nextToken,
	}
	for i, rec := range records {
		res.Records[i] = ToAuditRecordResponse(rec)
	}
	return res
}
