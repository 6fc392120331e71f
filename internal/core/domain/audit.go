package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ActionType enumerates the kinds of actions the audit trail records.
type ActionType string

const (
	ActionUserCreated    ActionType = "USER_CREATED"
	ActionDeposit        ActionType = "DEPOSIT"
	ActionWithdrawal     ActionType = "WITHDRAWAL"
	ActionTransfer       ActionType = "TRANSFER"
	ActionAccountCreated ActionType = "ACCOUNT_CREATED"
	ActionAccountUpdated ActionType = "ACCOUNT_UPDATED"
	ActionAccountDeleted ActionType = "ACCOUNT_DELETED"
)

// ActionStatus indicates the outcome of a recorded action.
// A causal step is never both SUCCESS and FAILURE.
type ActionStatus string

const (
	StatusPending ActionStatus = "PENDING"
	StatusSuccess ActionStatus = "SUCCESS"
	StatusFailure ActionStatus = "FAILURE"
)

// AuditRecord is an immutable entry describing one attempted action and its
// outcome. Records are append-only: no update or delete path exists anywhere
// in the codebase.
type AuditRecord struct {
	AuditID   string       `json:"auditID"`   // Primary Key (UUID)
	Action    ActionType   `json:"action"`    // What was attempted
	Status    ActionStatus `json:"status"`    // PENDING, SUCCESS or FAILURE
	Details   string       `json:"details"`   // Human-readable summary, e.g. "ACC1 -> 100.00 -> ACC2"
	Timestamp time.Time    `json:"timestamp"` // Assigned at write time
}

// NewAuditRecord builds a record stamped with now. The caller supplies the ID
// so records created in one batch share a deterministic ordering key.
func NewAuditRecord(id string, action ActionType, status ActionStatus, details string, now time.Time) AuditRecord {
	return AuditRecord{
		AuditID:   id,
		Action:    action,
		Status:    status,
		Details:   details,
		Timestamp: now,
	}
}

// AuditRecordFilter narrows an audit log query. Nil fields match everything.
type AuditRecordFilter struct {
	Action *ActionType
	Status *ActionStatus
	From   *time.Time // Inclusive lower bound on Timestamp
	To     *time.Time // Exclusive upper bound on Timestamp
}

// Detail text formats mirror the legacy audit trail so existing log
// consumers keep parsing.

// DepositDetails renders the deposit summary, e.g. "100.00 -> ACC1".
func DepositDetails(accountNumber string, amount decimal.Decimal) string {
	return fmt.Sprintf("%s -> %s", amount.StringFixed(2), accountNumber)
}

// WithdrawalDetails renders the withdrawal summary, e.g. "ACC1 -> 100.00".
func WithdrawalDetails(accountNumber string, amount decimal.Decimal) string {
	return fmt.Sprintf("%s -> %s", accountNumber, amount.StringFixed(2))
}

// TransferDetails renders the transfer summary, e.g. "ACC1 -> 100.00 -> ACC2".
func TransferDetails(fromNumber, toNumber string, amount decimal.Decimal) string {
	return fmt.Sprintf("%s -> %s -> %s", fromNumber, amount.StringFixed(2), toNumber)
}

// FailureDetails appends the error summary to a detail line.
func FailureDetails(details string, err error) string {
	return fmt.Sprintf("%s error: %s", details, err.Error())
}
