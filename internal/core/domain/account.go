package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the product category of a bank account.
type AccountType string

const (
	Savings    AccountType = "SAV"
	Checking   AccountType = "CHK"
	Business   AccountType = "BUS"
	CreditCard AccountType = "CC"
)

// Account represents a bank account within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountNumber string          `json:"accountNumber"` // Unique, immutable once assigned
	HolderID      string          `json:"holderID"`      // FK -> users.user_id (NON-NULL)
	AccountType   AccountType     `json:"accountType"`   // SAV, CHK, BUS, CC
	BankName      string          `json:"bankName"`      // Institution name
	Balance       decimal.Decimal `json:"balance"`       // Never negative; fixed-point decimal
	AuditFields                   // Embed CreatedAt, CreatedBy, etc.
}
