package models

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

// Account is the persistence shape of a bank account.
// Balance uses github.com/shopspring/decimal; never binary floating point.
type Account struct {
	AccountNumber string          `db:"account_number"`
	HolderID      string          `db:"holder_id"`
	AccountType   AccountType     `db:"account_type"`
	BankName      string          `db:"bank_name"`
	Balance       decimal.Decimal `db:"balance"`
	AuditFields                   // Embed common audit fields
}
