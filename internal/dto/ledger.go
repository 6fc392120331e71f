package dto

import (
	"github.com/shopspring/decimal"
)

// AmountRequest carries the amount for a deposit or withdrawal.
// The gt=0 tag is enforced through a custom validator type func registered
// for decimal.Decimal; a second check in the service guards non-HTTP callers.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,gt=0"`
}

// TransferRequest carries the destination and amount for a transfer.
type TransferRequest struct {
	ToAccount string          `json:"toAccount" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required,gt=0"`
}

// BalanceResponse is returned by deposit, withdraw and transfer operations.
// Balance is always the source account's balance after the operation.
type BalanceResponse struct {
	AccountNumber string          `json:"accountNumber"`
	NewBalance    decimal.Decimal `json:"newBalance"`
}
