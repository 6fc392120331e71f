package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/safebank/bank_ledger_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to provision a new account.
type CreateAccountRequest struct {
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=SAV CHK BUS CC"`
	BankName       string             `json:"bankName" binding:"required"`
	InitialBalance decimal.Decimal    `json:"initialBalance" binding:"omitempty,gte=0"` // Defaults to zero
}

// UpdateAccountRequest defines the fields an account holder may change.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	BankName *string `json:"bankName"` // Optional: new institution name
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountNumber string             `json:"accountNumber"`
	HolderID      string             `json:"holderID"`
	AccountType   domain.AccountType `json:"accountType"`
	BankName      string             `json:"bankName"`
	Balance       decimal.Decimal    `json:"balance"`
	CreatedAt     time.Time          `json:"createdAt"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountNumber: acc.AccountNumber,
		HolderID:      acc.HolderID,
		AccountType:   acc.AccountType,
		BankName:      acc.BankName,
		Balance:       acc.Balance,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
