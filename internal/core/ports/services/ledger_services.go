package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/safebank/bank_ledger_app/internal/core/domain"
)

// LedgerSvcFacade enforces the balance-mutation rules for a single account.
// Every call, successful or not, leaves at least one audit record behind.
type LedgerSvcFacade interface {
	// Deposit adds amount to the account balance. Amount must be positive.
	Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal, userID string) (*domain.Account, error)

	// Withdraw subtracts amount from the account balance. Amount must be
	// positive and must not exceed the current balance.
	Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal, userID string) (*domain.Account, error)
}

// TransferSvcFacade moves funds between two accounts as one logical unit.
type TransferSvcFacade interface {
	// Transfer withdraws amount from the source account and deposits it into
	// the destination atomically. Returns the updated source account.
	Transfer(ctx context.Context, fromNumber, toNumber string, amount decimal.Decimal, userID string) (*domain.Account, error)
}
