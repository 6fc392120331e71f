package services

import (
	"context"

	"github.com/safebank/bank_ledger_app/internal/core/domain"
	"github.com/safebank/bank_ledger_app/internal/dto"
)

// AccountSvcFacade covers account provisioning and lifecycle. Balance
// mutation is deliberately excluded; that belongs to LedgerSvcFacade.
type AccountSvcFacade interface {
	// CreateAccount provisions a new account for the holder with a generated
	// account number and the requested (default zero) initial balance.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, holderID string) (*domain.Account, error)

	// GetAccountByNumber retrieves a single account.
	GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// ListAccountsByHolder retrieves a paginated list of the holder's accounts.
	ListAccountsByHolder(ctx context.Context, holderID string, limit int, offset int) ([]domain.Account, error)

	// UpdateAccount changes an account's descriptive fields.
	UpdateAccount(ctx context.Context, accountNumber string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount removes an account. Refused while the balance is non-zero.
	DeleteAccount(ctx context.Context, accountNumber string, userID string) error
}
