package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/safebank/bank_ledger_app/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByNumber retrieves a specific account by its unique account number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// ListAccountsByHolder retrieves a paginated list of accounts owned by a holder.
	ListAccountsByHolder(ctx context.Context, holderID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's descriptive fields.
	// Balance changes never go through this method; see AccountTransactionSupport.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account. Administrative path only.
	DeleteAccount(ctx context.Context, accountNumber string) error
}

// AccountTransactionSupport defines the operations balance mutations are built on.
type AccountTransactionSupport interface {
	// FindAccountsByNumbersForUpdate selects accounts in deterministic
	// account-number order and locks the rows for update within a transaction.
	FindAccountsByNumbersForUpdate(ctx context.Context, tx pgx.Tx, accountNumbers []string) (map[string]domain.Account, error)

	// ApplyBalanceChangesInTx applies signed balance deltas to the given
	// accounts within a transaction. Rows must already be locked.
	ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
