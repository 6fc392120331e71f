package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/safebank/bank_ledger_app/internal/apperrors"
	"github.com/safebank/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/safebank/bank_ledger_app/internal/core/ports/repositories"
	"github.com/safebank/bank_ledger_app/internal/models"
	"github.com/safebank/bank_ledger_app/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

const accountColumns = `account_number, holder_id, account_type, bank_name, balance, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var modelAcc models.Account
	err := row.Scan(
		&modelAcc.AccountNumber,
		&modelAcc.HolderID,
		&modelAcc.AccountType,
		&modelAcc.BankName,
		&modelAcc.Balance,
		&modelAcc.CreatedAt,
		&modelAcc.CreatedBy,
		&modelAcc.LastUpdatedAt,
		&modelAcc.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	domainAcc := mapping.ToDomainAccount(modelAcc)
	return &domainAcc, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (account_number, holder_id, account_type, bank_name, balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountNumber,
		modelAcc.HolderID,
		modelAcc.AccountType,
		modelAcc.BankName,
		modelAcc.Balance,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: account with number %s already exists", apperrors.ErrDuplicate, modelAcc.AccountNumber)
			}
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountNumber, err)
	}
	return nil
}

// FindAccountByNumber retrieves an account by its account number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1;`

	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by number %s: %w", accountNumber, err)
	}
	return acc, nil
}

// ListAccountsByHolder retrieves a paginated list of accounts owned by a holder.
func (r *PgxAccountRepository) ListAccountsByHolder(ctx context.Context, holderID string, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE holder_id = $1
		ORDER BY created_at, account_number
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.Pool.Query(ctx, query, holderID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for holder %s: %w", holderID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for holder %s: %w", holderID, err)
		}
		accounts = append(accounts, *acc)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows for holder %s: %w", holderID, rows.Err())
	}

	return accounts, nil
}

// UpdateAccount updates an existing account's descriptive fields.
// Balance is deliberately excluded; balance mutation goes through ApplyBalanceChangesInTx.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET bank_name = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_number = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountNumber,
		modelAcc.BankName,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", modelAcc.AccountNumber, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account row. The service refuses deletion while the
// balance is non-zero; the audit trail keeps the history.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountNumber string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE account_number = $1;`, accountNumber)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountNumber, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAccountsByNumbersForUpdate retrieves accounts by number and locks the rows
// for update. Must be called within a transaction. Rows are locked in ascending
// account-number order so two transfers touching the same pair of accounts in
// opposite directions cannot deadlock.
func (r *PgxAccountRepository) FindAccountsByNumbersForUpdate(ctx context.Context, tx pgx.Tx, accountNumbers []string) (map[string]domain.Account, error) {
	if len(accountNumbers) == 0 {
		return map[string]domain.Account{}, nil
	}

	sorted := make([]string, len(accountNumbers))
	copy(sorted, accountNumbers)
	sort.Strings(sorted)

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_number = ANY($1)
		ORDER BY account_number
		FOR UPDATE;
	`

	rows, err := tx.Query(ctx, query, sorted)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by numbers for update: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accountsMap[acc.AccountNumber] = *acc
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}

	// Check if all requested accounts were found and locked
	if len(accountsMap) != len(accountNumbers) {
		missing := []string{}
		for _, number := range sorted {
			if _, found := accountsMap[number]; !found {
				missing = append(missing, number)
			}
		}
		slog.WarnContext(ctx, "Some accounts requested for update lock were not found", "missing_accounts", missing)
		return nil, fmt.Errorf("%w: could not find or lock all requested accounts, missing: %v", apperrors.ErrNotFound, missing)
	}

	return accountsMap, nil
}

// ApplyBalanceChangesInTx applies signed balance deltas within a transaction.
// Callers must have locked the rows first via FindAccountsByNumbersForUpdate.
// The accounts table carries a CHECK (balance >= 0) constraint as a final
// guard; a violation here means a caller skipped the funds check.
func (r *PgxAccountRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_number = $1;
	`

	batch := &pgx.Batch{}
	queued := 0
	for accountNumber, delta := range balanceChanges {
		if delta.IsZero() {
			continue
		}
		batch.Queue(query, accountNumber, delta, now, userID)
		queued++
	}
	if queued == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23514" { // Check violation: balance would go negative
			return fmt.Errorf("%w: balance update rejected by non-negative constraint", apperrors.ErrInsufficientFunds)
		}
		return fmt.Errorf("failed to apply balance changes: %w", err)
	}

	return nil
}
