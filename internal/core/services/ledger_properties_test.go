package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/safebank/bank_ledger_app/internal/apperrors"
	"github.com/safebank/bank_ledger_app/internal/core/domain"
	"github.com/safebank/bank_ledger_app/internal/core/services"
)

// fakeTx stands in for a pgx transaction. Balance deltas and audit records are
// staged on the tx and only applied on Commit, mirroring the real repository.
type fakeTx struct {
	pgx.Tx
	deltas map[string]decimal.Decimal
	staged []domain.AuditRecord
	done   bool
}

// fakeLedgerStore is an in-memory stand-in for the pgsql repositories. It
// serializes transactions with a single mutex, which is a stricter version of
// the row locking the real store does, and enforces the non-negative balance
// rule the way the CHECK constraint would.
type fakeLedgerStore struct {
	txMu     sync.Mutex
	recMu    sync.Mutex
	accounts map[string]domain.Account
	records  []domain.AuditRecord
}

func newFakeLedgerStore(accounts ...domain.Account) *fakeLedgerStore {
	s := &fakeLedgerStore{accounts: make(map[string]domain.Account)}
	for _, acc := range accounts {
		s.accounts[acc.AccountNumber] = acc
	}
	return s
}

func (s *fakeLedgerStore) Begin(ctx context.Context) (pgx.Tx, error) {
	s.txMu.Lock()
	return &fakeTx{deltas: map[string]decimal.Decimal{}}, nil
}

func (s *fakeLedgerStore) Commit(ctx context.Context, tx pgx.Tx) error {
	ft := tx.(*fakeTx)
	for number, delta := range ft.deltas {
		acc := s.accounts[number]
		acc.Balance = acc.Balance.Add(delta)
		s.accounts[number] = acc
	}
	s.appendRecords(ft.staged...)
	ft.done = true
	s.txMu.Unlock()
	return nil
}

func (s *fakeLedgerStore) Rollback(ctx context.Context, tx pgx.Tx) error {
	ft := tx.(*fakeTx)
	if !ft.done {
		ft.done = true
		s.txMu.Unlock()
	}
	return nil
}

func (s *fakeLedgerStore) FindAccountsByNumbersForUpdate(ctx context.Context, tx pgx.Tx, accountNumbers []string) (map[string]domain.Account, error) {
	result := make(map[string]domain.Account, len(accountNumbers))
	for _, number := range accountNumbers {
		acc, ok := s.accounts[number]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, number)
		}
		result[number] = acc
	}
	return result, nil
}

func (s *fakeLedgerStore) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	for number, delta := range balanceChanges {
		if s.accounts[number].Balance.Add(delta).IsNegative() {
			return fmt.Errorf("%w: balance update rejected by non-negative constraint", apperrors.ErrInsufficientFunds)
		}
	}
	ft := tx.(*fakeTx)
	ft.deltas = balanceChanges
	return nil
}

func (s *fakeLedgerStore) SaveAccount(ctx context.Context, account domain.Account) error {
	if _, exists := s.accounts[account.AccountNumber]; exists {
		return apperrors.ErrDuplicate
	}
	s.accounts[account.AccountNumber] = account
	return nil
}

func (s *fakeLedgerStore) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	acc, ok := s.accounts[accountNumber]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

func (s *fakeLedgerStore) ListAccountsByHolder(ctx context.Context, holderID string, limit int, offset int) ([]domain.Account, error) {
	var result []domain.Account
	for _, acc := range s.accounts {
		if acc.HolderID == holderID {
			result = append(result, acc)
		}
	}
	return result, nil
}

func (s *fakeLedgerStore) UpdateAccount(ctx context.Context, account domain.Account) error {
	if _, ok := s.accounts[account.AccountNumber]; !ok {
		return apperrors.ErrNotFound
	}
	s.accounts[account.AccountNumber] = account
	return nil
}

func (s *fakeLedgerStore) DeleteAccount(ctx context.Context, accountNumber string) error {
	if _, ok := s.accounts[accountNumber]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.accounts, accountNumber)
	return nil
}

// Record and RecordInTx let the fake store double as the audit recorder.

func (s *fakeLedgerStore) Record(ctx context.Context, action domain.ActionType, status domain.ActionStatus, details string) error {
	s.appendRecords(domain.NewAuditRecord(uuid.NewString(), action, status, details, time.Now()))
	return nil
}

func (s *fakeLedgerStore) RecordInTx(ctx context.Context, tx pgx.Tx, records []domain.AuditRecord) error {
	ft := tx.(*fakeTx)
	ft.staged = append(ft.staged, records...)
	return nil
}

func (s *fakeLedgerStore) appendRecords(records ...domain.AuditRecord) {
	s.recMu.Lock()
	s.records = append(s.records, records...)
	s.recMu.Unlock()
}

func (s *fakeLedgerStore) balance(accountNumber string) decimal.Decimal {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return s.accounts[accountNumber].Balance
}

func (s *fakeLedgerStore) countRecords(action domain.ActionType, status domain.ActionStatus) int {
	s.recMu.Lock()
	defer s.recMu.Unlock()
	count := 0
	for _, rec := range s.records {
		if rec.Action == action && rec.Status == status {
			count++
		}
	}
	return count
}

func TestConcurrentDepositsAllApply(t *testing.T) {
	ctx := context.Background()
	store := newFakeLedgerStore(domain.Account{AccountNumber: "ACC1", Balance: decimal.Zero})
	ledger := services.NewLedgerService(store, store)

	const workers = 50
	amount := decimal.NewFromInt(10)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := ledger.Deposit(ctx, "ACC1", amount, "user-1")
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	require.True(t, store.balance("ACC1").Equal(decimal.NewFromInt(workers*10)),
		"final balance must equal the sum of all deposits, got %s", store.balance("ACC1"))
	require.Equal(t, workers, store.countRecords(domain.ActionDeposit, domain.StatusSuccess))
}

func TestConcurrentWithdrawalsNeverOverdraw(t *testing.T) {
	ctx := context.Background()
	store := newFakeLedgerStore(domain.Account{AccountNumber: "ACC1", Balance: decimal.NewFromInt(100)})
	ledger := services.NewLedgerService(store, store)

	const workers = 10
	amount := decimal.NewFromInt(30)

	var wg sync.WaitGroup
	var succeeded int64
	var mu sync.Mutex
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := ledger.Withdraw(ctx, "ACC1", amount, "user-1"); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Only three withdrawals of 30 fit into 100
	require.EqualValues(t, 3, succeeded)
	require.True(t, store.balance("ACC1").Equal(decimal.NewFromInt(10)))
	require.False(t, store.balance("ACC1").IsNegative())
	require.Equal(t, 3, store.countRecords(domain.ActionWithdrawal, domain.StatusSuccess))
	require.Equal(t, workers-3, store.countRecords(domain.ActionWithdrawal, domain.StatusFailure))
}

func TestConcurrentTransfersConserveTotal(t *testing.T) {
	ctx := context.Background()
	store := newFakeLedgerStore(
		domain.Account{AccountNumber: "ACC1", Balance: decimal.NewFromInt(500)},
		domain.Account{AccountNumber: "ACC2", Balance: decimal.NewFromInt(500)},
	)
	transfer := services.NewTransferService(store, store)

	const workers = 20
	amount := decimal.NewFromInt(5)

	var wg sync.WaitGroup
	wg.Add(workers * 2)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, _ = transfer.Transfer(ctx, "ACC1", "ACC2", amount, "user-1")
		}()
		go func() {
			defer wg.Done()
			_, _ = transfer.Transfer(ctx, "ACC2", "ACC1", amount, "user-1")
		}()
	}
	wg.Wait()

	total := store.balance("ACC1").Add(store.balance("ACC2"))
	require.True(t, total.Equal(decimal.NewFromInt(1000)),
		"transfers must conserve the total across accounts, got %s", total)
	require.False(t, store.balance("ACC1").IsNegative())
	require.False(t, store.balance("ACC2").IsNegative())
}

func TestTransferSuccessAuditTrail(t *testing.T) {
	ctx := context.Background()
	store := newFakeLedgerStore(
		domain.Account{AccountNumber: "ACC1", Balance: decimal.NewFromInt(100)},
		domain.Account{AccountNumber: "ACC2", Balance: decimal.Zero},
	)
	transfer := services.NewTransferService(store, store)

	source, err := transfer.Transfer(ctx, "ACC1", "ACC2", decimal.NewFromInt(25), "user-1")
	require.NoError(t, err)
	require.True(t, source.Balance.Equal(decimal.NewFromInt(75)))
	require.True(t, store.balance("ACC2").Equal(decimal.NewFromInt(25)))

	require.Equal(t, 1, store.countRecords(domain.ActionTransfer, domain.StatusPending))
	require.Equal(t, 1, store.countRecords(domain.ActionWithdrawal, domain.StatusSuccess))
	require.Equal(t, 1, store.countRecords(domain.ActionDeposit, domain.StatusSuccess))
	require.Equal(t, 1, store.countRecords(domain.ActionTransfer, domain.StatusSuccess))

	require.Equal(t, "ACC1 -> 25.00 -> ACC2", store.records[len(store.records)-1].Details)
}

func TestFailedTransferLeavesNoPartialState(t *testing.T) {
	ctx := context.Background()
	store := newFakeLedgerStore(
		domain.Account{AccountNumber: "ACC1", Balance: decimal.NewFromInt(10)},
		domain.Account{AccountNumber: "ACC2", Balance: decimal.NewFromInt(20)},
	)
	transfer := services.NewTransferService(store, store)

	_, err := transfer.Transfer(ctx, "ACC1", "ACC2", decimal.NewFromInt(100), "user-1")
	require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	// Neither balance moved
	require.True(t, store.balance("ACC1").Equal(decimal.NewFromInt(10)))
	require.True(t, store.balance("ACC2").Equal(decimal.NewFromInt(20)))

	// The attempt and its failure are both on record; nothing claims success
	require.Equal(t, 1, store.countRecords(domain.ActionTransfer, domain.StatusPending))
	require.Equal(t, 1, store.countRecords(domain.ActionWithdrawal, domain.StatusFailure))
	require.Equal(t, 1, store.countRecords(domain.ActionTransfer, domain.StatusFailure))
	require.Equal(t, 0, store.countRecords(domain.ActionTransfer, domain.StatusSuccess))
	require.Equal(t, 0, store.countRecords(domain.ActionDeposit, domain.StatusSuccess))
	require.Equal(t, 0, store.countRecords(domain.ActionWithdrawal, domain.StatusSuccess))
}
