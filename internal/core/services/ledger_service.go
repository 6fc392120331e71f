package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/safebank/bank_ledger_app/internal/apperrors"
	"github.com/safebank/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/safebank/bank_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/safebank/bank_ledger_app/internal/core/ports/services"
	"github.com/safebank/bank_ledger_app/internal/middleware"
)

// LedgerService applies single-account balance mutations. Every call leaves an
// audit record: SUCCESS records commit in the same transaction as the balance
// change, FAILURE records are written outside it so a rollback cannot erase them.
type LedgerService struct {
	accountRepo portsrepo.AccountRepositoryWithTx
	auditSvc    portssvc.AuditRecorder
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(accountRepo portsrepo.AccountRepositoryWithTx, auditSvc portssvc.AuditRecorder) *LedgerService {
	return &LedgerService{accountRepo: accountRepo, auditSvc: auditSvc}
}

// Deposit adds amount to the account balance.
func (s *LedgerService) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal, userID string) (*domain.Account, error) {
	details := domain.DepositDetails(accountNumber, amount)
	if !amount.IsPositive() {
		err := fmt.Errorf("%w: deposit amount must be positive, got %s", apperrors.ErrInvalidAmount, amount)
		s.recordFailure(ctx, domain.ActionDeposit, details, err)
		return nil, err
	}
	return s.applyDelta(ctx, accountNumber, amount, userID, domain.ActionDeposit, details)
}

// Withdraw subtracts amount from the account balance. The account must hold at
// least amount; partial withdrawals are never applied.
func (s *LedgerService) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal, userID string) (*domain.Account, error) {
	details := domain.WithdrawalDetails(accountNumber, amount)
	if !amount.IsPositive() {
		err := fmt.Errorf("%w: withdrawal amount must be positive, got %s", apperrors.ErrInvalidAmount, amount)
		s.recordFailure(ctx, domain.ActionWithdrawal, details, err)
		return nil, err
	}
	return s.applyDelta(ctx, accountNumber, amount.Neg(), userID, domain.ActionWithdrawal, details)
}

// applyDelta runs one signed balance change under a row lock. The delta is
// positive for deposits and negative for withdrawals; the caller has already
// validated the magnitude.
func (s *LedgerService) applyDelta(ctx context.Context, accountNumber string, delta decimal.Decimal, userID string, action domain.ActionType, details string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		s.recordFailure(ctx, action, details, err)
		return nil, err
	}
	defer func() {
		if rbErr := s.accountRepo.Rollback(ctx, tx); rbErr != nil {
			logger.Error("Failed to rollback transaction", "action", action, "error", rbErr)
		}
	}()

	locked, err := s.accountRepo.FindAccountsByNumbersForUpdate(ctx, tx, []string{accountNumber})
	if err != nil {
		s.recordFailure(ctx, action, details, err)
		return nil, err
	}
	account := locked[accountNumber]

	if delta.IsNegative() && account.Balance.Add(delta).IsNegative() {
		err := fmt.Errorf("%w: balance %s is less than requested amount %s",
			apperrors.ErrInsufficientFunds, account.Balance.StringFixed(2), delta.Abs().StringFixed(2))
		s.recordFailure(ctx, action, details, err)
		return nil, err
	}

	now := time.Now()
	changes := map[string]decimal.Decimal{accountNumber: delta}
	if err := s.accountRepo.ApplyBalanceChangesInTx(ctx, tx, changes, userID, now); err != nil {
		s.recordFailure(ctx, action, details, err)
		return nil, err
	}

	success := domain.NewAuditRecord(uuid.NewString(), action, domain.StatusSuccess, details, now)
	if err := s.auditSvc.RecordInTx(ctx, tx, []domain.AuditRecord{success}); err != nil {
		s.recordFailure(ctx, action, details, err)
		return nil, err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		s.recordFailure(ctx, action, details, err)
		return nil, err
	}

	account.Balance = account.Balance.Add(delta)
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	logger.Info("Balance change applied", "action", action, "account_number", accountNumber, "new_balance", account.Balance)
	return &account, nil
}

// recordFailure appends a FAILURE record outside the transaction. A failed
// attempt must stay visible in the trail even though the mutation rolled back.
func (s *LedgerService) recordFailure(ctx context.Context, action domain.ActionType, details string, cause error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.auditSvc.Record(ctx, action, domain.StatusFailure, domain.FailureDetails(details, cause)); err != nil {
		logger.Error("Failed to record failure audit entry", "action", action, "error", err)
	}
}
