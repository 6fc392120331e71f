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

// TransferService moves funds between two accounts as one atomic unit. Both
// balance changes and the SUCCESS audit records commit in a single database
// transaction; there is no observable state where only one leg applied.
type TransferService struct {
	accountRepo portsrepo.AccountRepositoryWithTx
	auditSvc    portssvc.AuditRecorder
}

// NewTransferService creates a new TransferService.
func NewTransferService(accountRepo portsrepo.AccountRepositoryWithTx, auditSvc portssvc.AuditRecorder) *TransferService {
	return &TransferService{accountRepo: accountRepo, auditSvc: auditSvc}
}

// Transfer withdraws amount from fromNumber and deposits it into toNumber.
// A PENDING record is made durable before any mutation; the outcome records
// for both legs and the overall transfer follow, either inside the committing
// transaction (success) or outside it (failure).
func (s *TransferService) Transfer(ctx context.Context, fromNumber, toNumber string, amount decimal.Decimal, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	details := domain.TransferDetails(fromNumber, toNumber, amount)

	// The intent record is written first so even a crash mid-transfer leaves
	// evidence of the attempt.
	if err := s.auditSvc.Record(ctx, domain.ActionTransfer, domain.StatusPending, details); err != nil {
		return nil, err
	}

	if fromNumber == toNumber {
		err := fmt.Errorf("%w: source and destination accounts must differ", apperrors.ErrValidation)
		s.recordFailure(ctx, fromNumber, toNumber, amount, err)
		return nil, err
	}
	if !amount.IsPositive() {
		err := fmt.Errorf("%w: transfer amount must be positive, got %s", apperrors.ErrInvalidAmount, amount)
		s.recordFailure(ctx, fromNumber, toNumber, amount, err)
		return nil, err
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		s.recordFailure(ctx, fromNumber, toNumber, amount, err)
		return nil, err
	}
	defer func() {
		if rbErr := s.accountRepo.Rollback(ctx, tx); rbErr != nil {
			logger.Error("Failed to rollback transfer transaction", "error", rbErr)
		}
	}()

	// Locks are taken in ascending account-number order inside the repository,
	// so concurrent opposite-direction transfers cannot deadlock.
	locked, err := s.accountRepo.FindAccountsByNumbersForUpdate(ctx, tx, []string{fromNumber, toNumber})
	if err != nil {
		s.recordFailure(ctx, fromNumber, toNumber, amount, err)
		return nil, err
	}
	source := locked[fromNumber]

	if source.Balance.LessThan(amount) {
		err := fmt.Errorf("%w: balance %s is less than transfer amount %s",
			apperrors.ErrInsufficientFunds, source.Balance.StringFixed(2), amount.StringFixed(2))
		s.recordFailure(ctx, fromNumber, toNumber, amount, err)
		return nil, err
	}

	now := time.Now()
	changes := map[string]decimal.Decimal{
		fromNumber: amount.Neg(),
		toNumber:   amount,
	}
	if err := s.accountRepo.ApplyBalanceChangesInTx(ctx, tx, changes, userID, now); err != nil {
		s.recordFailure(ctx, fromNumber, toNumber, amount, err)
		return nil, err
	}

	// Leg records plus the final outcome, committed with the balance changes.
	outcome := []domain.AuditRecord{
		domain.NewAuditRecord(uuid.NewString(), domain.ActionWithdrawal, domain.StatusSuccess, domain.WithdrawalDetails(fromNumber, amount), now),
		domain.NewAuditRecord(uuid.NewString(), domain.ActionDeposit, domain.StatusSuccess, domain.DepositDetails(toNumber, amount), now),
		domain.NewAuditRecord(uuid.NewString(), domain.ActionTransfer, domain.StatusSuccess, details, now),
	}
	if err := s.auditSvc.RecordInTx(ctx, tx, outcome); err != nil {
		s.recordFailure(ctx, fromNumber, toNumber, amount, err)
		return nil, err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		s.recordFailure(ctx, fromNumber, toNumber, amount, err)
		return nil, err
	}

	source.Balance = source.Balance.Sub(amount)
	source.LastUpdatedAt = now
	source.LastUpdatedBy = userID

	logger.Info("Transfer completed",
		"from_account", fromNumber,
		"to_account", toNumber,
		"amount", amount,
		"source_balance", source.Balance)
	return &source, nil
}

// recordFailure marks the withdrawal leg and the overall transfer as FAILURE.
// Written outside the transaction so a rollback cannot erase them. The deposit
// leg gets no record: it was never attempted.
func (s *TransferService) recordFailure(ctx context.Context, fromNumber, toNumber string, amount decimal.Decimal, cause error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	legDetails := domain.FailureDetails(domain.WithdrawalDetails(fromNumber, amount), cause)
	if err := s.auditSvc.Record(ctx, domain.ActionWithdrawal, domain.StatusFailure, legDetails); err != nil {
		logger.Error("Failed to record withdrawal leg failure", "error", err)
	}

	transferDetails := domain.FailureDetails(domain.TransferDetails(fromNumber, toNumber, amount), cause)
	if err := s.auditSvc.Record(ctx, domain.ActionTransfer, domain.StatusFailure, transferDetails); err != nil {
		logger.Error("Failed to record transfer failure", "error", err)
	}
}
