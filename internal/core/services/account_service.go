package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/safebank/bank_ledger_app/internal/apperrors"
	"github.com/safebank/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/safebank/bank_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/safebank/bank_ledger_app/internal/core/ports/services"
	"github.com/safebank/bank_ledger_app/internal/dto"
	"github.com/safebank/bank_ledger_app/internal/middleware"
	"github.com/safebank/bank_ledger_app/internal/utils"
)

// accountNumberAttempts bounds the retry loop on generated-number collisions.
const accountNumberAttempts = 3

// AccountService handles account provisioning and lifecycle.
type AccountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	auditSvc    portssvc.AuditRecorder
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, auditSvc portssvc.AuditRecorder) *AccountService {
	return &AccountService{accountRepo: accountRepo, auditSvc: auditSvc}
}

// CreateAccount provisions a new account for the holder. The account number is
// generated; on the rare collision with an existing number the save is retried
// with a fresh one.
func (s *AccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, holderID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.InitialBalance.IsNegative() {
		err := fmt.Errorf("%w: initial balance cannot be negative", apperrors.ErrInvalidAmount)
		s.recordOutcome(ctx, domain.ActionAccountCreated, domain.StatusFailure, domain.FailureDetails("account for "+holderID, err))
		return nil, err
	}

	now := time.Now()
	account := domain.Account{
		HolderID:    holderID,
		AccountType: req.AccountType,
		BankName:    req.BankName,
		Balance:     req.InitialBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     holderID,
			LastUpdatedAt: now,
			LastUpdatedBy: holderID,
		},
	}

	var saveErr error
	for attempt := 0; attempt < accountNumberAttempts; attempt++ {
		number, err := utils.GenerateAccountNumber()
		if err != nil {
			return nil, fmt.Errorf("failed to generate account number: %w", err)
		}
		account.AccountNumber = number

		saveErr = s.accountRepo.SaveAccount(ctx, account)
		if saveErr == nil {
			break
		}
		if !errors.Is(saveErr, apperrors.ErrDuplicate) {
			break
		}
		logger.Warn("Generated account number collided, retrying", "attempt", attempt+1)
	}
	if saveErr != nil {
		s.recordOutcome(ctx, domain.ActionAccountCreated, domain.StatusFailure, domain.FailureDetails("account for "+holderID, saveErr))
		return nil, fmt.Errorf("failed to create account: %w", saveErr)
	}

	s.recordOutcome(ctx, domain.ActionAccountCreated, domain.StatusSuccess, account.AccountNumber)
	logger.Info("Account created", "account_number", account.AccountNumber, "holder_id", holderID)
	return &account, nil
}

// GetAccountByNumber retrieves a single account.
func (s *AccountService) GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountNumber)
		}
		return nil, fmt.Errorf("failed to get account %s: %w", accountNumber, err)
	}
	return account, nil
}

// ListAccountsByHolder retrieves a paginated list of the holder's accounts.
func (s *AccountService) ListAccountsByHolder(ctx context.Context, holderID string, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByHolder(ctx, holderID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for holder %s: %w", holderID, err)
	}
	return accounts, nil
}

// UpdateAccount changes an account's descriptive fields. Balance is never
// touched here; that goes through the ledger service.
func (s *AccountService) UpdateAccount(ctx context.Context, accountNumber string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		s.recordOutcome(ctx, domain.ActionAccountUpdated, domain.StatusFailure, domain.FailureDetails(accountNumber, err))
		return nil, err
	}

	if req.BankName != nil {
		account.BankName = *req.BankName
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.recordOutcome(ctx, domain.ActionAccountUpdated, domain.StatusFailure, domain.FailureDetails(accountNumber, err))
		return nil, fmt.Errorf("failed to update account %s: %w", accountNumber, err)
	}

	s.recordOutcome(ctx, domain.ActionAccountUpdated, domain.StatusSuccess, accountNumber)
	logger.Info("Account updated", "account_number", accountNumber)
	return account, nil
}

// DeleteAccount removes an account. Deletion is refused while the balance is
// non-zero: funds must be withdrawn or transferred out first.
func (s *AccountService) DeleteAccount(ctx context.Context, accountNumber string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		s.recordOutcome(ctx, domain.ActionAccountDeleted, domain.StatusFailure, domain.FailureDetails(accountNumber, err))
		return err
	}

	if !account.Balance.IsZero() {
		err := fmt.Errorf("%w: account %s still holds %s", apperrors.ErrValidation, accountNumber, account.Balance.StringFixed(2))
		s.recordOutcome(ctx, domain.ActionAccountDeleted, domain.StatusFailure, domain.FailureDetails(accountNumber, err))
		return err
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountNumber); err != nil {
		s.recordOutcome(ctx, domain.ActionAccountDeleted, domain.StatusFailure, domain.FailureDetails(accountNumber, err))
		return fmt.Errorf("failed to delete account %s: %w", accountNumber, err)
	}

	s.recordOutcome(ctx, domain.ActionAccountDeleted, domain.StatusSuccess, accountNumber)
	logger.Info("Account deleted", "account_number", accountNumber)
	return nil
}

// recordOutcome appends a lifecycle audit record; logging the failure to
// record is all we can do without failing the primary operation.
func (s *AccountService) recordOutcome(ctx context.Context, action domain.ActionType, status domain.ActionStatus, details string) {
	if err := s.auditSvc.Record(ctx, action, status, details); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to record account lifecycle audit entry", "action", action, "error", err)
	}
}
