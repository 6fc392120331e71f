package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/safebank/bank_ledger_app/internal/apperrors"
	"github.com/safebank/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/safebank/bank_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/safebank/bank_ledger_app/internal/core/ports/services"
	"github.com/safebank/bank_ledger_app/internal/dto"
	"github.com/safebank/bank_ledger_app/internal/middleware"
	"github.com/safebank/bank_ledger_app/internal/utils"
)

// UserService handles holder registration and authentication.
type UserService struct {
	userRepo portsrepo.UserRepository
	auditSvc portssvc.AuditRecorder
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepository, auditSvc portssvc.AuditRecorder) *UserService {
	return &UserService{userRepo: userRepo, auditSvc: auditSvc}
}

// CreateUser registers a new user with a bcrypt-hashed password.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.recordOutcome(ctx, domain.StatusFailure, domain.FailureDetails(req.Username, err))
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.recordOutcome(ctx, domain.StatusSuccess, req.Username)
	logger.Info("User created", "user_id", user.UserID, "username", user.Username)
	return &user, nil
}

// GetUserByID retrieves a user by their unique identifier.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	return user, nil
}

// ListUsers retrieves a paginated list of users.
func (s *UserService) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	users, err := s.userRepo.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// AuthenticateUser verifies the credentials and returns the user on success.
// Unknown usernames and wrong passwords both map to ErrValidation so callers
// cannot distinguish which part was wrong.
func (s *UserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to look up user for authentication: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrValidation)
	}
	return user, nil
}

func (s *UserService) recordOutcome(ctx context.Context, status domain.ActionStatus, details string) {
	if err := s.auditSvc.Record(ctx, domain.ActionUserCreated, status, details); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to record user creation audit entry", "error", err)
	}
}
