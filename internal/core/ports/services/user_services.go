package services

import (
	"context"

	"github.com/safebank/bank_ledger_app/internal/core/domain"
	"github.com/safebank/bank_ledger_app/internal/dto"
)

// UserSvcFacade covers holder registration and lookup.
type UserSvcFacade interface {
	// CreateUser registers a new user with a bcrypt-hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// GetUserByID retrieves a user by their unique identifier.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)

	// AuthenticateUser verifies username/password and returns the user on success.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)
}
