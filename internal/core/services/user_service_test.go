package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/safebank/bank_ledger_app/internal/apperrors"
	"github.com/safebank/bank_ledger_app/internal/core/domain"
	"github.com/safebank/bank_ledger_app/internal/core/services"
	"github.com/safebank/bank_ledger_app/internal/dto"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockUserRepository
	mockAudit *MockAuditRecorder
	service   *services.UserService
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.mockAudit = new(MockAuditRecorder)
	suite.service = services.NewUserService(suite.mockRepo, suite.mockAudit)
}

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username:  "jdoe",
		Email:     "jdoe@example.com",
		FirstName: "Jo",
		LastName:  "Doe",
		Password:  "correct-horse-battery",
	}

	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		// The stored hash must verify against the plaintext and never equal it
		return u.Username == "jdoe" &&
			u.PasswordHash != req.Password &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) == nil
	})).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, domain.ActionUserCreated, domain.StatusSuccess, "jdoe").
		Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.Equal("jdoe", user.Username)
	suite.WithinDuration(time.Now(), user.CreatedAt, time.Second)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_Duplicate() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username:  "jdoe",
		Email:     "jdoe@example.com",
		FirstName: "Jo",
		LastName:  "Doe",
		Password:  "correct-horse-battery",
	}

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Return(apperrors.ErrDuplicate).Once()
	suite.mockAudit.On("Record", ctx, domain.ActionUserCreated, domain.StatusFailure, mock.AnythingOfType("string")).
		Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(user)
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	suite.Require().NoError(err)

	stored := &domain.User{
		UserID:       uuid.NewString(),
		Username:     "jdoe",
		PasswordHash: string(hash),
	}
	suite.mockRepo.On("FindUserByUsername", ctx, "jdoe").Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, "jdoe", "secret-password")

	suite.Require().NoError(err)
	suite.Equal(stored.UserID, user.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	suite.Require().NoError(err)

	stored := &domain.User{
		UserID:       uuid.NewString(),
		Username:     "jdoe",
		PasswordHash: string(hash),
	}
	suite.mockRepo.On("FindUserByUsername", ctx, "jdoe").Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, "jdoe", "wrong-password")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(user)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownUsername() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.AuthenticateUser(ctx, "ghost", "whatever")

	// Unknown users report the same error as a wrong password
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(user)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
