package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/safebank/bank_ledger_app/internal/apperrors"
	"github.com/safebank/bank_ledger_app/internal/core/domain"
	"github.com/safebank/bank_ledger_app/internal/dto"
	"github.com/safebank/bank_ledger_app/internal/middleware"
	"github.com/safebank/bank_ledger_app/internal/utils"
)

const testJWTSecret = "test-secret"

// MockLedgerService is a mock type for the LedgerSvcFacade interface
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber, amount, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber, amount, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// MockTransferService is a mock type for the TransferSvcFacade interface
type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) Transfer(ctx context.Context, fromNumber, toNumber string, amount decimal.Decimal, userID string) (*domain.Account, error) {
	args := m.Called(ctx, fromNumber, toNumber, amount, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

type LedgerHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockLedger   *MockLedgerService
	mockTransfer *MockTransferService
	authHeader   string
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	registerValidators()

	suite.mockLedger = new(MockLedgerService)
	suite.mockTransfer = new(MockTransferService)

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(testJWTSecret))
	registerLedgerRoutes(v1, suite.mockLedger, suite.mockTransfer)

	token, err := utils.GenerateJWT("user-1", testJWTSecret, time.Minute, "test")
	require.NoError(suite.T(), err)
	suite.authHeader = "Bearer " + token
}

func (suite *LedgerHandlerTestSuite) doRequest(path string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", suite.authHeader)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *LedgerHandlerTestSuite) TestDeposit_Success() {
	account := &domain.Account{
		AccountNumber: "ACC000000000001",
		Balance:       decimal.NewFromInt(150),
	}
	suite.mockLedger.On("Deposit", mock.Anything, "ACC000000000001", mock.MatchedBy(func(amount decimal.Decimal) bool {
		return amount.Equal(decimal.NewFromInt(100))
	}), "user-1").Return(account, nil).Once()

	w := suite.doRequest("/api/v1/accounts/ACC000000000001/deposit", gin.H{"amount": "100"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("ACC000000000001", resp.AccountNumber)
	suite.True(resp.NewBalance.Equal(decimal.NewFromInt(150)))
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestDeposit_RejectsNonPositiveAmount() {
	w := suite.doRequest("/api/v1/accounts/ACC000000000001/deposit", gin.H{"amount": "0"})

	// Binding validation rejects it before the service is reached
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "Deposit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestDeposit_Unauthorized() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/ACC000000000001/deposit", bytes.NewReader([]byte(`{"amount":"10"}`)))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestWithdraw_InsufficientFunds() {
	suite.mockLedger.On("Withdraw", mock.Anything, "ACC000000000001", mock.Anything, "user-1").
		Return(nil, apperrors.ErrInsufficientFunds).Once()

	w := suite.doRequest("/api/v1/accounts/ACC000000000001/withdraw", gin.H{"amount": "100"})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestTransfer_Success() {
	account := &domain.Account{
		AccountNumber: "ACC000000000001",
		Balance:       decimal.NewFromInt(60),
	}
	suite.mockTransfer.On("Transfer", mock.Anything, "ACC000000000001", "ACC000000000002", mock.MatchedBy(func(amount decimal.Decimal) bool {
		return amount.Equal(decimal.NewFromInt(40))
	}), "user-1").Return(account, nil).Once()

	w := suite.doRequest("/api/v1/accounts/ACC000000000001/transfer", gin.H{
		"toAccount": "ACC000000000002",
		"amount":    "40",
	})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.NewBalance.Equal(decimal.NewFromInt(60)))
	suite.mockTransfer.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestTransfer_AccountNotFound() {
	suite.mockTransfer.On("Transfer", mock.Anything, "ACC000000000001", "ACC000000000404", mock.Anything, "user-1").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest("/api/v1/accounts/ACC000000000001/transfer", gin.H{
		"toAccount": "ACC000000000404",
		"amount":    "10",
	})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestTransfer_MissingDestination() {
	w := suite.doRequest("/api/v1/accounts/ACC000000000001/transfer", gin.H{"amount": "10"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTransfer.AssertNotCalled(suite.T(), "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLedgerHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
