package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safebank/bank_ledger_app/internal/apperrors"
	portssvc "github.com/safebank/bank_ledger_app/internal/core/ports/services"
	"github.com/safebank/bank_ledger_app/internal/dto"
	"github.com/safebank/bank_ledger_app/internal/middleware"
)

// ledgerHandler handles balance mutation requests.
type ledgerHandler struct {
	ledgerService   portssvc.LedgerSvcFacade
	transferService portssvc.TransferSvcFacade
}

// registerLedgerRoutes registers the deposit, withdraw and transfer routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, transferService portssvc.TransferSvcFacade) {
	h := &ledgerHandler{ledgerService: ledgerService, transferService: transferService}

	accounts := rg.Group("/accounts/:accountNumber")
	{
		accounts.POST("/deposit", h.deposit)
		accounts.POST("/withdraw", h.withdraw)
		accounts.POST("/transfer", h.transfer)
	}
}

// deposit adds funds to the account in the path.
func (h *ledgerHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Deposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.ledgerService.Deposit(c.Request.Context(), accountNumber, req.Amount, userID)
	if err != nil {
		h.respondLedgerError(c, logger, "deposit", err)
		return
	}

	logger.Info("Deposit applied", slog.String("account_number", accountNumber))
	c.JSON(http.StatusOK, dto.BalanceResponse{AccountNumber: account.AccountNumber, NewBalance: account.Balance})
}

// withdraw removes funds from the account in the path.
func (h *ledgerHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Withdraw", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.ledgerService.Withdraw(c.Request.Context(), accountNumber, req.Amount, userID)
	if err != nil {
		h.respondLedgerError(c, logger, "withdrawal", err)
		return
	}

	logger.Info("Withdrawal applied", slog.String("account_number", accountNumber))
	c.JSON(http.StatusOK, dto.BalanceResponse{AccountNumber: account.AccountNumber, NewBalance: account.Balance})
}

// transfer moves funds from the account in the path to the one in the body.
func (h *ledgerHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fromNumber := c.Param("accountNumber")

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.transferService.Transfer(c.Request.Context(), fromNumber, req.ToAccount, req.Amount, userID)
	if err != nil {
		h.respondLedgerError(c, logger, "transfer", err)
		return
	}

	logger.Info("Transfer applied", slog.String("from_account", fromNumber), slog.String("to_account", req.ToAccount))
	c.JSON(http.StatusOK, dto.BalanceResponse{AccountNumber: account.AccountNumber, NewBalance: account.Balance})
}

// respondLedgerError maps ledger errors onto HTTP statuses.
func (h *ledgerHandler) respondLedgerError(c *gin.Context, logger *slog.Logger, operation string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidAmount), errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error in "+operation, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		logger.Warn("Insufficient funds for "+operation, slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Account not found for "+operation, slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
	case errors.Is(err, apperrors.ErrStorageUnavailable):
		logger.Error("Storage unavailable during "+operation, slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
	default:
		logger.Error("Failed to apply "+operation, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply " + operation})
	}
}
