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

// auditHandler exposes the read-only audit log query endpoint.
type auditHandler struct {
	auditService portssvc.AuditReader
}

// registerAuditRoutes registers the audit log routes.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditReader) {
	h := &auditHandler{auditService: auditService}

	rg.GET("/audit-logs", h.listAuditRecords)
}

// listAuditRecords returns a filtered, paginated page of the audit trail,
// newest first.
func (h *auditHandler) listAuditRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAuditRecordsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListAuditRecords", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	records, nextToken, err := h.auditService.ListAuditRecords(c.Request.Context(), params.ToAuditRecordFilter(), params.Limit, params.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid pagination token", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list audit records from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list audit records"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListAuditRecordsResponse(records, nextToken))
}
