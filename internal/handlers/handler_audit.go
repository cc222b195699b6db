package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/budget_approval_app/internal/apperrors"
	portssvc "github.com/SscSPs/budget_approval_app/internal/core/ports/services"
	"github.com/SscSPs/budget_approval_app/internal/dto"
	"github.com/SscSPs/budget_approval_app/internal/middleware"
)

// auditHandler serves the approval log query side.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditHandler(as portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{
		auditService: as,
	}
}

// registerAuditRoutes registers routes for querying the approval log.
func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)

	budgets := rg.Group("/budgets")
	{
		budgets.GET("/:budgetID/audit", h.getAuditLog)
	}
}

// getAuditLog returns the decision history of one budget, oldest first.
func (h *auditHandler) getAuditLog(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID := c.Param("budgetID")

	entries, err := h.auditService.QueryByBudgetID(c.Request.Context(), budgetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStorage) {
			logger.Error("Audit log unreadable", slog.String("budget_id", budgetID), slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Audit log is unavailable"})
		} else {
			logger.Error("Failed to query audit log", slog.String("budget_id", budgetID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query audit log"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"budgetID": budgetID,
		"entries":  dto.ToAuditLogListResponse(entries),
	})
}
