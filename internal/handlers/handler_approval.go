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

// approvalHandler handles violation checks and decision submissions.
type approvalHandler struct {
	approvalService portssvc.ApprovalSvcFacade
}

func newApprovalHandler(as portssvc.ApprovalSvcFacade) *approvalHandler {
	return &approvalHandler{
		approvalService: as,
	}
}

// RegisterApprovalRoutes registers routes for the approval workflow.
func RegisterApprovalRoutes(rg *gin.RouterGroup, approvalService portssvc.ApprovalSvcFacade) {
	h := newApprovalHandler(approvalService)

	budgets := rg.Group("/budgets")
	{
		budgets.GET("/:budgetID/violations", h.getViolations)
		budgets.POST("/:budgetID/decisions", h.createDecision)
	}
}

// getViolations evaluates a stored budget against the configured rule set.
func (h *approvalHandler) getViolations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID := c.Param("budgetID")

	violations, err := h.approvalService.EvaluateBudget(c.Request.Context(), budgetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Budget not found for evaluation", slog.String("budget_id", budgetID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		} else {
			logger.Error("Failed to evaluate budget", slog.String("budget_id", budgetID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to evaluate budget"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"budgetID":   budgetID,
		"violations": dto.ToViolationListResponse(violations),
	})
}

// createDecision submits an operator decision for a budget.
func (h *approvalHandler) createDecision(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID := c.Param("budgetID")

	var req dto.CreateDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDecision", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	deciderUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Decider user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received decision for budget",
		slog.String("budget_id", budgetID),
		slog.String("outcome", req.Outcome),
		slog.Int("overrides", len(req.Overrides)),
	)

	result, err := h.approvalService.Decide(c.Request.Context(), budgetID, req, deciderUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Budget not found for decision", slog.String("budget_id", budgetID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error processing decision", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrStorage):
			logger.Error("Audit log unavailable, decision not recorded", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Decision could not be recorded"})
		default:
			logger.Error("Failed to process decision", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process decision"})
		}
		return
	}

	if !result.Recorded {
		// Automatic approval was blocked by violations; nothing was persisted.
		logger.Info("Automatic approval blocked by violations",
			slog.String("budget_id", budgetID),
			slog.Int("violations", len(result.Violations)),
		)
		c.JSON(http.StatusConflict, gin.H{
			"error":      "Automatic approval blocked by rule violations",
			"violations": dto.ToViolationListResponse(result.Violations),
		})
		return
	}

	c.JSON(http.StatusCreated, dto.ToDecisionResultResponse(result))
}
