package services

import (
	"context"

	"github.com/SscSPs/budget_approval_app/internal/core/domain"
)

// AuditSvcFacade owns the append-only approval log. It is the only component
// permitted to append to it.
type AuditSvcFacade interface {
	// Record appends an immutable entry for the decision and the resulting
	// budget totals. Appends are serialized and atomic; re-recording the same
	// decision identity returns the original entry rather than a duplicate.
	Record(ctx context.Context, decision domain.Decision, summary domain.BudgetSummary) (*domain.AuditLogEntry, error)

	// QueryByBudgetID returns the entries for a budget ordered by timestamp
	// ascending. An unreadable log surfaces apperrors.ErrStorage.
	QueryByBudgetID(ctx context.Context, budgetID string) ([]domain.AuditLogEntry, error)
}
