package repositories

import (
	"context"

	"github.com/SscSPs/budget_approval_app/internal/core/domain"
)

// AuditLogAppender defines the single write operation on the approval log.
// Implementations must serialize appends, commit atomically, and be
// idempotent on the decision's dedupe key: re-recording the same decision
// identity returns the previously written entry instead of a duplicate.
type AuditLogAppender interface {
	AppendEntry(ctx context.Context, entry domain.AuditLogEntry) (*domain.AuditLogEntry, error)
}

// AuditLogReader defines read operations over the approval log.
type AuditLogReader interface {
	// FindEntriesByBudgetID returns all entries for a budget ordered by
	// timestamp ascending. An unreadable log yields apperrors.ErrStorage.
	FindEntriesByBudgetID(ctx context.Context, budgetID string) ([]domain.AuditLogEntry, error)
}

// AuditLogRepositoryFacade combines the append and query sides of the log.
// The audit service is the only component permitted to append through it.
type AuditLogRepositoryFacade interface {
	AuditLogAppender
	AuditLogReader
}
