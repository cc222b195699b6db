package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/budget_approval_app/internal/apperrors"
	"github.com/SscSPs/budget_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_approval_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_approval_app/internal/core/ports/services"
)

// auditService owns the append-only approval log. Every decision goes through
// Record; nothing else writes to the log.
type auditService struct {
	auditRepo portsrepo.AuditLogRepositoryFacade
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo portsrepo.AuditLogRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// Record appends the decision and resulting totals to the log. The append is
// atomic: either the entry is durably committed or an error is returned and
// prior entries are untouched. Re-recording the same decision identity
// (decision timestamp + budget content hash) returns the original entry.
func (s *auditService) Record(ctx context.Context, decision domain.Decision, summary domain.BudgetSummary) (*domain.AuditLogEntry, error) {
	if decision.BudgetID == "" || decision.BudgetHash == "" {
		return nil, fmt.Errorf("%w: decision must identify its budget by id and content hash", apperrors.ErrValidation)
	}
	if decision.DecidedAt.IsZero() {
		return nil, fmt.Errorf("%w: decision timestamp is required", apperrors.ErrValidation)
	}

	entry := domain.AuditLogEntry{
		EntryID:         uuid.NewString(),
		Decision:        decision,
		ResultingBudget: summary,
		RecordedAt:      time.Now().UTC(),
	}

	recorded, err := s.auditRepo.AppendEntry(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to record decision for budget %s: %w", decision.BudgetID, err)
	}
	return recorded, nil
}

// QueryByBudgetID returns the budget's entries ordered by timestamp ascending.
func (s *auditService) QueryByBudgetID(ctx context.Context, budgetID string) ([]domain.AuditLogEntry, error) {
	entries, err := s.auditRepo.FindEntriesByBudgetID(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log for budget %s: %w", budgetID, err)
	}
	if entries == nil {
		return []domain.AuditLogEntry{}, nil
	}
	return entries, nil
}
