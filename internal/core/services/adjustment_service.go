package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/budget_approval_app/internal/apperrors"
	"github.com/SscSPs/budget_approval_app/internal/core/domain"
	portssvc "github.com/SscSPs/budget_approval_app/internal/core/ports/services"
	"github.com/SscSPs/budget_approval_app/internal/utils/budgeting"
)

// adjustmentService materializes operator decisions against budgets.
// It never edits a budget in place; a revised budget is a new value so the
// original stays available for diffing and reporting.
type adjustmentService struct{}

// NewAdjustmentService creates a new adjustment processor.
func NewAdjustmentService() portssvc.AdjustmentSvcFacade {
	return &adjustmentService{}
}

var _ portssvc.AdjustmentSvcFacade = (*adjustmentService)(nil)

// Apply materializes the decision. All overrides are validated before any is
// applied, so a malformed decision is never partially applied.
func (s *adjustmentService) Apply(ctx context.Context, budget domain.Budget, decision domain.Decision) (*domain.Budget, error) {
	switch decision.Outcome {
	case domain.Rejected:
		// The workflow terminates; the original budget is retained unmodified.
		return nil, nil
	case domain.Approved:
		approved := budget
		return &approved, nil
	case domain.ApprovedWithModifications:
		return s.applyOverrides(budget, decision)
	default:
		return nil, fmt.Errorf("%w: unknown decision outcome %q", apperrors.ErrValidation, decision.Outcome)
	}
}

func (s *adjustmentService) applyOverrides(budget domain.Budget, decision domain.Decision) (*domain.Budget, error) {
	if len(decision.Overrides) == 0 {
		return nil, fmt.Errorf("%w: approval with modifications requires at least one override", apperrors.ErrValidation)
	}

	itemIndex := make(map[string]int, len(budget.Items))
	for i, item := range budget.Items {
		itemIndex[item.Name] = i
	}

	for name, amount := range decision.Overrides {
		if _, ok := itemIndex[name]; !ok {
			return nil, fmt.Errorf("%w: override references unknown item %q", apperrors.ErrValidation, name)
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("%w: override amount for item %q must not be negative, got %s", apperrors.ErrValidation, name, amount.String())
		}
	}

	items := make([]domain.BudgetItem, len(budget.Items))
	copy(items, budget.Items)
	for name, amount := range decision.Overrides {
		i := itemIndex[name]
		if items[i].Amount.Equal(amount) {
			continue
		}
		original := items[i].Amount
		items[i].OriginalAmount = &original
		items[i].Amount = amount
	}

	// Full re-derivation over the whole item sequence, never an incremental
	// patch, so percentages cannot drift from the amounts backing them.
	items, total := budgeting.Recalculate(items)

	now := time.Now().UTC()
	revised := domain.Budget{
		BudgetID:     uuid.NewString(),
		Name:         budget.Name,
		CurrencyCode: budget.CurrencyCode,
		Items:        items,
		TotalAmount:  total,
		ContentHash:  budgeting.ContentHash(budget.CurrencyCode, items),
		RevisionOf:   budget.BudgetID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     decision.DecidedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: decision.DecidedBy,
		},
	}
	return &revised, nil
}
