package services

import (
	"context"

	"github.com/SscSPs/budget_approval_app/internal/core/domain"
	"github.com/SscSPs/budget_approval_app/internal/dto"
)

// ViolationSvcFacade is the violation detector: a pure, deterministic
// evaluation of a budget against a rule set. It never mutates the budget
// and never blocks computation; whether a blocking violation actually
// prevents approval is policy applied by the operator.
type ViolationSvcFacade interface {
	Evaluate(ctx context.Context, budget domain.Budget, rules domain.RuleSet) []domain.Violation
}

// AdjustmentSvcFacade is the adjustment processor. Apply materializes the
// decision against the budget:
//   - APPROVED returns the budget unchanged,
//   - REJECTED returns nil (the original budget is retained for resubmission),
//   - APPROVED_WITH_MODIFICATIONS returns a new revised budget with overrides
//     applied and every total and percentage re-derived from scratch.
//
// Overrides referencing unknown items or carrying negative amounts fail with
// apperrors.ErrValidation and nothing is applied.
type AdjustmentSvcFacade interface {
	Apply(ctx context.Context, budget domain.Budget, decision domain.Decision) (*domain.Budget, error)
}

// ApprovalSvcFacade orchestrates the approval workflow end to end:
// evaluate, apply the operator's decision, re-evaluate the result,
// and record the audit entry.
type ApprovalSvcFacade interface {
	// EvaluateBudget runs the violation detector against a stored budget.
	EvaluateBudget(ctx context.Context, budgetID string) ([]domain.Violation, error)

	// Decide applies a submitted decision to a stored budget. A decision is
	// only reported successful once its audit entry is durably committed.
	Decide(ctx context.Context, budgetID string, req dto.CreateDecisionRequest, deciderUserID string) (*domain.DecisionResult, error)
}
