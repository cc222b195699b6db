package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/budget_approval_app/internal/apperrors"
	"github.com/SscSPs/budget_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_approval_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_approval_app/internal/core/ports/services"
	"github.com/SscSPs/budget_approval_app/internal/dto"
	"github.com/SscSPs/budget_approval_app/internal/middleware"
	"github.com/SscSPs/budget_approval_app/internal/utils/budgeting"
)

const autoApprovalNote = "automatic approval - all rules satisfied"

// approvalService orchestrates the approval workflow: it loads the budget,
// runs the violation detector, applies the operator's decision through the
// adjustment processor, re-evaluates whichever budget now stands, and records
// the audit entry.
type approvalService struct {
	budgetRepo    portsrepo.BudgetRepositoryFacade
	violationSvc  portssvc.ViolationSvcFacade
	adjustmentSvc portssvc.AdjustmentSvcFacade
	auditSvc      portssvc.AuditSvcFacade
	rules         domain.RuleSet
}

// NewApprovalService creates a new ApprovalService bound to one rule set.
func NewApprovalService(
	budgetRepo portsrepo.BudgetRepositoryFacade,
	violationSvc portssvc.ViolationSvcFacade,
	adjustmentSvc portssvc.AdjustmentSvcFacade,
	auditSvc portssvc.AuditSvcFacade,
	rules domain.RuleSet,
) portssvc.ApprovalSvcFacade {
	return &approvalService{
		budgetRepo:    budgetRepo,
		violationSvc:  violationSvc,
		adjustmentSvc: adjustmentSvc,
		auditSvc:      auditSvc,
		rules:         rules,
	}
}

var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

// EvaluateBudget runs the violation detector against a stored budget.
func (s *approvalService) EvaluateBudget(ctx context.Context, budgetID string) ([]domain.Violation, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget %s for evaluation: %w", budgetID, err)
	}
	return s.violationSvc.Evaluate(ctx, *budget, s.rules), nil
}

// Decide applies a submitted decision to a stored budget. The decision is
// only reported successful once its audit entry is durably committed; a
// failed record leaves the original budget untouched.
func (s *approvalService) Decide(ctx context.Context, budgetID string, req dto.CreateDecisionRequest, deciderUserID string) (*domain.DecisionResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget %s for decision: %w", budgetID, err)
	}

	outcome := domain.DecisionOutcome(req.Outcome)
	note := req.Note
	if req.Outcome == dto.OutcomeAuto {
		violations := s.violationSvc.Evaluate(ctx, *budget, s.rules)
		if len(violations) > 0 {
			// Automatic approval failed; surface the violations and leave
			// the budget undecided for the operator.
			return &domain.DecisionResult{Violations: violations, Recorded: false}, nil
		}
		outcome = domain.Approved
		if note == "" {
			note = autoApprovalNote
		}
	}

	if outcome != domain.ApprovedWithModifications && len(req.Overrides) > 0 {
		return nil, fmt.Errorf("%w: overrides are only allowed with outcome %s", apperrors.ErrValidation, domain.ApprovedWithModifications)
	}

	decision := domain.Decision{
		DecisionID: uuid.NewString(),
		BudgetID:   budget.BudgetID,
		BudgetHash: budget.ContentHash,
		Outcome:    outcome,
		Overrides:  req.Overrides,
		Note:       note,
		DecidedAt:  time.Now().UTC(),
		DecidedBy:  deciderUserID,
	}

	revised, err := s.adjustmentSvc.Apply(ctx, *budget, decision)
	if err != nil {
		return nil, err
	}

	// The budget whose totals the audit entry snapshots: the revised budget
	// when modifications were applied, the original otherwise. A rejection
	// snapshots the original budget unchanged.
	resulting := budget
	var revisedForResult *domain.Budget
	if outcome == domain.ApprovedWithModifications {
		if err := s.budgetRepo.SaveBudget(ctx, *revised); err != nil {
			return nil, fmt.Errorf("failed to save revised budget for %s: %w", budget.BudgetID, err)
		}
		resulting = revised
		revisedForResult = revised
		logger.Info("Revised budget materialized",
			slog.String("budget_id", budget.BudgetID),
			slog.String("revised_budget_id", revised.BudgetID),
			slog.Int("overrides", len(decision.Overrides)),
		)
	}

	// A modified budget's violations are knowable before it is committed to
	// the operator: re-run the detector on whichever budget now stands.
	violations := s.violationSvc.Evaluate(ctx, *resulting, s.rules)

	entry, err := s.auditSvc.Record(ctx, decision, budgeting.Summarize(*resulting))
	if err != nil {
		return nil, err
	}

	logger.Info("Decision recorded",
		slog.String("budget_id", budget.BudgetID),
		slog.String("decision_id", decision.DecisionID),
		slog.String("outcome", string(outcome)),
	)

	return &domain.DecisionResult{
		Decision:      decision,
		RevisedBudget: revisedForResult,
		Violations:    violations,
		Entry:         entry,
		Recorded:      true,
	}, nil
}
