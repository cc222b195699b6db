package dto

import (
	"time"

	"github.com/SscSPs/budget_approval_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OutcomeAuto asks the engine to approve automatically when no rule is
// violated; any violation leaves the budget undecided for the operator.
const OutcomeAuto = "AUTO"

// CreateDecisionRequest submits an operator decision for a budget.
// Overrides map item names to approved amounts and are only meaningful
// for APPROVED_WITH_MODIFICATIONS.
type CreateDecisionRequest struct {
	Outcome   string                     `json:"outcome" binding:"required,oneof=AUTO APPROVED REJECTED APPROVED_WITH_MODIFICATIONS"`
	Overrides map[string]decimal.Decimal `json:"overrides"`
	Note      string                     `json:"note"`
}

// ViolationResponse is one detected rule breach.
type ViolationResponse struct {
	Rule      string          `json:"rule"`
	Severity  string          `json:"severity"`
	Entity    string          `json:"entity"`
	Measured  decimal.Decimal `json:"measured"`
	Threshold decimal.Decimal `json:"threshold"`
	Message   string          `json:"message"`
}

// DecisionResponse is the recorded decision.
type DecisionResponse struct {
	DecisionID string                     `json:"decisionID"`
	BudgetID   string                     `json:"budgetID"`
	BudgetHash string                     `json:"budgetHash"`
	Outcome    string                     `json:"outcome"`
	Overrides  map[string]decimal.Decimal `json:"overrides,omitempty"`
	Note       string                     `json:"note"`
	DecidedAt  time.Time                  `json:"decidedAt"`
	DecidedBy  string                     `json:"decidedBy"`
}

// DecisionResultResponse is the full outcome of a decision submission.
type DecisionResultResponse struct {
	Decision      DecisionResponse       `json:"decision"`
	RevisedBudget *BudgetResponse        `json:"revisedBudget,omitempty"`
	Violations    []ViolationResponse    `json:"violations"`
	AuditEntry    *AuditLogEntryResponse `json:"auditEntry,omitempty"`
}

// ToViolationResponse converts a domain Violation to its response DTO.
func ToViolationResponse(v domain.Violation) ViolationResponse {
	return ViolationResponse{
		Rule:      string(v.Rule),
		Severity:  string(v.Severity),
		Entity:    v.Entity,
		Measured:  v.Measured,
		Threshold: v.Threshold,
		Message:   v.Message,
	}
}

// ToViolationListResponse converts a slice of domain Violations to DTOs.
func ToViolationListResponse(violations []domain.Violation) []ViolationResponse {
	res := make([]ViolationResponse, len(violations))
	for i, v := range violations {
		res[i] = ToViolationResponse(v)
	}
	return res
}

// ToDecisionResponse converts a domain Decision to its response DTO.
func ToDecisionResponse(d domain.Decision) DecisionResponse {
	return DecisionResponse{
		DecisionID: d.DecisionID,
		BudgetID:   d.BudgetID,
		BudgetHash: d.BudgetHash,
		Outcome:    string(d.Outcome),
		Overrides:  d.Overrides,
		Note:       d.Note,
		DecidedAt:  d.DecidedAt,
		DecidedBy:  d.DecidedBy,
	}
}

// ToDecisionResultResponse converts a domain DecisionResult to its response DTO.
func ToDecisionResultResponse(r *domain.DecisionResult) DecisionResultResponse {
	res := DecisionResultResponse{
		Decision:   ToDecisionResponse(r.Decision),
		Violations: ToViolationListResponse(r.Violations),
	}
	if r.RevisedBudget != nil {
		budget := ToBudgetResponse(r.RevisedBudget)
		res.RevisedBudget = &budget
	}
	if r.Entry != nil {
		entry := ToAuditLogEntryResponse(*r.Entry)
		res.AuditEntry = &entry
	}
	return res
}
