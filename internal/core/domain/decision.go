package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DecisionOutcome is the operator's verdict on a budget.
type DecisionOutcome string

const (
	Approved                  DecisionOutcome = "APPROVED"
	Rejected                  DecisionOutcome = "REJECTED"
	ApprovedWithModifications DecisionOutcome = "APPROVED_WITH_MODIFICATIONS"
)

// Decision captures the approve/reject/modify outcome taken against one budget.
// The budget is identified by id plus content hash, so a later re-approval of
// an edited budget is distinguishable from a duplicate submission.
type Decision struct {
	DecisionID string                     `json:"decisionID"` // Primary Key (UUID)
	BudgetID   string                     `json:"budgetID"`
	BudgetHash string                     `json:"budgetHash"`
	Outcome    DecisionOutcome            `json:"outcome"`
	Overrides  map[string]decimal.Decimal `json:"overrides,omitempty"` // Item name -> approved amount
	Note       string                     `json:"note"`
	DecidedAt  time.Time                  `json:"decidedAt"`
	DecidedBy  string                     `json:"decidedBy"`
}

// AuditLogEntry is one immutable record in the append-only approval log:
// the decision plus a snapshot of the resulting budget totals.
type AuditLogEntry struct {
	EntryID         string        `json:"entryID"` // Primary Key (UUID)
	Decision        Decision      `json:"decision"`
	ResultingBudget BudgetSummary `json:"resultingBudget"`
	RecordedAt      time.Time     `json:"recordedAt"`
}

// DecisionResult is everything a decision submission produces: the decision
// itself, the revised budget (nil when rejected or unchanged), the violations
// of whichever budget now stands, and the recorded audit entry.
// Recorded is false only when an automatic approval was requested and
// violations blocked it; nothing is persisted in that case.
type DecisionResult struct {
	Decision      Decision       `json:"decision"`
	RevisedBudget *Budget        `json:"revisedBudget,omitempty"`
	Violations    []Violation    `json:"violations"`
	Entry         *AuditLogEntry `json:"entry,omitempty"`
	Recorded      bool           `json:"recorded"`
}

// DedupeKey identifies a decision for idempotent recording.
// Re-recording the same decision identity must not duplicate the log entry.
func (d Decision) DedupeKey() string {
	return d.BudgetHash + "@" + d.DecidedAt.UTC().Format(time.RFC3339Nano)
}
