package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Decision represents a persisted approve/reject/modify verdict.
type Decision struct {
	DecisionID string                     `json:"decisionID"` // Primary Key (UUID)
	BudgetID   string                     `json:"budgetID"`
	BudgetHash string                     `json:"budgetHash"`
	Outcome    string                     `json:"outcome"`
	Overrides  map[string]decimal.Decimal `json:"overrides,omitempty"`
	Note       string                     `json:"note"`
	DecidedAt  time.Time                  `json:"decidedAt"`
	DecidedBy  string                     `json:"decidedBy"`
}

// BudgetSummary is the snapshot of resulting totals stored on an audit entry.
type BudgetSummary struct {
	BudgetID    string          `json:"budgetID"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ItemCount   int             `json:"itemCount"`
	Categories  []string        `json:"categories"`
}

// AuditLogEntry represents one persisted record of the append-only approval log.
type AuditLogEntry struct {
	EntryID         string        `json:"entryID"` // Primary Key (UUID)
	Decision        Decision      `json:"decision"`
	ResultingBudget BudgetSummary `json:"resultingBudget"`
	RecordedAt      time.Time     `json:"recordedAt"`
}
