package domain

import "github.com/shopspring/decimal"

// BudgetItem represents a single named line within a Budget.
// Percentage is always derived from Amount and the budget's grand total;
// it is never stored independently of the amount that backs it.
type BudgetItem struct {
	Name           string           `json:"name"`     // Non-empty, unique within a budget
	Category       string           `json:"category"` // Grouping key (e.g., "Housing")
	Amount         decimal.Decimal  `json:"amount"`   // Non-negative
	Percentage     decimal.Decimal  `json:"percentage"`
	OriginalAmount *decimal.Decimal `json:"originalAmount,omitempty"` // Set on revised budgets when an override changed the amount
}

// Budget is an ordered sequence of budget items with derived totals.
// Budgets are immutable after construction; the adjustment processor
// materializes a new Budget value rather than editing in place.
type Budget struct {
	BudgetID     string          `json:"budgetID"` // Primary Key (UUID)
	Name         string          `json:"name"`
	CurrencyCode string          `json:"currencyCode"`
	Items        []BudgetItem    `json:"items"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`          // Derived: sum of item amounts
	ContentHash  string          `json:"contentHash"`          // Identity of the item/amount content
	RevisionOf   string          `json:"revisionOf,omitempty"` // BudgetID of the budget this one revises
	AuditFields
}

// CategorySummary aggregates the items sharing one category key.
type CategorySummary struct {
	Category    string          `json:"category"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Percentage  decimal.Decimal `json:"percentage"`
	ItemCount   int             `json:"itemCount"`
}

// BudgetAnalysis is the category breakdown reporting collaborators render.
type BudgetAnalysis struct {
	Budget     Budget            `json:"budget"`
	Categories []CategorySummary `json:"categories"`
	TopItems   []BudgetItem      `json:"topItems"`
}

// BudgetSummary is the snapshot of resulting totals carried on an audit log entry.
type BudgetSummary struct {
	BudgetID    string          `json:"budgetID"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ItemCount   int             `json:"itemCount"`
	Categories  []string        `json:"categories"`
}
