package models

import "github.com/shopspring/decimal"

// BudgetItem represents a single persisted line item of a budget.
type BudgetItem struct {
	BudgetID       string              `json:"budgetID"` // FK to Budget
	Position       int                 `json:"position"` // Ordering within the budget
	Name           string              `json:"name"`
	Category       string              `json:"category"`
	Amount         decimal.Decimal     `json:"amount"`
	Percentage     decimal.Decimal     `json:"percentage"`
	OriginalAmount decimal.NullDecimal `json:"originalAmount"` // Set when an override changed the amount
}

// Budget represents a persisted budget and its derived figures.
type Budget struct {
	BudgetID     string          `json:"budgetID"` // Primary Key (UUID)
	Name         string          `json:"name"`
	CurrencyCode string          `json:"currencyCode"`
	TotalAmount  decimal.Decimal `json:"totalAmount"` // Derived: sum of item amounts
	ContentHash  string          `json:"contentHash"` // Content fingerprint used for decision dedupe
	RevisionOf   *string         `json:"revisionOf"`  // Nil unless this budget was produced by overrides
	Items        []BudgetItem    `json:"items"`
	AuditFields
}
