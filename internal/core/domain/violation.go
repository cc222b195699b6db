package domain

import "github.com/shopspring/decimal"

// Violation reports one breach of a configured approval rule.
// Violations are pure computations: produced fresh on every evaluation,
// never mutated, and never used as errors.
type Violation struct {
	Rule      RuleName        `json:"rule"`
	Severity  Severity        `json:"severity"`
	Entity    string          `json:"entity"` // Offending category or item name; budget id for budget-wide rules
	Measured  decimal.Decimal `json:"measured"`
	Threshold decimal.Decimal `json:"threshold"`
	Message   string          `json:"message"`
}
