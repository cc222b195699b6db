package domain

import (
	"fmt"

	"github.com/SscSPs/budget_approval_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// RuleName identifies one configured approval rule.
type RuleName string

const (
	RuleMaxTotal           RuleName = "MAX_TOTAL"
	RuleMaxCategoryPct     RuleName = "MAX_CATEGORY_PERCENTAGE"
	RuleMaxItemPct         RuleName = "MAX_ITEM_PERCENTAGE"
	RuleRequiredCategories RuleName = "REQUIRED_CATEGORIES"
	RuleMinEmergencyPct    RuleName = "MIN_EMERGENCY_FUND_PERCENTAGE"
)

// Severity classifies how a violated rule should be treated by the operator.
type Severity string

const (
	SeverityBlocking Severity = "BLOCKING"
	SeverityWarning  Severity = "WARNING"
)

// RuleSet holds the configured approval thresholds. It is constructed once,
// validated up front, and passed into the violation detector; there is no
// hidden mutable rule state anywhere else.
type RuleSet struct {
	MaxTotal              decimal.Decimal
	MaxCategoryPct        decimal.Decimal
	MaxItemPct            decimal.Decimal
	RequiredCategories    []string
	MinEmergencyFundPct   decimal.Decimal
	EmergencyFundCategory string
}

var oneHundred = decimal.NewFromInt(100)

// NewRuleSet validates thresholds and returns an immutable rule set.
// Negative thresholds or percentages outside [0,100] fail fast with ErrConfiguration.
func NewRuleSet(maxTotal, maxCategoryPct, maxItemPct, minEmergencyPct decimal.Decimal, requiredCategories []string, emergencyFundCategory string) (RuleSet, error) {
	if maxTotal.IsNegative() {
		return RuleSet{}, fmt.Errorf("%w: max total must not be negative, got %s", apperrors.ErrConfiguration, maxTotal.String())
	}
	percentages := []struct {
		name string
		pct  decimal.Decimal
	}{
		{"max category percentage", maxCategoryPct},
		{"max item percentage", maxItemPct},
		{"min emergency fund percentage", minEmergencyPct},
	}
	for _, p := range percentages {
		if p.pct.IsNegative() || p.pct.GreaterThan(oneHundred) {
			return RuleSet{}, fmt.Errorf("%w: %s must be within [0,100], got %s", apperrors.ErrConfiguration, p.name, p.pct.String())
		}
	}
	for _, cat := range requiredCategories {
		if cat == "" {
			return RuleSet{}, fmt.Errorf("%w: required category names must not be empty", apperrors.ErrConfiguration)
		}
	}
	if emergencyFundCategory == "" {
		return RuleSet{}, fmt.Errorf("%w: emergency fund category name must not be empty", apperrors.ErrConfiguration)
	}

	required := make([]string, len(requiredCategories))
	copy(required, requiredCategories)

	return RuleSet{
		MaxTotal:              maxTotal,
		MaxCategoryPct:        maxCategoryPct,
		MaxItemPct:            maxItemPct,
		RequiredCategories:    required,
		MinEmergencyFundPct:   minEmergencyPct,
		EmergencyFundCategory: emergencyFundCategory,
	}, nil
}
