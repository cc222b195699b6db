package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/budget_approval_app/internal/core/domain"
	portssvc "github.com/SscSPs/budget_approval_app/internal/core/ports/services"
	"github.com/SscSPs/budget_approval_app/internal/utils/budgeting"
	"github.com/shopspring/decimal"
)

// violationService evaluates budgets against a rule set. It holds no state
// and touches no storage: evaluation is a pure function of its inputs.
type violationService struct{}

// NewViolationService creates a new violation detector.
func NewViolationService() portssvc.ViolationSvcFacade {
	return &violationService{}
}

var _ portssvc.ViolationSvcFacade = (*violationService)(nil)

// Evaluate checks the budget against every rule in a fixed order: max total,
// max category percentage, max item percentage, required categories, minimum
// emergency fund. One violation is reported per offending entity. A budget
// with zero total yields no percentage-based violations (percentages are
// defined as zero when the total is zero) but still yields required-category
// violations.
func (s *violationService) Evaluate(ctx context.Context, budget domain.Budget, rules domain.RuleSet) []domain.Violation {
	violations := make([]domain.Violation, 0)

	if budget.TotalAmount.GreaterThan(rules.MaxTotal) {
		violations = append(violations, domain.Violation{
			Rule:      domain.RuleMaxTotal,
			Severity:  domain.SeverityBlocking,
			Entity:    budget.BudgetID,
			Measured:  budget.TotalAmount,
			Threshold: rules.MaxTotal,
			Message:   fmt.Sprintf("total budget (%s) exceeds maximum allowed (%s)", budget.TotalAmount.String(), rules.MaxTotal.String()),
		})
	}

	categories := budgeting.CategorySummaries(budget.Items, budget.TotalAmount)
	for _, category := range categories {
		if category.Percentage.GreaterThan(rules.MaxCategoryPct) {
			violations = append(violations, domain.Violation{
				Rule:      domain.RuleMaxCategoryPct,
				Severity:  domain.SeverityWarning,
				Entity:    category.Category,
				Measured:  category.Percentage,
				Threshold: rules.MaxCategoryPct,
				Message:   fmt.Sprintf("category %q (%s%%) exceeds maximum allowed (%s%%)", category.Category, category.Percentage.String(), rules.MaxCategoryPct.String()),
			})
		}
	}

	for _, item := range budget.Items {
		if item.Percentage.GreaterThan(rules.MaxItemPct) {
			violations = append(violations, domain.Violation{
				Rule:      domain.RuleMaxItemPct,
				Severity:  domain.SeverityWarning,
				Entity:    item.Name,
				Measured:  item.Percentage,
				Threshold: rules.MaxItemPct,
				Message:   fmt.Sprintf("item %q (%s%%) exceeds maximum allowed (%s%%)", item.Name, item.Percentage.String(), rules.MaxItemPct.String()),
			})
		}
	}

	for _, required := range rules.RequiredCategories {
		if categoryTotal(categories, required).IsPositive() {
			continue
		}
		violations = append(violations, domain.Violation{
			Rule:      domain.RuleRequiredCategories,
			Severity:  domain.SeverityBlocking,
			Entity:    required,
			Measured:  decimal.Zero,
			Threshold: decimal.Zero,
			Message:   fmt.Sprintf("required category %q is missing or has no funds allocated", required),
		})
	}

	emergencyPct := categoryPercentage(categories, rules.EmergencyFundCategory)
	if emergencyPct.LessThan(rules.MinEmergencyFundPct) {
		violations = append(violations, domain.Violation{
			Rule:      domain.RuleMinEmergencyPct,
			Severity:  domain.SeverityBlocking,
			Entity:    rules.EmergencyFundCategory,
			Measured:  emergencyPct,
			Threshold: rules.MinEmergencyFundPct,
			Message:   fmt.Sprintf("emergency fund (%s%%) is below minimum required (%s%%)", emergencyPct.String(), rules.MinEmergencyFundPct.String()),
		})
	}

	return violations
}

// categoryTotal returns the summed amount of the named category, zero when absent.
// Category names are matched case-insensitively, as the budget loader does.
func categoryTotal(categories []domain.CategorySummary, name string) decimal.Decimal {
	total := decimal.Zero
	for _, c := range categories {
		if strings.EqualFold(c.Category, name) {
			total = total.Add(c.TotalAmount)
		}
	}
	return total
}

func categoryPercentage(categories []domain.CategorySummary, name string) decimal.Decimal {
	pct := decimal.Zero
	for _, c := range categories {
		if strings.EqualFold(c.Category, name) {
			pct = pct.Add(c.Percentage)
		}
	}
	return pct
}
