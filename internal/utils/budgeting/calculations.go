package budgeting

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/SscSPs/budget_approval_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

const percentagePlaces = 2

var oneHundred = decimal.NewFromInt(100)

// GrandTotal sums all item amounts.
func GrandTotal(items []domain.BudgetItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}

// Percentage derives an amount's share of the given total, rounded to two places.
// A zero total yields zero, so empty budgets never divide by zero.
func Percentage(amount, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return amount.Div(total).Mul(oneHundred).Round(percentagePlaces)
}

// Recalculate derives the grand total and every item percentage from scratch
// over the full item sequence. This is always a full derivation, never an
// incremental patch, so percentages can never drift from the amounts backing them.
func Recalculate(items []domain.BudgetItem) ([]domain.BudgetItem, decimal.Decimal) {
	total := GrandTotal(items)
	out := make([]domain.BudgetItem, len(items))
	for i, item := range items {
		item.Percentage = Percentage(item.Amount, total)
		out[i] = item
	}
	return out, total
}

// CategorySummaries aggregates items by category, preserving first-seen order.
func CategorySummaries(items []domain.BudgetItem, total decimal.Decimal) []domain.CategorySummary {
	order := make([]string, 0)
	byCategory := make(map[string]*domain.CategorySummary)
	for _, item := range items {
		summary, ok := byCategory[item.Category]
		if !ok {
			order = append(order, item.Category)
			summary = &domain.CategorySummary{Category: item.Category}
			byCategory[item.Category] = summary
		}
		summary.TotalAmount = summary.TotalAmount.Add(item.Amount)
		summary.ItemCount++
	}

	summaries := make([]domain.CategorySummary, 0, len(order))
	for _, category := range order {
		summary := byCategory[category]
		summary.Percentage = Percentage(summary.TotalAmount, total)
		summaries = append(summaries, *summary)
	}
	return summaries
}

// CategoryNames returns the distinct categories in first-seen order.
func CategoryNames(items []domain.BudgetItem) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, item := range items {
		if !seen[item.Category] {
			seen[item.Category] = true
			names = append(names, item.Category)
		}
	}
	return names
}

// TopItems returns the n largest items by amount, largest first.
// Ties keep their original budget order.
func TopItems(items []domain.BudgetItem, n int) []domain.BudgetItem {
	sorted := make([]domain.BudgetItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount.GreaterThan(sorted[j].Amount)
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// ContentHash computes a stable identity over the budget's item content.
// Two budgets with the same items, amounts and currency hash identically
// regardless of when or by whom they were created.
func ContentHash(currencyCode string, items []domain.BudgetItem) string {
	var b strings.Builder
	b.WriteString(currencyCode)
	for _, item := range items {
		b.WriteString("|")
		b.WriteString(item.Category)
		b.WriteString(":")
		b.WriteString(item.Name)
		b.WriteString("=")
		b.WriteString(item.Amount.String())
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// Summarize builds the totals snapshot recorded on audit log entries.
func Summarize(budget domain.Budget) domain.BudgetSummary {
	return domain.BudgetSummary{
		BudgetID:    budget.BudgetID,
		TotalAmount: budget.TotalAmount,
		ItemCount:   len(budget.Items),
		Categories:  CategoryNames(budget.Items),
	}
}
