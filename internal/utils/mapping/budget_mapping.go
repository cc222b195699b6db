package mapping

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/budget_approval_app/internal/core/domain"
	"github.com/SscSPs/budget_approval_app/internal/models"
)

// ToModelBudgetItem converts a domain BudgetItem to a model BudgetItem
func ToModelBudgetItem(d domain.BudgetItem, budgetID string, position int) models.BudgetItem {
	m := models.BudgetItem{
		BudgetID:   budgetID,
		Position:   position,
		Name:       d.Name,
		Category:   d.Category,
		Amount:     d.Amount,
		Percentage: d.Percentage,
	}
	if d.OriginalAmount != nil {
		m.OriginalAmount = decimal.NewNullDecimal(*d.OriginalAmount)
	}
	return m
}

// ToDomainBudgetItem converts a model BudgetItem to a domain BudgetItem
func ToDomainBudgetItem(m models.BudgetItem) domain.BudgetItem {
	d := domain.BudgetItem{
		Name:       m.Name,
		Category:   m.Category,
		Amount:     m.Amount,
		Percentage: m.Percentage,
	}
	if m.OriginalAmount.Valid {
		original := m.OriginalAmount.Decimal
		d.OriginalAmount = &original
	}
	return d
}

// ToModelBudget converts a domain Budget to a model Budget
func ToModelBudget(d domain.Budget) models.Budget {
	items := make([]models.BudgetItem, len(d.Items))
	for i, item := range d.Items {
		items[i] = ToModelBudgetItem(item, d.BudgetID, i)
	}
	m := models.Budget{
		BudgetID:     d.BudgetID,
		Name:         d.Name,
		CurrencyCode: d.CurrencyCode,
		TotalAmount:  d.TotalAmount,
		ContentHash:  d.ContentHash,
		Items:        items,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
	if d.RevisionOf != "" {
		revisionOf := d.RevisionOf
		m.RevisionOf = &revisionOf
	}
	return m
}

// ToDomainBudget converts a model Budget to a domain Budget
func ToDomainBudget(m models.Budget) domain.Budget {
	items := make([]domain.BudgetItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = ToDomainBudgetItem(item)
	}
	d := domain.Budget{
		BudgetID:     m.BudgetID,
		Name:         m.Name,
		CurrencyCode: m.CurrencyCode,
		Items:        items,
		TotalAmount:  m.TotalAmount,
		ContentHash:  m.ContentHash,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if m.RevisionOf != nil {
		d.RevisionOf = *m.RevisionOf
	}
	return d
}

// ToDomainBudgetSlice converts a slice of model Budgets to a slice of domain Budgets
func ToDomainBudgetSlice(ms []models.Budget) []domain.Budget {
	ds := make([]domain.Budget, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBudget(m)
	}
	return ds
}
