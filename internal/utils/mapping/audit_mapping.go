package mapping

import (
	"github.com/SscSPs/budget_approval_app/internal/core/domain"
	"github.com/SscSPs/budget_approval_app/internal/models"
)

// ToModelDecision converts a domain Decision to a model Decision
func ToModelDecision(d domain.Decision) models.Decision {
	return models.Decision{
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

// ToDomainDecision converts a model Decision to a domain Decision
func ToDomainDecision(m models.Decision) domain.Decision {
	return domain.Decision{
		DecisionID: m.DecisionID,
		BudgetID:   m.BudgetID,
		BudgetHash: m.BudgetHash,
		Outcome:    domain.DecisionOutcome(m.Outcome),
		Overrides:  m.Overrides,
		Note:       m.Note,
		DecidedAt:  m.DecidedAt,
		DecidedBy:  m.DecidedBy,
	}
}

// ToModelBudgetSummary converts a domain BudgetSummary to a model BudgetSummary
func ToModelBudgetSummary(d domain.BudgetSummary) models.BudgetSummary {
	return models.BudgetSummary{
		BudgetID:    d.BudgetID,
		TotalAmount: d.TotalAmount,
		ItemCount:   d.ItemCount,
		Categories:  d.Categories,
	}
}

// ToDomainBudgetSummary converts a model BudgetSummary to a domain BudgetSummary
func ToDomainBudgetSummary(m models.BudgetSummary) domain.BudgetSummary {
	return domain.BudgetSummary{
		BudgetID:    m.BudgetID,
		TotalAmount: m.TotalAmount,
		ItemCount:   m.ItemCount,
		Categories:  m.Categories,
	}
}

// ToModelAuditLogEntry converts a domain AuditLogEntry to a model AuditLogEntry
func ToModelAuditLogEntry(d domain.AuditLogEntry) models.AuditLogEntry {
	return models.AuditLogEntry{
		EntryID:         d.EntryID,
		Decision:        ToModelDecision(d.Decision),
		ResultingBudget: ToModelBudgetSummary(d.ResultingBudget),
		RecordedAt:      d.RecordedAt,
	}
}

// ToDomainAuditLogEntry converts a model AuditLogEntry to a domain AuditLogEntry
func ToDomainAuditLogEntry(m models.AuditLogEntry) domain.AuditLogEntry {
	return domain.AuditLogEntry{
		EntryID:         m.EntryID,
		Decision:        ToDomainDecision(m.Decision),
		ResultingBudget: ToDomainBudgetSummary(m.ResultingBudget),
		RecordedAt:      m.RecordedAt,
	}
}

// ToDomainAuditLogEntrySlice converts a slice of model AuditLogEntries to domain values
func ToDomainAuditLogEntrySlice(ms []models.AuditLogEntry) []domain.AuditLogEntry {
	ds := make([]domain.AuditLogEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAuditLogEntry(m)
	}
	return ds
}
