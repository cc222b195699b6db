package dto

import (
	"time"

	"github.com/SscSPs/budget_approval_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetSummaryResponse is the resulting-totals snapshot on an audit entry.
type BudgetSummaryResponse struct {
	BudgetID    string          `json:"budgetID"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ItemCount   int             `json:"itemCount"`
	Categories  []string        `json:"categories"`
}

// AuditLogEntryResponse is one immutable approval log record.
type AuditLogEntryResponse struct {
	EntryID         string                `json:"entryID"`
	Decision        DecisionResponse      `json:"decision"`
	ResultingBudget BudgetSummaryResponse `json:"resultingBudget"`
	RecordedAt      time.Time             `json:"recordedAt"`
}

// ToAuditLogEntryResponse converts a domain AuditLogEntry to its response DTO.
func ToAuditLogEntryResponse(e domain.AuditLogEntry) AuditLogEntryResponse {
	return AuditLogEntryResponse{
		EntryID:  e.EntryID,
		Decision: ToDecisionResponse(e.Decision),
		ResultingBudget: BudgetSummaryResponse{
			BudgetID:    e.ResultingBudget.BudgetID,
			TotalAmount: e.ResultingBudget.TotalAmount,
			ItemCount:   e.ResultingBudget.ItemCount,
			Categories:  e.ResultingBudget.Categories,
		},
		RecordedAt: e.RecordedAt,
	}
}

// ToAuditLogListResponse converts a slice of domain AuditLogEntries to DTOs.
func ToAuditLogListResponse(entries []domain.AuditLogEntry) []AuditLogEntryResponse {
	res := make([]AuditLogEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToAuditLogEntryResponse(e)
	}
	return res
}
