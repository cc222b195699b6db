package dto

import (
	"time"

	"github.com/SscSPs/budget_approval_app/internal/core/domain"
	"github.com/SscSPs/budget_approval_app/internal/utils"
	"github.com/shopspring/decimal"
)

// BudgetItemRequest is one budget line as submitted by the loader.
// Category may be omitted when the request names a template that can
// pre-fill it from the item name.
type BudgetItemRequest struct {
	Category string          `json:"category"`
	Name     string          `json:"name" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
}

// CreateBudgetRequest defines the data needed to create a new budget.
type CreateBudgetRequest struct {
	Name         string              `json:"name" binding:"required"`
	CurrencyCode string              `json:"currencyCode" binding:"required,uppercase,len=3"`
	TemplateName string              `json:"templateName,omitempty"`
	Items        []BudgetItemRequest `json:"items" binding:"required,min=1,dive"`
}

// BudgetItemResponse is one budget line as returned to reporting collaborators.
type BudgetItemResponse struct {
	Category        string           `json:"category"`
	Name            string           `json:"name"`
	Amount          decimal.Decimal  `json:"amount"`
	FormattedAmount string           `json:"formattedAmount"`
	Percentage      decimal.Decimal  `json:"percentage"`
	OriginalAmount  *decimal.Decimal `json:"originalAmount,omitempty"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	BudgetID       string               `json:"budgetID"`
	Name           string               `json:"name"`
	CurrencyCode   string               `json:"currencyCode"`
	Items          []BudgetItemResponse `json:"items"`
	TotalAmount    decimal.Decimal      `json:"totalAmount"`
	FormattedTotal string               `json:"formattedTotal"`
	ContentHash    string               `json:"contentHash"`
	RevisionOf     string               `json:"revisionOf,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
	CreatedBy      string               `json:"createdBy"`
}

// CategorySummaryResponse is one category row of the budget analysis.
type CategorySummaryResponse struct {
	Category    string          `json:"category"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Percentage  decimal.Decimal `json:"percentage"`
	ItemCount   int             `json:"itemCount"`
}

// BudgetAnalysisResponse is the category breakdown plus top expenses report.
type BudgetAnalysisResponse struct {
	Budget     BudgetResponse            `json:"budget"`
	Categories []CategorySummaryResponse `json:"categories"`
	TopItems   []BudgetItemResponse      `json:"topItems"`
}

// ToBudgetItemResponse converts a domain BudgetItem to its response DTO.
func ToBudgetItemResponse(item domain.BudgetItem, currencyCode string) BudgetItemResponse {
	return BudgetItemResponse{
		Category:        item.Category,
		Name:            item.Name,
		Amount:          item.Amount,
		FormattedAmount: utils.FormatCurrency(item.Amount, currencyCode),
		Percentage:      item.Percentage,
		OriginalAmount:  item.OriginalAmount,
	}
}

// ToBudgetResponse converts a domain Budget to a BudgetResponse DTO.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	items := make([]BudgetItemResponse, len(b.Items))
	for i, item := range b.Items {
		items[i] = ToBudgetItemResponse(item, b.CurrencyCode)
	}
	return BudgetResponse{
		BudgetID:       b.BudgetID,
		Name:           b.Name,
		CurrencyCode:   b.CurrencyCode,
		Items:          items,
		TotalAmount:    b.TotalAmount,
		FormattedTotal: utils.FormatCurrency(b.TotalAmount, b.CurrencyCode),
		ContentHash:    b.ContentHash,
		RevisionOf:     b.RevisionOf,
		CreatedAt:      b.CreatedAt,
		CreatedBy:      b.CreatedBy,
	}
}

// ToBudgetAnalysisResponse converts a domain BudgetAnalysis to its response DTO.
func ToBudgetAnalysisResponse(a *domain.BudgetAnalysis) BudgetAnalysisResponse {
	categories := make([]CategorySummaryResponse, len(a.Categories))
	for i, c := range a.Categories {
		categories[i] = CategorySummaryResponse{
			Category:    c.Category,
			TotalAmount: c.TotalAmount,
			Percentage:  c.Percentage,
			ItemCount:   c.ItemCount,
		}
	}
	topItems := make([]BudgetItemResponse, len(a.TopItems))
	for i, item := range a.TopItems {
		topItems[i] = ToBudgetItemResponse(item, a.Budget.CurrencyCode)
	}
	return BudgetAnalysisResponse{
		Budget:     ToBudgetResponse(&a.Budget),
		Categories: categories,
		TopItems:   topItems,
	}
}
