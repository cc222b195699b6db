package dto

import "github.com/SscSPs/budget_approval_app/internal/core/domain"

// TemplateItemResponse is one pre-defined template line.
type TemplateItemResponse struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Priority string `json:"priority"`
}

// TemplateResponse is one named budget template.
type TemplateResponse struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Items       []TemplateItemResponse `json:"items,omitempty"`
}

// ToTemplateResponse converts a domain BudgetTemplate to its response DTO.
func ToTemplateResponse(t *domain.BudgetTemplate, includeItems bool) TemplateResponse {
	res := TemplateResponse{
		Name:        t.Name,
		Description: t.Description,
	}
	if includeItems {
		res.Items = make([]TemplateItemResponse, len(t.Items))
		for i, item := range t.Items {
			res.Items[i] = TemplateItemResponse{
				Category: item.Category,
				Name:     item.Name,
				Priority: string(item.Priority),
			}
		}
	}
	return res
}
