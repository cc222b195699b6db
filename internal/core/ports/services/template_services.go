package services

import (
	"context"

	"github.com/SscSPs/budget_approval_app/internal/core/domain"
)

// TemplateSvcFacade exposes the built-in budget templates.
type TemplateSvcFacade interface {
	ListTemplates(ctx context.Context) []domain.BudgetTemplate
	GetTemplateByName(ctx context.Context, name string) (*domain.BudgetTemplate, error)
}
