package services

import (
	"context"

	"github.com/SscSPs/budget_approval_app/internal/core/domain"
	"github.com/SscSPs/budget_approval_app/internal/dto"
)

// BudgetReaderSvc defines read operations over budgets.
type BudgetReaderSvc interface {
	GetBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, limit int, offset int) ([]domain.Budget, error)

	// GetBudgetAnalysis returns the category breakdown and top-N largest items.
	GetBudgetAnalysis(ctx context.Context, budgetID string, topN int) (*domain.BudgetAnalysis, error)
}

// BudgetWriterSvc defines write operations over budgets.
type BudgetWriterSvc interface {
	CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, creatorUserID string) (*domain.Budget, error)
}

// BudgetSvcFacade combines all budget service interfaces.
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
}
