package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/budget_approval_app/internal/apperrors"
	"github.com/SscSPs/budget_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_approval_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_approval_app/internal/core/ports/services"
	"github.com/SscSPs/budget_approval_app/internal/dto"
	"github.com/SscSPs/budget_approval_app/internal/middleware"
	"github.com/SscSPs/budget_approval_app/internal/utils/budgeting"
)

// budgetService constructs and reads budgets. Budgets are immutable after
// construction; only the adjustment processor produces revised values.
type budgetService struct {
	budgetRepo  portsrepo.BudgetRepositoryFacade
	templateSvc portssvc.TemplateSvcFacade
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, templateSvc portssvc.TemplateSvcFacade) portssvc.BudgetSvcFacade {
	return &budgetService{budgetRepo: budgetRepo, templateSvc: templateSvc}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// CreateBudget validates the submitted items, derives totals and percentages,
// and persists the new budget.
func (s *budgetService) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, creatorUserID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	categoriesByItem, err := s.templateCategories(ctx, req.TemplateName)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(req.Items))
	items := make([]domain.BudgetItem, len(req.Items))
	for i, itemReq := range req.Items {
		if itemReq.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: amount for item %q must not be negative, got %s", apperrors.ErrValidation, itemReq.Name, itemReq.Amount.String())
		}
		// Item names key decision overrides, so they must be unique.
		if seen[itemReq.Name] {
			return nil, fmt.Errorf("%w: duplicate item name %q", apperrors.ErrValidation, itemReq.Name)
		}
		seen[itemReq.Name] = true

		category := itemReq.Category
		if category == "" {
			category, err = categoryFromTemplate(categoriesByItem, itemReq.Name, req.TemplateName)
			if err != nil {
				return nil, err
			}
		}

		items[i] = domain.BudgetItem{
			Name:     itemReq.Name,
			Category: category,
			Amount:   itemReq.Amount,
		}
	}

	items, total := budgeting.Recalculate(items)

	now := time.Now().UTC()
	budget := domain.Budget{
		BudgetID:     uuid.NewString(),
		Name:         req.Name,
		CurrencyCode: req.CurrencyCode,
		Items:        items,
		TotalAmount:  total,
		ContentHash:  budgeting.ContentHash(req.CurrencyCode, items),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		logger.Error("Failed to save budget", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	return &budget, nil
}

// templateCategories builds the item-name to categories lookup for the named
// template. An empty template name means no pre-filling is available.
func (s *budgetService) templateCategories(ctx context.Context, templateName string) (map[string][]string, error) {
	if templateName == "" {
		return nil, nil
	}
	tmpl, err := s.templateSvc.GetTemplateByName(ctx, templateName)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown template %q", apperrors.ErrValidation, templateName)
	}
	categories := make(map[string][]string, len(tmpl.Items))
	for _, item := range tmpl.Items {
		key := strings.ToLower(item.Name)
		categories[key] = append(categories[key], item.Category)
	}
	return categories, nil
}

// categoryFromTemplate resolves the category of an item that omitted one.
// Some template item names repeat across categories (e.g. "Insurance"), in
// which case the request has to state the category explicitly.
func categoryFromTemplate(categories map[string][]string, itemName, templateName string) (string, error) {
	if categories == nil {
		return "", fmt.Errorf("%w: item %q has no category and no template was named", apperrors.ErrValidation, itemName)
	}
	matches := categories[strings.ToLower(itemName)]
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: item %q has no category and is not part of template %q", apperrors.ErrValidation, itemName, templateName)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: item %q appears in several categories of template %q, specify one", apperrors.ErrValidation, itemName, templateName)
	}
}

// GetBudgetByID retrieves a budget with its full item sequence.
func (s *budgetService) GetBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget %s: %w", budgetID, err)
	}
	return budget, nil
}

// ListBudgets retrieves budgets ordered by creation time descending.
func (s *budgetService) ListBudgets(ctx context.Context, limit int, offset int) ([]domain.Budget, error) {
	budgets, err := s.budgetRepo.ListBudgets(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	if budgets == nil {
		return []domain.Budget{}, nil
	}
	return budgets, nil
}

// GetBudgetAnalysis returns the category breakdown and the top-N largest items.
func (s *budgetService) GetBudgetAnalysis(ctx context.Context, budgetID string, topN int) (*domain.BudgetAnalysis, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget %s for analysis: %w", budgetID, err)
	}

	return &domain.BudgetAnalysis{
		Budget:     *budget,
		Categories: budgeting.CategorySummaries(budget.Items, budget.TotalAmount),
		TopItems:   budgeting.TopItems(budget.Items, topN),
	}, nil
}
