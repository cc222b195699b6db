package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/budget_approval_app/internal/apperrors"
	"github.com/SscSPs/budget_approval_app/internal/core/domain"
	portssvc "github.com/SscSPs/budget_approval_app/internal/core/ports/services"
)

// templateService serves the built-in budget templates.
type templateService struct {
	templates []domain.BudgetTemplate
}

// NewTemplateService creates a new TemplateService with the built-in templates.
func NewTemplateService() portssvc.TemplateSvcFacade {
	return &templateService{templates: builtinTemplates()}
}

var _ portssvc.TemplateSvcFacade = (*templateService)(nil)

// ListTemplates returns every available template.
func (s *templateService) ListTemplates(ctx context.Context) []domain.BudgetTemplate {
	out := make([]domain.BudgetTemplate, len(s.templates))
	copy(out, s.templates)
	return out
}

// GetTemplateByName returns the named template, matched case-insensitively.
func (s *templateService) GetTemplateByName(ctx context.Context, name string) (*domain.BudgetTemplate, error) {
	for _, t := range s.templates {
		if strings.EqualFold(t.Name, name) {
			template := t
			return &template, nil
		}
	}
	return nil, fmt.Errorf("template %q: %w", name, apperrors.ErrNotFound)
}

func builtinTemplates() []domain.BudgetTemplate {
	return []domain.BudgetTemplate{
		{
			Name:        "personal",
			Description: "Personal/Household budget with categories for daily living expenses",
			Items: []domain.TemplateItem{
				{Category: "Housing", Name: "Rent/Mortgage", Priority: domain.PriorityHigh},
				{Category: "Housing", Name: "Utilities", Priority: domain.PriorityHigh},
				{Category: "Housing", Name: "Home Maintenance", Priority: domain.PriorityMedium},
				{Category: "Transportation", Name: "Car Payment/Lease", Priority: domain.PriorityHigh},
				{Category: "Transportation", Name: "Fuel", Priority: domain.PriorityHigh},
				{Category: "Transportation", Name: "Insurance", Priority: domain.PriorityHigh},
				{Category: "Transportation", Name: "Maintenance", Priority: domain.PriorityMedium},
				{Category: "Food", Name: "Groceries", Priority: domain.PriorityHigh},
				{Category: "Food", Name: "Dining Out", Priority: domain.PriorityLow},
				{Category: "Healthcare", Name: "Insurance", Priority: domain.PriorityHigh},
				{Category: "Healthcare", Name: "Medications", Priority: domain.PriorityHigh},
				{Category: "Healthcare", Name: "Doctor Visits", Priority: domain.PriorityMedium},
				{Category: "Savings", Name: "Emergency Fund", Priority: domain.PriorityHigh},
				{Category: "Savings", Name: "Retirement", Priority: domain.PriorityHigh},
				{Category: "Savings", Name: "Investments", Priority: domain.PriorityMedium},
				{Category: "Debt Payments", Name: "Credit Cards", Priority: domain.PriorityHigh},
				{Category: "Debt Payments", Name: "Student Loans", Priority: domain.PriorityHigh},
				{Category: "Entertainment", Name: "Subscriptions", Priority: domain.PriorityLow},
				{Category: "Entertainment", Name: "Hobbies", Priority: domain.PriorityLow},
				{Category: "Entertainment", Name: "Vacations", Priority: domain.PriorityLow},
				{Category: "Personal Care", Name: "Clothing", Priority: domain.PriorityMedium},
				{Category: "Education", Name: "Tuition", Priority: domain.PriorityHigh},
				{Category: "Education", Name: "Books/Supplies", Priority: domain.PriorityMedium},
				{Category: "Miscellaneous", Name: "Gifts", Priority: domain.PriorityLow},
				{Category: "Miscellaneous", Name: "Charity", Priority: domain.PriorityLow},
			},
		},
		{
			Name:        "business",
			Description: "Business/Company budget with operational and strategic categories",
			Items: []domain.TemplateItem{
				{Category: "Personnel", Name: "Salaries", Priority: domain.PriorityHigh},
				{Category: "Personnel", Name: "Benefits", Priority: domain.PriorityHigh},
				{Category: "Personnel", Name: "Training", Priority: domain.PriorityMedium},
				{Category: "Personnel", Name: "Recruitment", Priority: domain.PriorityMedium},
				{Category: "Operations", Name: "Rent/Lease", Priority: domain.PriorityHigh},
				{Category: "Operations", Name: "Utilities", Priority: domain.PriorityHigh},
				{Category: "Operations", Name: "Office Supplies", Priority: domain.PriorityMedium},
				{Category: "Operations", Name: "Equipment", Priority: domain.PriorityMedium},
				{Category: "Technology", Name: "Software Licenses", Priority: domain.PriorityHigh},
				{Category: "Technology", Name: "Hardware", Priority: domain.PriorityMedium},
				{Category: "Technology", Name: "IT Support", Priority: domain.PriorityMedium},
				{Category: "Technology", Name: "Cloud Services", Priority: domain.PriorityMedium},
				{Category: "Marketing", Name: "Digital Advertising", Priority: domain.PriorityHigh},
				{Category: "Marketing", Name: "Content Creation", Priority: domain.PriorityMedium},
			},
		},
		{
			Name:        "project",
			Description: "Project-based budget for development, construction, or initiatives",
			Items: []domain.TemplateItem{
				{Category: "Labor", Name: "Project Manager", Priority: domain.PriorityHigh},
				{Category: "Labor", Name: "Developers/Engineers", Priority: domain.PriorityHigh},
				{Category: "Labor", Name: "Designers", Priority: domain.PriorityMedium},
				{Category: "Labor", Name: "QA/Testing", Priority: domain.PriorityHigh},
				{Category: "Materials", Name: "Raw Materials", Priority: domain.PriorityHigh},
				{Category: "Materials", Name: "Equipment", Priority: domain.PriorityHigh},
				{Category: "Materials", Name: "Consumables", Priority: domain.PriorityMedium},
				{Category: "Software/Tools", Name: "Licenses", Priority: domain.PriorityHigh},
				{Category: "Software/Tools", Name: "Development Tools", Priority: domain.PriorityMedium},
				{Category: "Infrastructure", Name: "Hosting", Priority: domain.PriorityHigh},
				{Category: "Infrastructure", Name: "Domain/SSL", Priority: domain.PriorityMedium},
				{Category: "Third Party Services", Name: "APIs", Priority: domain.PriorityMedium},
				{Category: "Third Party Services", Name: "Contractors", Priority: domain.PriorityMedium},
				{Category: "Training", Name: "Team Training", Priority: domain.PriorityLow},
				{Category: "Contingency", Name: "Risk Reserve", Priority: domain.PriorityHigh},
				{Category: "Contingency", Name: "Change Requests", Priority: domain.PriorityMedium},
			},
		},
		{
			Name:        "event",
			Description: "Event planning budget for conferences, parties, or gatherings",
			Items: []domain.TemplateItem{
				{Category: "Venue", Name: "Venue Rental", Priority: domain.PriorityHigh},
				{Category: "Venue", Name: "Setup/Breakdown", Priority: domain.PriorityHigh},
				{Category: "Venue", Name: "Parking", Priority: domain.PriorityMedium},
				{Category: "Catering", Name: "Food", Priority: domain.PriorityHigh},
				{Category: "Catering", Name: "Beverages", Priority: domain.PriorityHigh},
				{Category: "Catering", Name: "Service Staff", Priority: domain.PriorityMedium},
				{Category: "Entertainment", Name: "Performers", Priority: domain.PriorityMedium},
				{Category: "Entertainment", Name: "DJ/Music", Priority: domain.PriorityMedium},
				{Category: "Decorations", Name: "Flowers", Priority: domain.PriorityLow},
				{Category: "Decorations", Name: "Signage", Priority: domain.PriorityMedium},
				{Category: "AV Equipment", Name: "Sound System", Priority: domain.PriorityHigh},
				{Category: "AV Equipment", Name: "Lighting", Priority: domain.PriorityMedium},
				{Category: "Marketing", Name: "Invitations", Priority: domain.PriorityMedium},
				{Category: "Staff", Name: "Event Coordinator", Priority: domain.PriorityHigh},
				{Category: "Staff", Name: "Security", Priority: domain.PriorityMedium},
				{Category: "Contingency", Name: "Emergency Fund", Priority: domain.PriorityHigh},
			},
		},
	}
}
