package services

import (
	"github.com/SscSPs/budget_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_approval_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_approval_app/internal/core/ports/services"
	"github.com/SscSPs/budget_approval_app/internal/platform/config"
)

// NewServiceContainer wires all services against the provided repositories
// and the validated rule set.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, rules domain.RuleSet) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Template = NewTemplateService()
	container.Budget = NewBudgetService(repos.BudgetRepo, container.Template)
	container.Violation = NewViolationService()
	container.Adjustment = NewAdjustmentService()
	container.Audit = NewAuditService(repos.AuditLogRepo)
	container.Approval = NewApprovalService(
		repos.BudgetRepo,
		container.Violation,
		container.Adjustment,
		container.Audit,
		rules,
	)
	container.Auth = NewAuthService(cfg)

	return container
}
