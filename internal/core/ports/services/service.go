package services

// ServiceContainer holds all service facades handed to the HTTP layer.
type ServiceContainer struct {
	Budget     BudgetSvcFacade
	Violation  ViolationSvcFacade
	Adjustment AdjustmentSvcFacade
	Approval   ApprovalSvcFacade
	Audit      AuditSvcFacade
	Template   TemplateSvcFacade
	Auth       AuthSvcFacade
}
