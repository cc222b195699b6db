package domain

// TemplatePriority ranks how essential a template line is.
type TemplatePriority string

const (
	PriorityHigh   TemplatePriority = "High"
	PriorityMedium TemplatePriority = "Medium"
	PriorityLow    TemplatePriority = "Low"
)

// TemplateItem is one pre-defined category/name pair a budget can start from.
type TemplateItem struct {
	Category string           `json:"category"`
	Name     string           `json:"name"`
	Priority TemplatePriority `json:"priority"`
}

// BudgetTemplate is a named set of template items.
type BudgetTemplate struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Items       []TemplateItem `json:"items"`
}
