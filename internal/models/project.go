package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project is the top-level unit: it owns tasks and expenditures and carries the budget
// they are measured against. Derived figures are never stored on it; see ProjectMetrics.
type Project struct {
	ID          int                 `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	StartDate   *time.Time          `json:"start_date"`
	EndDate     *time.Time          `json:"end_date"`
	Status      ProjectStatus       `json:"status"`
	Budget      decimal.NullDecimal `json:"budget"`   // Invalid when no budget is set
	Currency    string              `json:"currency"` // Only meaningful when Budget is set
	CreatedBy   int                 `json:"created_by"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// HasBudget reports whether a budget has been set
func (p *Project) HasBudget() bool {
	return p.Budget.Valid
}

// ProjectMetrics holds the figures derived from a project's children.
// RemainingBudget is nil when the project has no budget.
type ProjectMetrics struct {
	ProjectID          int              `json:"project_id"`
	TaskCount          int              `json:"task_count"`
	CompletedTaskCount int              `json:"completed_task_count"`
	TotalExpenditure   decimal.Decimal  `json:"total_expenditure"`
	TotalTaskCost      decimal.Decimal  `json:"total_task_cost"`
	RemainingBudget    *decimal.Decimal `json:"remaining_budget"`
	ProgressPercentage int              `json:"progress_percentage"`
	CostTrackingMode   CostTrackingMode `json:"cost_tracking_mode"`
}

// ProjectDetail is a project read together with the metrics computed from the same snapshot
type ProjectDetail struct {
	Project *Project        `json:"project"`
	Metrics *ProjectMetrics `json:"metrics"`
}

// ProjectSnapshot is a project together with every task and expenditure it owned at
// the moment it was read
type ProjectSnapshot struct {
	Project      *Project
	Tasks        []*Task
	Expenditures []*Expenditure
}
