package aggregate

import (
	"github.com/thenoetrevino/tally/internal/models"
)

// Engine bundles the aggregation functions with the deployment's cost tracking mode
type Engine struct {
	mode models.CostTrackingMode
}

// NewEngine creates an engine for the given mode; an unknown mode falls back to the default
func NewEngine(mode models.CostTrackingMode) *Engine {
	if !mode.Valid() {
		mode = models.DefaultCostTrackingMode
	}
	return &Engine{mode: mode}
}

// Mode returns the cost tracking mode remaining budget is computed with
func (e *Engine) Mode() models.CostTrackingMode {
	return e.mode
}

// ProjectMetrics computes every derived project figure from one snapshot
func (e *Engine) ProjectMetrics(s *models.ProjectSnapshot) *models.ProjectMetrics {
	m := &models.ProjectMetrics{
		TotalExpenditure:   TotalExpenditure(s),
		TotalTaskCost:      TotalTaskCost(s),
		RemainingBudget:    RemainingBudget(s, e.mode),
		ProgressPercentage: ProgressPercentage(s),
		CompletedTaskCount: CompletedTaskCount(s),
		CostTrackingMode:   e.mode,
	}
	if s != nil {
		m.TaskCount = len(s.Tasks)
		if s.Project != nil {
			m.ProjectID = s.Project.ID
		}
	}
	return m
}

// TaskMetrics computes every derived task figure from one snapshot
func (e *Engine) TaskMetrics(s *models.TaskSnapshot) *models.TaskMetrics {
	m := &models.TaskMetrics{TotalTimeSpent: TotalTimeSpent(s)}
	if s != nil {
		m.TimeEntryCount = len(s.TimeEntries)
		if s.Task != nil {
			m.TaskID = s.Task.ID
		}
	}
	return m
}
