// Package aggregate computes the derived figures of projects and tasks.
//
// Every function is a pure read over a snapshot loaded in one piece by the
// database layer. Nothing here caches or stores a result: callers recompute on
// every read so a deleted task or an edited cost can never leave a stale total.
package aggregate

import (
	"github.com/shopspring/decimal"
	"github.com/thenoetrevino/tally/internal/models"
)

// TotalExpenditure sums the amounts of every expenditure in the snapshot
func TotalExpenditure(s *models.ProjectSnapshot) decimal.Decimal {
	total := decimal.Zero
	if s == nil {
		return total
	}
	for _, e := range s.Expenditures {
		total = total.Add(e.Amount)
	}
	return total
}

// TotalTaskCost sums the actual cost of every task in the snapshot, counting unset costs as zero
func TotalTaskCost(s *models.ProjectSnapshot) decimal.Decimal {
	total := decimal.Zero
	if s == nil {
		return total
	}
	for _, t := range s.Tasks {
		if t.ActualCost.Valid {
			total = total.Add(t.ActualCost.Decimal)
		}
	}
	return total
}

// RemainingBudget returns budget minus spend for the given mode, or nil when the project
// has no budget. A negative result is an overrun, not an error.
func RemainingBudget(s *models.ProjectSnapshot, mode models.CostTrackingMode) *decimal.Decimal {
	if s == nil || s.Project == nil || !s.Project.Budget.Valid {
		return nil
	}

	var spent decimal.Decimal
	switch mode {
	case models.CostTrackingTaskCosts:
		spent = TotalTaskCost(s)
	default:
		spent = TotalExpenditure(s)
	}

	remaining := s.Project.Budget.Decimal.Sub(spent)
	return &remaining
}

// CompletedTaskCount counts tasks whose current status is completed
func CompletedTaskCount(s *models.ProjectSnapshot) int {
	if s == nil {
		return 0
	}
	count := 0
	for _, t := range s.Tasks {
		if t.Status == models.TaskStatusCompleted {
			count++
		}
	}
	return count
}

// ProgressPercentage returns round-half-up(100 * completed / total), or 0 with no tasks
func ProgressPercentage(s *models.ProjectSnapshot) int {
	if s == nil {
		return 0
	}
	return percentOf(CompletedTaskCount(s), len(s.Tasks))
}

// percentOf is integer round-half-up of 100*part/whole, kept in integers to stay exact
func percentOf(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return (200*part + whole) / (2 * whole)
}

// TotalTimeSpent sums the minutes of every time entry in the snapshot
func TotalTimeSpent(s *models.TaskSnapshot) int {
	if s == nil {
		return 0
	}
	total := 0
	for _, e := range s.TimeEntries {
		total += e.Duration
	}
	return total
}
