package models

import (
	"fmt"
	"strings"
)

// ============================================================================
// TASK STATUS
// ============================================================================

// TaskStatus is the lifecycle state of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is a known task status
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

func (s TaskStatus) String() string { return string(s) }

// ParseTaskStatus accepts "pending", "in progress" (or "in_progress", "in-progress") and "completed"
func ParseTaskStatus(s string) (TaskStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("_", " ", "-", " ").Replace(normalized)
	status := TaskStatus(normalized)
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q (must be: pending, in progress, completed)", ErrInvalidStatus, s)
	}
	return status, nil
}

// ============================================================================
// PRIORITY
// ============================================================================

// Priority is the urgency of a task
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is applied to tasks created without an explicit priority
const DefaultPriority = PriorityMedium

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (p Priority) String() string { return string(p) }

// ParsePriority maps a priority string to a Priority
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q (must be: low, medium, high)", ErrInvalidPriority, s)
	}
	return p, nil
}

// ============================================================================
// PROJECT STATUS
// ============================================================================

// ProjectStatus is the coarse state of a project
type ProjectStatus string

const (
	ProjectStatusNotStarted ProjectStatus = "Not Started"
	ProjectStatusInProgress ProjectStatus = "In Progress"
	ProjectStatusOnHold     ProjectStatus = "On Hold"
	ProjectStatusCompleted  ProjectStatus = "Completed"
)

// Valid reports whether s is a known project status
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusNotStarted, ProjectStatusInProgress, ProjectStatusOnHold, ProjectStatusCompleted:
		return true
	}
	return false
}

func (s ProjectStatus) String() string { return string(s) }

// ParseProjectStatus matches case-insensitively against the known project statuses
func ParseProjectStatus(s string) (ProjectStatus, error) {
	normalized := strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(s))
	for _, status := range []ProjectStatus{
		ProjectStatusNotStarted, ProjectStatusInProgress, ProjectStatusOnHold, ProjectStatusCompleted,
	} {
		if strings.EqualFold(normalized, string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q (must be: Not Started, In Progress, On Hold, Completed)", ErrInvalidStatus, s)
}

// ============================================================================
// COST TRACKING MODE
// ============================================================================

// CostTrackingMode selects what remaining budget is measured against.
// It is resolved once per deployment; projects never mix modes.
type CostTrackingMode string

const (
	// CostTrackingExpenditures subtracts the sum of project expenditures from the budget
	CostTrackingExpenditures CostTrackingMode = "expenditures"

	// CostTrackingTaskCosts subtracts the sum of task actual costs from the budget
	CostTrackingTaskCosts CostTrackingMode = "task_costs"
)

// DefaultCostTrackingMode is used when configuration does not name a mode
const DefaultCostTrackingMode = CostTrackingExpenditures

// Valid reports whether m is a known cost tracking mode
func (m CostTrackingMode) Valid() bool {
	return m == CostTrackingExpenditures || m == CostTrackingTaskCosts
}

func (m CostTrackingMode) String() string { return string(m) }

// ParseCostTrackingMode maps a configuration value to a CostTrackingMode
func ParseCostTrackingMode(s string) (CostTrackingMode, error) {
	m := CostTrackingMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("invalid cost tracking mode %q (must be: expenditures, task_costs)", s)
	}
	return m, nil
}

// ============================================================================
// LIMITS
// ============================================================================

const (
	MaxProjectNameLength = 255
	MaxTaskTitleLength   = 255
	MaxCommentBodyLength = 5000
	CurrencyCodeLength   = 3
)

// DateLayout is the storage and display layout of calendar dates (expense date, date worked)
const DateLayout = "2006-01-02"
