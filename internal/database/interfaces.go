package database

import (
	"context"
	"time"

	"github.com/thenoetrevino/tally/internal/events"
	"github.com/thenoetrevino/tally/internal/models"
)

// ProjectRepository defines project persistence
type ProjectRepository interface {
	CreateProject(ctx context.Context, p *models.Project) (*models.Project, error)
	GetProject(ctx context.Context, id int) (*models.Project, error)
	ListProjects(ctx context.Context) ([]*models.Project, error)
	UpdateProject(ctx context.Context, p *models.Project) error
	DeleteProject(ctx context.Context, id int) error
}

// TaskRepository defines task persistence, including the conditional completion updates
type TaskRepository interface {
	CreateTask(ctx context.Context, t *models.Task) (*models.Task, error)
	GetTask(ctx context.Context, id int) (*models.Task, error)
	ListTasksByProject(ctx context.Context, projectID int) ([]*models.Task, error)
	ListTasksByStatus(ctx context.Context, projectID int, status models.TaskStatus) ([]*models.Task, error)
	ListTasksForUser(ctx context.Context, userID int) ([]*models.Task, error)
	UpdateTask(ctx context.Context, t *models.Task) error
	CompleteTask(ctx context.Context, id int, at time.Time) (bool, error)
	UndoCompleteTask(ctx context.Context, id int) (bool, error)
	DeleteTask(ctx context.Context, id int) error
}

// ExpenditureRepository defines project expenditure persistence
type ExpenditureRepository interface {
	CreateExpenditure(ctx context.Context, e *models.Expenditure) (*models.Expenditure, error)
	GetExpenditure(ctx context.Context, id int) (*models.Expenditure, error)
	ListExpenditures(ctx context.Context, projectID int) ([]*models.Expenditure, error)
	UpdateExpenditure(ctx context.Context, e *models.Expenditure) error
	DeleteExpenditure(ctx context.Context, id int) error
}

// TimeEntryRepository defines time entry persistence
type TimeEntryRepository interface {
	CreateTimeEntry(ctx context.Context, e *models.TimeEntry) (*models.TimeEntry, error)
	GetTimeEntry(ctx context.Context, id int) (*models.TimeEntry, error)
	ListTimeEntries(ctx context.Context, taskID int) ([]*models.TimeEntry, error)
	DeleteTimeEntry(ctx context.Context, id int) error
}

// CommentRepository defines comment persistence
type CommentRepository interface {
	CreateComment(ctx context.Context, c *models.Comment) (*models.Comment, error)
	GetComment(ctx context.Context, id int) (*models.Comment, error)
	ListComments(ctx context.Context, taskID int) ([]*models.Comment, error)
	DeleteComment(ctx context.Context, id int) error
}

// OutboxRepository defines the event outbox
type OutboxRepository interface {
	EnqueueEvent(ctx context.Context, ev events.Event) error
	FetchPendingEvents(ctx context.Context, limit int) ([]OutboxEntry, error)
	MarkEventDelivered(ctx context.Context, id string, at time.Time) error
	RecordEventFailure(ctx context.Context, id, cause string, maxAttempts int, park bool) (bool, error)
	RequeueFailedEvents(ctx context.Context) (int, error)
	PurgeDeliveredEvents(ctx context.Context, before time.Time) (int, error)
	CountOutbox(ctx context.Context) (OutboxStats, error)
}

// SnapshotReader loads an entity together with its children in one consistent read
type SnapshotReader interface {
	LoadProjectSnapshot(ctx context.Context, projectID int) (*models.ProjectSnapshot, error)
	LoadTaskSnapshot(ctx context.Context, taskID int) (*models.TaskSnapshot, error)
}
