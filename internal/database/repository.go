package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/tally/internal/models"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*ProjectRepo
	*TaskRepo
	*ExpenditureRepo
	*TimeEntryRepo
	*CommentRepo
	*OutboxRepo

	db *sqlx.DB // nil when bound to a transaction
	q  sqlx.ExtContext
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sqlx.DB) *Repository {
	r := bind(db)
	r.db = db
	return r
}

func bind(q sqlx.ExtContext) *Repository {
	return &Repository{
		ProjectRepo:     &ProjectRepo{db: q},
		TaskRepo:        &TaskRepo{db: q},
		ExpenditureRepo: &ExpenditureRepo{db: q},
		TimeEntryRepo:   &TimeEntryRepo{db: q},
		CommentRepo:     &CommentRepo{db: q},
		OutboxRepo:      &OutboxRepo{db: q},
		q:               q,
	}
}

// WithTx runs fn against a repository bound to one transaction, committing when fn
// returns nil. Called on a repository that is already transaction-bound, fn joins
// the open transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(DataStore) error) error {
	if r.db == nil {
		return fn(r)
	}
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return fn(bind(tx))
	})
}

// read runs fn inside one transaction so every query sees the same committed state
func (r *Repository) read(ctx context.Context, fn func(sqlx.QueryerContext) error) error {
	if r.db == nil {
		return fn(r.q)
	}
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return fn(tx)
	})
}

// LoadProjectSnapshot reads a project with all of its tasks and expenditures in one
// transaction, so totals computed from it never mix two states of the database
func (r *Repository) LoadProjectSnapshot(ctx context.Context, projectID int) (*models.ProjectSnapshot, error) {
	snap := &models.ProjectSnapshot{}
	err := r.read(ctx, func(q sqlx.QueryerContext) error {
		var err error
		if snap.Project, err = getProject(ctx, q, projectID); err != nil {
			return err
		}
		if snap.Tasks, err = listTasks(ctx, q, projectID); err != nil {
			return err
		}
		snap.Expenditures, err = listExpenditures(ctx, q, projectID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load project %d snapshot: %w", projectID, err)
	}
	return snap, nil
}

// LoadTaskSnapshot reads a task with all of its time entries in one transaction
func (r *Repository) LoadTaskSnapshot(ctx context.Context, taskID int) (*models.TaskSnapshot, error) {
	snap := &models.TaskSnapshot{}
	err := r.read(ctx, func(q sqlx.QueryerContext) error {
		var err error
		if snap.Task, err = getTask(ctx, q, taskID); err != nil {
			return err
		}
		snap.TimeEntries, err = listTimeEntries(ctx, q, taskID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load task %d snapshot: %w", taskID, err)
	}
	return snap, nil
}
