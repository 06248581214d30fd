// Package metrics recomputes derived figures for the services after every read or write.
package metrics

import (
	"context"
	"log/slog"

	"github.com/thenoetrevino/tally/internal/aggregate"
	"github.com/thenoetrevino/tally/internal/database"
	"github.com/thenoetrevino/tally/internal/lifecycle"
	"github.com/thenoetrevino/tally/internal/models"
)

// Project loads a consistent project snapshot and computes its metrics. The project is
// returned as read in that snapshot.
// A task that breaks the completion invariant fails the whole read with
// lifecycle.ErrInconsistentState. Not-found errors are returned wrapped, so callers
// can test them with database.IsNotFound.
func Project(ctx context.Context, r database.SnapshotReader, engine *aggregate.Engine, projectID int) (*models.Project, *models.ProjectMetrics, error) {
	snap, err := r.LoadProjectSnapshot(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	if err := lifecycle.CheckSnapshot(snap); err != nil {
		slog.Error("inconsistent task state in project", "project_id", projectID, "error", err)
		return nil, nil, err
	}
	return snap.Project, engine.ProjectMetrics(snap), nil
}

// Task loads a task with its time entries and computes its metrics
func Task(ctx context.Context, r database.SnapshotReader, engine *aggregate.Engine, taskID int) (*models.Task, *models.TaskMetrics, error) {
	snap, err := r.LoadTaskSnapshot(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	if err := lifecycle.CheckInvariant(snap.Task); err != nil {
		slog.Error("inconsistent task state", "task_id", taskID, "error", err)
		return nil, nil, err
	}
	return snap.Task, engine.TaskMetrics(snap), nil
}
