package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/tally/internal/converters"
	"github.com/thenoetrevino/tally/internal/database/records"
	"github.com/thenoetrevino/tally/internal/models"
)

const projectColumns = `id, name, description, start_date, end_date, status, budget, currency,
	created_by, created_at, updated_at`

// ProjectRepo handles all project-related database operations.
type ProjectRepo struct {
	db sqlx.ExtContext
}

// CreateProject inserts p and returns it with its id and timestamps set
func (r *ProjectRepo) CreateProject(ctx context.Context, p *models.Project) (*models.Project, error) {
	now := time.Now().UTC()
	rec := converters.ProjectFromModel(p)
	rec.CreatedAt, rec.UpdatedAt = now, now

	res, err := sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO projects (name, description, start_date, end_date, status, budget, currency,
			created_by, created_at, updated_at)
		VALUES (:name, :description, :start_date, :end_date, :status, :budget, :currency,
			:created_by, :created_at, :updated_at)`, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to insert project '%s': %w", p.Name, err)
	}

	id, err := insertID(res, "project")
	if err != nil {
		return nil, err
	}

	created := *p
	created.ID = id
	created.CreatedAt, created.UpdatedAt = now, now
	return &created, nil
}

// GetProject retrieves a project by its ID
func (r *ProjectRepo) GetProject(ctx context.Context, id int) (*models.Project, error) {
	return getProject(ctx, r.db, id)
}

func getProject(ctx context.Context, q sqlx.QueryerContext, id int) (*models.Project, error) {
	var rec records.Project
	if err := sqlx.GetContext(ctx, q, &rec,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to get project %d: %w", id, err)
	}
	return converters.ProjectToModel(rec)
}

// ListProjects retrieves all projects ordered by ID
func (r *ProjectRepo) ListProjects(ctx context.Context) ([]*models.Project, error) {
	var recs []records.Project
	if err := sqlx.SelectContext(ctx, r.db, &recs,
		`SELECT `+projectColumns+` FROM projects ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to query all projects: %w", err)
	}
	return converters.ProjectsToModels(recs)
}

// UpdateProject writes every mutable column of p and bumps updated_at
func (r *ProjectRepo) UpdateProject(ctx context.Context, p *models.Project) error {
	rec := converters.ProjectFromModel(p)
	rec.UpdatedAt = time.Now().UTC()

	res, err := sqlx.NamedExecContext(ctx, r.db, `
		UPDATE projects SET
			name = :name, description = :description, start_date = :start_date,
			end_date = :end_date, status = :status, budget = :budget, currency = :currency,
			updated_at = :updated_at
		WHERE id = :id`, rec)
	if err != nil {
		return fmt.Errorf("failed to update project %d: %w", p.ID, err)
	}
	if err := requireAffected(res, "project", p.ID); err != nil {
		return err
	}

	p.UpdatedAt = rec.UpdatedAt
	return nil
}

// DeleteProject deletes a project; tasks, expenditures and their children cascade
func (r *ProjectRepo) DeleteProject(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project %d: %w", id, err)
	}
	return requireAffected(res, "project", id)
}
