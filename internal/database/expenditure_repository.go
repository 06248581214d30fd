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

const expenditureColumns = `id, project_id, description, amount, expense_date, recorded_by,
	created_at, updated_at`

// ExpenditureRepo handles project expenditure rows.
type ExpenditureRepo struct {
	db sqlx.ExtContext
}

func (r *ExpenditureRepo) CreateExpenditure(ctx context.Context, e *models.Expenditure) (*models.Expenditure, error) {
	now := time.Now().UTC()
	rec := converters.ExpenditureFromModel(e)
	rec.CreatedAt, rec.UpdatedAt = now, now

	res, err := sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO expenditures (project_id, description, amount, expense_date, recorded_by,
			created_at, updated_at)
		VALUES (:project_id, :description, :amount, :expense_date, :recorded_by,
			:created_at, :updated_at)`, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to insert expenditure for project %d: %w", e.ProjectID, err)
	}

	id, err := insertID(res, "expenditure")
	if err != nil {
		return nil, err
	}

	created := *e
	created.ID = id
	created.CreatedAt, created.UpdatedAt = now, now
	return &created, nil
}

func (r *ExpenditureRepo) GetExpenditure(ctx context.Context, id int) (*models.Expenditure, error) {
	var rec records.Expenditure
	if err := sqlx.GetContext(ctx, r.db, &rec,
		`SELECT `+expenditureColumns+` FROM expenditures WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to get expenditure %d: %w", id, err)
	}
	return converters.ExpenditureToModel(rec)
}

// ListExpenditures returns a project's expenditures, most recent expense first
func (r *ExpenditureRepo) ListExpenditures(ctx context.Context, projectID int) ([]*models.Expenditure, error) {
	return listExpenditures(ctx, r.db, projectID)
}

func listExpenditures(ctx context.Context, q sqlx.QueryerContext, projectID int) ([]*models.Expenditure, error) {
	var recs []records.Expenditure
	if err := sqlx.SelectContext(ctx, q, &recs,
		`SELECT `+expenditureColumns+` FROM expenditures WHERE project_id = ?
		ORDER BY expense_date DESC, id DESC`, projectID); err != nil {
		return nil, fmt.Errorf("failed to query expenditures for project %d: %w", projectID, err)
	}
	return converters.ExpendituresToModels(recs)
}

func (r *ExpenditureRepo) UpdateExpenditure(ctx context.Context, e *models.Expenditure) error {
	rec := converters.ExpenditureFromModel(e)
	rec.UpdatedAt = time.Now().UTC()

	res, err := sqlx.NamedExecContext(ctx, r.db, `
		UPDATE expenditures SET
			description = :description, amount = :amount, expense_date = :expense_date,
			updated_at = :updated_at
		WHERE id = :id`, rec)
	if err != nil {
		return fmt.Errorf("failed to update expenditure %d: %w", e.ID, err)
	}
	if err := requireAffected(res, "expenditure", e.ID); err != nil {
		return err
	}

	e.UpdatedAt = rec.UpdatedAt
	return nil
}

func (r *ExpenditureRepo) DeleteExpenditure(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenditures WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expenditure %d: %w", id, err)
	}
	return requireAffected(res, "expenditure", id)
}
