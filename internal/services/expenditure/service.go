package expenditure

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/thenoetrevino/tally/internal/aggregate"
	"github.com/thenoetrevino/tally/internal/database"
	"github.com/thenoetrevino/tally/internal/models"
	"github.com/thenoetrevino/tally/internal/services/metrics"
	"github.com/thenoetrevino/tally/internal/services/validation"
)

// Service defines all expenditure-related business operations.
// Every operation is scoped to a project: an expenditure addressed through a project
// it does not belong to is rejected with ErrExpenditureNotInProject.
type Service interface {
	// Read operations
	GetExpenditure(ctx context.Context, projectID, id int) (*models.Expenditure, error)
	ListExpenditures(ctx context.Context, projectID int) ([]*models.Expenditure, error)

	// Write operations
	CreateExpenditure(ctx context.Context, req CreateExpenditureRequest) (*Result, error)
	UpdateExpenditure(ctx context.Context, req UpdateExpenditureRequest) (*Result, error)
	DeleteExpenditure(ctx context.Context, projectID, id int) (*models.ProjectMetrics, error)
}

// Result is an expenditure as stored after a write, with its project's recomputed metrics
type Result struct {
	Expenditure *models.Expenditure    `json:"expenditure"`
	Project     *models.ProjectMetrics `json:"project"`
}

// CreateExpenditureRequest encapsulates data for recording an expenditure
type CreateExpenditureRequest struct {
	ProjectID   int
	Description string `validate:"notblank,max=65535"`
	Amount      decimal.Decimal
	ExpenseDate time.Time
	ActorID     int
}

// UpdateExpenditureRequest encapsulates data for updating an expenditure
// Fields with pointers are optional - nil means don't update
type UpdateExpenditureRequest struct {
	ProjectID   int
	ID          int
	Description *string `validate:"omitnil,notblank,max=65535"`
	Amount      *decimal.Decimal
	ExpenseDate *time.Time
}

// service implements Service interface
type service struct {
	repo   database.DataStore
	engine *aggregate.Engine
}

// NewService creates a new expenditure service
func NewService(repo database.DataStore, engine *aggregate.Engine) Service {
	return &service{
		repo:   repo,
		engine: engine,
	}
}

// GetExpenditure retrieves one expenditure of a project
func (s *service) GetExpenditure(ctx context.Context, projectID, id int) (*models.Expenditure, error) {
	if err := checkIDs(projectID, id); err != nil {
		return nil, err
	}
	return s.owned(ctx, s.repo, projectID, id)
}

// ListExpenditures retrieves a project's expenditures, newest expense date first
func (s *service) ListExpenditures(ctx context.Context, projectID int) ([]*models.Expenditure, error) {
	if projectID <= 0 {
		return nil, ErrInvalidProjectID
	}
	if _, err := s.repo.GetProject(ctx, projectID); err != nil {
		return nil, projectError(err)
	}

	list, err := s.repo.ListExpenditures(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenditures: %w", err)
	}
	return list, nil
}

// CreateExpenditure records spend against a project
func (s *service) CreateExpenditure(ctx context.Context, req CreateExpenditureRequest) (*Result, error) {
	if req.ProjectID <= 0 {
		return nil, ErrInvalidProjectID
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.ExpenseDate.IsZero() {
		return nil, ErrMissingExpenseDate
	}
	if err := models.ValidatePositive("amount", req.Amount); err != nil {
		return nil, err
	}

	var created *models.Expenditure
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		if _, err := tx.GetProject(ctx, req.ProjectID); err != nil {
			return projectError(err)
		}

		var err error
		created, err = tx.CreateExpenditure(ctx, &models.Expenditure{
			ProjectID:   req.ProjectID,
			Description: strings.TrimSpace(req.Description),
			Amount:      req.Amount,
			ExpenseDate: req.ExpenseDate,
			RecordedBy:  req.ActorID,
		})
		if err != nil {
			return fmt.Errorf("failed to create expenditure: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.result(ctx, created)
}

// UpdateExpenditure applies the non-nil fields of req
func (s *service) UpdateExpenditure(ctx context.Context, req UpdateExpenditureRequest) (*Result, error) {
	if err := checkIDs(req.ProjectID, req.ID); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.Amount != nil {
		if err := models.ValidatePositive("amount", *req.Amount); err != nil {
			return nil, err
		}
	}
	if req.ExpenseDate != nil && req.ExpenseDate.IsZero() {
		return nil, ErrMissingExpenseDate
	}

	var updated *models.Expenditure
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		e, err := s.owned(ctx, tx, req.ProjectID, req.ID)
		if err != nil {
			return err
		}

		if req.Description != nil {
			e.Description = strings.TrimSpace(*req.Description)
		}
		if req.Amount != nil {
			e.Amount = *req.Amount
		}
		if req.ExpenseDate != nil {
			e.ExpenseDate = *req.ExpenseDate
		}

		if err := tx.UpdateExpenditure(ctx, e); err != nil {
			return fmt.Errorf("failed to update expenditure: %w", err)
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.result(ctx, updated)
}

// DeleteExpenditure removes an expenditure and returns the project's metrics after it
func (s *service) DeleteExpenditure(ctx context.Context, projectID, id int) (*models.ProjectMetrics, error) {
	if err := checkIDs(projectID, id); err != nil {
		return nil, err
	}

	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		if _, err := s.owned(ctx, tx, projectID, id); err != nil {
			return err
		}
		if err := tx.DeleteExpenditure(ctx, id); err != nil {
			return fmt.Errorf("failed to delete expenditure: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.projectMetrics(ctx, projectID)
}

// owned fetches an expenditure and checks it belongs to projectID
func (s *service) owned(ctx context.Context, r database.DataStore, projectID, id int) (*models.Expenditure, error) {
	e, err := r.GetExpenditure(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrExpenditureNotFound
		}
		return nil, fmt.Errorf("failed to get expenditure: %w", err)
	}
	if e.ProjectID != projectID {
		return nil, ErrExpenditureNotInProject
	}
	return e, nil
}

func (s *service) result(ctx context.Context, e *models.Expenditure) (*Result, error) {
	m, err := s.projectMetrics(ctx, e.ProjectID)
	if err != nil {
		return nil, err
	}
	return &Result{Expenditure: e, Project: m}, nil
}

func (s *service) projectMetrics(ctx context.Context, projectID int) (*models.ProjectMetrics, error) {
	_, m, err := metrics.Project(ctx, s.repo, s.engine, projectID)
	if err != nil {
		return nil, projectError(err)
	}
	return m, nil
}

func projectError(err error) error {
	if database.IsNotFound(err) {
		return ErrProjectNotFound
	}
	return fmt.Errorf("failed to load project: %w", err)
}

func checkIDs(projectID, id int) error {
	if projectID <= 0 {
		return ErrInvalidProjectID
	}
	if id <= 0 {
		return ErrInvalidExpenditureID
	}
	return nil
}

// validateRequest maps the first failing field of a request to an expenditure error
func validateRequest(req any) error {
	fe, err := validation.Struct(req)
	if err != nil {
		return fmt.Errorf("failed to validate request: %w", err)
	}
	if fe == nil {
		return nil
	}
	if fe.Field == "Description" {
		if fe.Tag == "max" {
			return ErrDescriptionTooLong
		}
		return ErrEmptyDescription
	}
	return fmt.Errorf("invalid %s (%s)", fe.Field, fe.Tag)
}
