package project

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/thenoetrevino/tally/internal/aggregate"
	"github.com/thenoetrevino/tally/internal/database"
	"github.com/thenoetrevino/tally/internal/events"
	"github.com/thenoetrevino/tally/internal/models"
	"github.com/thenoetrevino/tally/internal/services/metrics"
	"github.com/thenoetrevino/tally/internal/services/validation"
)

// Service defines all project-related business operations
type Service interface {
	// Read operations
	ListProjects(ctx context.Context) ([]*models.ProjectDetail, error)
	GetProject(ctx context.Context, id int) (*models.Project, error)
	GetProjectDetail(ctx context.Context, id int) (*models.ProjectDetail, error)

	// Write operations
	CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error)
	UpdateProject(ctx context.Context, req UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, id int) error
}

// CreateProjectRequest encapsulates data for creating a project.
// New projects always start as Not Started.
type CreateProjectRequest struct {
	Name        string `validate:"notblank,max=255"`
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      *decimal.Decimal // nil means no budget
	Currency    string           `validate:"omitempty,currency"` // defaults when a budget is set
	ActorID     int
}

// UpdateProjectRequest encapsulates data for updating a project
// Fields with pointers are optional - nil means don't update
type UpdateProjectRequest struct {
	ID          int
	Name        *string `validate:"omitnil,notblank,max=255"`
	Description *string
	Status      *models.ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      *decimal.Decimal
	ClearBudget bool
	Currency    *string `validate:"omitnil,currency"`
	ActorID     int
}

// Options carries deployment-wide settings
type Options struct {
	// DefaultCurrency is applied when a budget is set without a currency
	DefaultCurrency string
}

// service implements Service interface
type service struct {
	repo   database.DataStore
	engine *aggregate.Engine
	opts   Options
}

// NewService creates a new project service
func NewService(repo database.DataStore, engine *aggregate.Engine, opts Options) Service {
	if opts.DefaultCurrency == "" {
		opts.DefaultCurrency = "USD"
	}
	return &service{
		repo:   repo,
		engine: engine,
		opts:   opts,
	}
}

// ListProjects retrieves all projects with their metrics. A project deleted between
// the listing and its snapshot read is left out.
func (s *service) ListProjects(ctx context.Context) ([]*models.ProjectDetail, error) {
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	details := make([]*models.ProjectDetail, 0, len(projects))
	for _, p := range projects {
		project, m, err := metrics.Project(ctx, s.repo, s.engine, p.ID)
		if err != nil {
			if database.IsNotFound(err) {
				continue
			}
			return nil, fmt.Errorf("failed to compute metrics of project %d: %w", p.ID, err)
		}
		details = append(details, &models.ProjectDetail{Project: project, Metrics: m})
	}
	return details, nil
}

// GetProject retrieves a specific project
func (s *service) GetProject(ctx context.Context, id int) (*models.Project, error) {
	if id <= 0 {
		return nil, ErrInvalidProjectID
	}
	p, err := s.repo.GetProject(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

// GetProjectDetail reads a project and recomputes every derived figure from one snapshot
func (s *service) GetProjectDetail(ctx context.Context, id int) (*models.ProjectDetail, error) {
	if id <= 0 {
		return nil, ErrInvalidProjectID
	}

	p, m, err := metrics.Project(ctx, s.repo, s.engine, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to compute project metrics: %w", err)
	}
	return &models.ProjectDetail{Project: p, Metrics: m}, nil
}

// CreateProject creates a new project with validation
func (s *service) CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := checkDateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	p := &models.Project{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      models.ProjectStatusNotStarted,
		CreatedBy:   req.ActorID,
	}
	if err := s.applyBudget(p, req.Budget, req.Currency); err != nil {
		return nil, err
	}

	var created *models.Project
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		var err error
		created, err = tx.CreateProject(ctx, p)
		if err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}
		return recordProjectEvent(ctx, tx, events.ProjectCreated, created, req.ActorID)
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateProject applies the non-nil fields of req to an existing project
func (s *service) UpdateProject(ctx context.Context, req UpdateProjectRequest) (*models.Project, error) {
	if req.ID <= 0 {
		return nil, ErrInvalidProjectID
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.Status != nil && !req.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidStatus, *req.Status)
	}

	var updated *models.Project
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		existing, err := tx.GetProject(ctx, req.ID)
		if err != nil {
			if database.IsNotFound(err) {
				return ErrProjectNotFound
			}
			return fmt.Errorf("failed to get project: %w", err)
		}

		if req.Name != nil {
			existing.Name = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			existing.Description = *req.Description
		}
		if req.Status != nil {
			existing.Status = *req.Status
		}
		if req.StartDate != nil {
			existing.StartDate = req.StartDate
		}
		if req.EndDate != nil {
			existing.EndDate = req.EndDate
		}
		if err := checkDateRange(existing.StartDate, existing.EndDate); err != nil {
			return err
		}

		switch {
		case req.ClearBudget:
			existing.Budget = decimal.NullDecimal{}
			existing.Currency = ""
		case req.Budget != nil || req.Currency != nil:
			budget := req.Budget
			if budget == nil && existing.HasBudget() {
				budget = &existing.Budget.Decimal
			}
			currency := existing.Currency
			if req.Currency != nil {
				currency = *req.Currency
			}
			if err := s.applyBudget(existing, budget, currency); err != nil {
				return err
			}
		}

		if err := tx.UpdateProject(ctx, existing); err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}
		updated = existing
		return recordProjectEvent(ctx, tx, events.ProjectUpdated, existing, req.ActorID)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteProject deletes a project; its tasks, expenditures, comments and time entries cascade
func (s *service) DeleteProject(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidProjectID
	}
	if err := s.repo.DeleteProject(ctx, id); err != nil {
		if database.IsNotFound(err) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// applyBudget sets budget and currency together. Without a budget the currency is dropped.
func (s *service) applyBudget(p *models.Project, budget *decimal.Decimal, currency string) error {
	if budget == nil {
		p.Budget = decimal.NullDecimal{}
		p.Currency = ""
		return nil
	}
	if err := models.ValidateNonNegative("budget", *budget); err != nil {
		return err
	}
	if currency == "" {
		currency = s.opts.DefaultCurrency
	}
	code, err := models.NormalizeCurrency(currency)
	if err != nil {
		return ErrInvalidCurrency
	}
	p.Budget = decimal.NewNullDecimal(*budget)
	p.Currency = code
	return nil
}

func checkDateRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return ErrInvalidDateRange
	}
	return nil
}

// validateRequest maps the first failing field of a request to a project error
func validateRequest(req any) error {
	fe, err := validation.Struct(req)
	if err != nil {
		return fmt.Errorf("failed to validate request: %w", err)
	}
	if fe == nil {
		return nil
	}
	switch fe.Field {
	case "Name":
		if fe.Tag == "max" {
			return ErrNameTooLong
		}
		return ErrEmptyName
	case "Currency":
		return ErrInvalidCurrency
	}
	return fmt.Errorf("invalid %s (%s)", fe.Field, fe.Tag)
}

// recordProjectEvent queues a project event on the same transaction as the write
func recordProjectEvent(ctx context.Context, tx database.DataStore, typ events.Type, p *models.Project, actorID int) error {
	ev, err := events.New(typ, p.ID, p.ID, actorID, p)
	if err != nil {
		return err
	}
	if err := tx.EnqueueEvent(ctx, ev); err != nil {
		return fmt.Errorf("failed to record %s event: %w", typ, err)
	}
	return nil
}
