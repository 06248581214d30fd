package converters

import (
	"fmt"

	"github.com/thenoetrevino/tally/internal/database/records"
	"github.com/thenoetrevino/tally/internal/models"
)

// ProjectToModel converts a records.Project to models.Project.
// A NULL budget stays unset; currency is only carried when present.
func ProjectToModel(r records.Project) (*models.Project, error) {
	status, err := models.ParseProjectStatus(r.Status)
	if err != nil {
		return nil, fmt.Errorf("project %d: %w", r.ID, err)
	}
	budget, err := nullDecimal(r.Budget)
	if err != nil {
		return nil, fmt.Errorf("project %d budget: %w", r.ID, err)
	}
	start, err := nullDate(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("project %d start_date: %w", r.ID, err)
	}
	end, err := nullDate(r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("project %d end_date: %w", r.ID, err)
	}

	return &models.Project{
		ID:          int(r.ID),
		Name:        r.Name,
		Description: r.Description.String,
		StartDate:   start,
		EndDate:     end,
		Status:      status,
		Budget:      budget,
		Currency:    r.Currency.String,
		CreatedBy:   int(r.CreatedBy),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

// ProjectsToModels converts a slice of project records, failing on the first bad row
func ProjectsToModels(rs []records.Project) ([]*models.Project, error) {
	projects := make([]*models.Project, 0, len(rs))
	for _, r := range rs {
		p, err := ProjectToModel(r)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// ProjectFromModel converts a models.Project to the record written by the project repository
func ProjectFromModel(p *models.Project) records.Project {
	return records.Project{
		ID:          int64(p.ID),
		Name:        p.Name,
		Description: stringToNull(p.Description),
		StartDate:   dateToNull(p.StartDate),
		EndDate:     dateToNull(p.EndDate),
		Status:      p.Status.String(),
		Budget:      decimalToNull(p.Budget),
		Currency:    stringToNull(p.Currency),
		CreatedBy:   int64(p.CreatedBy),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
