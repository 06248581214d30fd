package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expenditure is project-level spend that is not tied to a specific task
type Expenditure struct {
	ID          int             `json:"id"`
	ProjectID   int             `json:"project_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"` // Always > 0
	ExpenseDate time.Time       `json:"expense_date"`
	RecordedBy  int             `json:"recorded_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
