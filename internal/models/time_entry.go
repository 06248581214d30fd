package models

import "time"

// TimeEntry records minutes worked on a task on a given day
type TimeEntry struct {
	ID          int       `json:"id"`
	TaskID      int       `json:"task_id"`
	UserID      int       `json:"user_id"`
	DateWorked  time.Time `json:"date_worked"`
	Duration    int       `json:"duration"` // minutes, >= 1
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
