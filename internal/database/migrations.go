package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type migration struct {
	version int
	sql     string
}

// migrations are applied in order, each in its own transaction. Never edit a
// released migration; append a new one.
var migrations = []migration{
	{
		version: 1,
		sql: `
		CREATE TABLE projects (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL CHECK (length(name) BETWEEN 1 AND 255),
			description TEXT,
			start_date TEXT,
			end_date TEXT,
			status TEXT NOT NULL DEFAULT 'Not Started'
				CHECK (status IN ('Not Started', 'In Progress', 'On Hold', 'Completed')),
			budget TEXT CHECK (budget IS NULL OR CAST(budget AS REAL) >= 0),
			currency TEXT CHECK (currency IS NULL OR length(currency) = 3),
			created_by INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			title TEXT NOT NULL CHECK (length(title) BETWEEN 1 AND 255),
			description TEXT,
			status TEXT NOT NULL DEFAULT 'pending'
				CHECK (status IN ('pending', 'in progress', 'completed')),
			priority TEXT NOT NULL DEFAULT 'medium'
				CHECK (priority IN ('low', 'medium', 'high')),
			assigned_user_id INTEGER,
			created_by INTEGER NOT NULL DEFAULT 0,
			due_date TEXT,
			completed_at DATETIME,
			actual_cost TEXT CHECK (actual_cost IS NULL OR CAST(actual_cost AS REAL) >= 0),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX idx_tasks_project_status ON tasks(project_id, status);

		CREATE TABLE expenditures (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			description TEXT,
			amount TEXT NOT NULL CHECK (CAST(amount AS REAL) > 0),
			expense_date TEXT NOT NULL,
			recorded_by INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX idx_expenditures_project ON expenditures(project_id, expense_date);

		CREATE TABLE time_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			task_id INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
			user_id INTEGER NOT NULL DEFAULT 0,
			date_worked TEXT NOT NULL,
			duration INTEGER NOT NULL CHECK (duration >= 1),
			description TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX idx_time_entries_task ON time_entries(task_id, date_worked);

		CREATE TABLE comments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			task_id INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
			user_id INTEGER NOT NULL DEFAULT 0,
			body TEXT NOT NULL CHECK (length(body) BETWEEN 1 AND 5000),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX idx_comments_task ON comments(task_id, created_at);
		`,
	},
	{
		version: 2,
		// No foreign keys: events must survive deletion of the rows they describe
		sql: `
		CREATE TABLE outbox (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			project_id INTEGER NOT NULL,
			entity_id INTEGER NOT NULL,
			actor_id INTEGER NOT NULL DEFAULT 0,
			payload TEXT NOT NULL,
			occurred_at DATETIME NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending'
				CHECK (status IN ('pending', 'delivered', 'failed')),
			attempts INTEGER NOT NULL DEFAULT 0,
			last_error TEXT,
			delivered_at DATETIME
		);
		CREATE INDEX idx_outbox_status ON outbox(status, occurred_at);
		`,
	},
	{
		version: 3,
		sql: `
		CREATE INDEX idx_tasks_assignee ON tasks(assigned_user_id);
		CREATE INDEX idx_tasks_created_by ON tasks(created_by);
		`,
	},
}

// runMigrations reads the current schema version and applies every newer migration
func runMigrations(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var current int
	if err := db.GetContext(ctx, &current, `SELECT COALESCE(MAX(version), 0) FROM schema_version`); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		err := withTx(ctx, db, func(tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, m.sql); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, m.version)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to apply migration v%d: %w", m.version, err)
		}
	}

	return nil
}
