package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// withTx executes a function within a database transaction.
// It automatically handles begin, rollback on error, and commit on success.
func withTx(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// requireAffected turns a zero-row UPDATE or DELETE into a wrapped sql.ErrNoRows
func requireAffected(res sql.Result, entity string, id any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for %s %v: %w", entity, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %v: %w", entity, id, sql.ErrNoRows)
	}
	return nil
}

// insertID returns the id assigned by an INSERT
func insertID(res sql.Result, entity string) (int, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get %s ID after insert: %w", entity, err)
	}
	return int(id), nil
}

// IsNotFound reports whether err came from a missing row
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
