package database

import "context"

// DataStore defines the unified interface for all data operations needed by the services.
// It is composed of smaller, domain-specific interfaces; consumers that need less
// (the relay only needs OutboxRepository) can depend on the smaller interface.
type DataStore interface {
	ProjectRepository
	TaskRepository
	ExpenditureRepository
	TimeEntryRepository
	CommentRepository
	OutboxRepository
	SnapshotReader

	// WithTx runs fn against a DataStore bound to a single transaction
	WithTx(ctx context.Context, fn func(DataStore) error) error
}

// Compile-time verification that *Repository implements DataStore
var _ DataStore = (*Repository)(nil)
