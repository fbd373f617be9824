package ports

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/worktask"
)

// ErrConcurrencyConflict is returned when an update loses an optimistic
// concurrency race: the aggregate was modified by someone else between load
// and save. The caller decides whether to retry; the store never does.
var ErrConcurrencyConflict = errors.New("aggregate was modified concurrently")

// WorkTaskRepository defines the persistence contract for work task
// aggregates. Tasks are soft-deleted and retained indefinitely for audit;
// none of these methods ever physically removes a row.
type WorkTaskRepository interface {
	// Add persists a new task aggregate to storage.
	// The task must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *worktask.Task) error

	// Update persists changes to an existing task aggregate using its
	// optimistic concurrency version. Returns ErrConcurrencyConflict when
	// the stored version no longer matches the aggregate's loaded version.
	Update(ctx context.Context, aggregate *worktask.Task) error

	// Get retrieves a task aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*worktask.Task, error)

	// GetBatch retrieves the tasks with the given identifiers. Unknown ids
	// are skipped; the result order is unspecified.
	GetBatch(ctx context.Context, ids []kernel.UUID) ([]*worktask.Task, error)

	// GetAllPending retrieves every Pending task of one warehouse.
	// Used by the assignment pass to find work waiting for an agent.
	GetAllPending(ctx context.Context, warehouseID kernel.UUID) ([]*worktask.Task, error)
}
