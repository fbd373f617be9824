package queries

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var ErrPrioritizeTasksQueryIsNotConstructed = errors.New(
	"PrioritizeTasksQuery must be created via NewPrioritizeTasksQuery constructor",
)

// PrioritizeTasksQuery returns Pending tasks in dispatch order: highest
// priority first, ties broken by age and then id, so the order is total and
// stable across calls. With an empty task list the whole Pending queue of
// the warehouse is ordered; with an explicit selection only those tasks are.
type PrioritizeTasksQuery struct { //nolint:recvcheck //using for validation
	warehouseID kernel.UUID
	taskIDs     []kernel.UUID

	guard guard.ConstructorGuard
}

// NewPrioritizeTasksQuery creates a query for dispatch ordering.
// taskIDs may be empty to cover the warehouse's whole Pending queue.
func NewPrioritizeTasksQuery(warehouseID kernel.UUID, taskIDs []kernel.UUID) (PrioritizeTasksQuery, error) {
	query := PrioritizeTasksQuery{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		query.setWarehouseID(warehouseID),
		query.setTaskIDs(taskIDs),
	); err != nil {
		return PrioritizeTasksQuery{}, err
	}
	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q PrioritizeTasksQuery) Validate() error {
	return q.guard.Validate(ErrPrioritizeTasksQueryIsNotConstructed)
}

// WarehouseID returns the warehouse whose queue is ordered.
func (q PrioritizeTasksQuery) WarehouseID() kernel.UUID { return q.warehouseID }

// TaskIDs returns the explicit task selection, empty for the whole queue.
func (q PrioritizeTasksQuery) TaskIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(q.taskIDs))
	copy(out, q.taskIDs)
	return out
}

func (q *PrioritizeTasksQuery) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("warehouseId", err)
	}
	q.warehouseID = id
	return nil
}

func (q *PrioritizeTasksQuery) setTaskIDs(taskIDs []kernel.UUID) error {
	for _, id := range taskIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	q.taskIDs = make([]kernel.UUID, len(taskIDs))
	copy(q.taskIDs, taskIDs)
	return nil
}

// PrioritizeTasksQueryResponse is one queue position in the read model.
type PrioritizeTasksQueryResponse struct {
	ID        kernel.UUID
	Type      string
	Priority  int
	CreatedAt time.Time
}
