package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
)

// Event names published over the OperationsBroadcast.
const (
	EventTaskCreated   = "task.created"
	EventTaskAssigned  = "task.assigned"
	EventTaskStarted   = "task.started"
	EventTaskCompleted = "task.completed"
	EventTaskCancelled = "task.cancelled"
)

// OperationsBroadcast pushes live-operations events to dashboard consumers.
// It is fired after every task creation, assignment, and completion. Delivery
// is best-effort: a failed notification must not fail the business operation
// that triggered it.
type OperationsBroadcast interface {
	Notify(
		ctx context.Context,
		eventName string,
		companyID kernel.UUID,
		entityID kernel.UUID,
		entityType string,
		payload any,
	) error
}

// CompletionListener is the hook for the external inventory module: it is
// invoked after a task completes so stock transactions can be posted. Stock
// bookkeeping itself happens outside this core.
type CompletionListener interface {
	TaskCompleted(ctx context.Context, taskID kernel.UUID, agentID kernel.UUID) error
}
