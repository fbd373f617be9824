package commands

import (
	"context"
	"errors"
	"time"

	"warehouse/internal/core/domain/model/worktask"
	"warehouse/internal/core/ports"
)

// ErrAgentMismatch is returned when an agent reports completion of a task
// assigned to a different agent.
var ErrAgentMismatch = errors.New("task is not assigned to the reporting agent")

// CompleteTaskCommandHandler transitions a task from InProgress to
// Completed. The reporting agent must match the task's assignment; after a
// successful commit the completion hook lets the external inventory module
// post its stock transaction, and the completion event is broadcast.
type CompleteTaskCommandHandler struct {
	uowFactory WorkTaskUoWFactory
	listener   ports.CompletionListener
	broadcast  ports.OperationsBroadcast
}

// NewCompleteTaskCommandHandler creates a handler for task completion.
// listener may be nil when no inventory integration is wired.
func NewCompleteTaskCommandHandler(
	uowFactory WorkTaskUoWFactory,
	listener ports.CompletionListener,
	broadcast ports.OperationsBroadcast,
) CompleteTaskCommandHandler {
	return CompleteTaskCommandHandler{
		uowFactory: uowFactory,
		listener:   listener,
		broadcast:  broadcast,
	}
}

// Handle processes the completion report.
func (h CompleteTaskCommandHandler) Handle(ctx context.Context, command CompleteTaskCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	taskRepo := uow.WorkTaskRepository()

	task, err := taskRepo.Get(ctx, command.TaskID())
	if err != nil {
		return err
	}

	assignedTo := task.AssignedAgentID()
	if assignedTo == nil || !assignedTo.IsEqual(command.AgentID()) {
		return ErrAgentMismatch
	}

	if err := task.Complete(time.Now().UTC()); err != nil {
		return err
	}

	if err := taskRepo.Update(ctx, task); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	// Post-commit hooks are best-effort; the completion itself is durable.
	if h.listener != nil {
		_ = h.listener.TaskCompleted(ctx, task.ID(), command.AgentID())
	}
	h.notify(ctx, task)
	return nil
}

func (h CompleteTaskCommandHandler) notify(ctx context.Context, task *worktask.Task) {
	if h.broadcast == nil {
		return
	}
	_ = h.broadcast.Notify(ctx, ports.EventTaskCompleted, task.CompanyID(), task.ID(), "work_task", taskEventPayload(task))
}
