package commands

import (
	"context"

	"warehouse/internal/core/domain/model/worktask"
	"warehouse/internal/core/ports"
)

// CancelResult reports the outcome of a cancellation.
type CancelResult struct {
	// AlreadyFinal is true when the task was Completed or Cancelled before
	// this command ran; nothing changed in that case.
	AlreadyFinal bool
}

// CancelTaskCommandHandler withdraws a task from any non-terminal state.
type CancelTaskCommandHandler struct {
	uowFactory WorkTaskUoWFactory
	broadcast  ports.OperationsBroadcast
}

// NewCancelTaskCommandHandler creates a handler for task cancellation.
func NewCancelTaskCommandHandler(
	uowFactory WorkTaskUoWFactory,
	broadcast ports.OperationsBroadcast,
) CancelTaskCommandHandler {
	return CancelTaskCommandHandler{
		uowFactory: uowFactory,
		broadcast:  broadcast,
	}
}

// Handle processes the cancellation. Cancelling a task that already reached
// a terminal state is not an error; the result says so and no event fires.
func (h CancelTaskCommandHandler) Handle(ctx context.Context, command CancelTaskCommand) (CancelResult, error) {
	if err := command.Validate(); err != nil {
		return CancelResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CancelResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	taskRepo := uow.WorkTaskRepository()

	task, err := taskRepo.Get(ctx, command.TaskID())
	if err != nil {
		return CancelResult{}, err
	}

	alreadyFinal, err := task.Cancel()
	if err != nil {
		return CancelResult{}, err
	}
	if alreadyFinal {
		return CancelResult{AlreadyFinal: true}, nil
	}

	if err := taskRepo.Update(ctx, task); err != nil {
		return CancelResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return CancelResult{}, err
	}

	h.notify(ctx, task)
	return CancelResult{}, nil
}

func (h CancelTaskCommandHandler) notify(ctx context.Context, task *worktask.Task) {
	if h.broadcast == nil {
		return
	}
	_ = h.broadcast.Notify(ctx, ports.EventTaskCancelled, task.CompanyID(), task.ID(), "work_task", taskEventPayload(task))
}
