package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/worktask"
	"warehouse/internal/core/ports"
)

// StartTaskCommandHandler transitions a task from Assigned to InProgress.
// Starting is mandatory before completion; the transition is enforced by the
// task's state machine.
type StartTaskCommandHandler struct {
	uowFactory WorkTaskUoWFactory
	broadcast  ports.OperationsBroadcast
}

// NewStartTaskCommandHandler creates a handler for starting tasks.
func NewStartTaskCommandHandler(
	uowFactory WorkTaskUoWFactory,
	broadcast ports.OperationsBroadcast,
) StartTaskCommandHandler {
	return StartTaskCommandHandler{
		uowFactory: uowFactory,
		broadcast:  broadcast,
	}
}

// Handle processes the start command.
func (h StartTaskCommandHandler) Handle(ctx context.Context, command StartTaskCommand) error {
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

	if err := task.Start(time.Now().UTC()); err != nil {
		return err
	}

	if err := taskRepo.Update(ctx, task); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.notify(ctx, task)
	return nil
}

func (h StartTaskCommandHandler) notify(ctx context.Context, task *worktask.Task) {
	if h.broadcast == nil {
		return
	}
	_ = h.broadcast.Notify(ctx, ports.EventTaskStarted, task.CompanyID(), task.ID(), "work_task", taskEventPayload(task))
}
