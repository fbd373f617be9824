package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrCancelTaskCommandIsNotConstructed = errors.New(
	"CancelTaskCommand must be created via NewCancelTaskCommand constructor",
)

// CancelTaskCommand withdraws a task. Cancellation is idempotent: repeating
// it on a finished task reports "already final" instead of failing, so
// retries are always safe.
type CancelTaskCommand struct { //nolint:recvcheck //using for validation
	taskID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelTaskCommand creates a command to cancel a task.
func NewCancelTaskCommand(taskID kernel.UUID) (CancelTaskCommand, error) {
	command := CancelTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setTaskID(taskID); err != nil {
		return CancelTaskCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelTaskCommand) Validate() error {
	return c.guard.Validate(ErrCancelTaskCommandIsNotConstructed)
}

// TaskID returns the task to cancel.
func (c CancelTaskCommand) TaskID() kernel.UUID { return c.taskID }

func (c *CancelTaskCommand) setTaskID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.taskID = id
	return nil
}
