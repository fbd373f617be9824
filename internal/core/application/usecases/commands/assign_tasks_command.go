package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var ErrAssignTasksCommandIsNotConstructed = errors.New(
	"AssignTasksCommand must be created via NewAssignTasksCommand constructor",
)

// AssignTasksCommand triggers an assignment pass over one warehouse: match
// Pending tasks with the nearest available agents. With an empty task list
// the pass covers every Pending task of the warehouse.
//
// Example:
//
//	cmd, err := NewAssignTasksCommand(warehouseID, nil)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type AssignTasksCommand struct { //nolint:recvcheck //using for validation
	warehouseID kernel.UUID
	taskIDs     []kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignTasksCommand creates a command for an assignment pass.
// taskIDs may be empty to cover all Pending tasks of the warehouse.
func NewAssignTasksCommand(warehouseID kernel.UUID, taskIDs []kernel.UUID) (AssignTasksCommand, error) {
	command := AssignTasksCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setWarehouseID(warehouseID),
		command.setTaskIDs(taskIDs),
	); err != nil {
		return AssignTasksCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignTasksCommand) Validate() error {
	return c.guard.Validate(ErrAssignTasksCommandIsNotConstructed)
}

// WarehouseID returns the warehouse the pass runs over.
func (c AssignTasksCommand) WarehouseID() kernel.UUID { return c.warehouseID }

// TaskIDs returns the explicit task selection, empty for all Pending.
func (c AssignTasksCommand) TaskIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(c.taskIDs))
	copy(out, c.taskIDs)
	return out
}

func (c *AssignTasksCommand) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("warehouseId", err)
	}
	c.warehouseID = id
	return nil
}

func (c *AssignTasksCommand) setTaskIDs(taskIDs []kernel.UUID) error {
	for _, id := range taskIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.taskIDs = make([]kernel.UUID, len(taskIDs))
	copy(c.taskIDs, taskIDs)
	return nil
}
