package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrCompleteTaskCommandIsNotConstructed = errors.New(
	"CompleteTaskCommand must be created via NewCompleteTaskCommand constructor",
)

// CompleteTaskCommand reports a task as done by the agent executing it.
// It backs the ReportComplete surface, so it carries the reporting agent for
// verification against the task's assignment.
type CompleteTaskCommand struct { //nolint:recvcheck //using for validation
	taskID  kernel.UUID
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteTaskCommand creates a command to complete a task.
func NewCompleteTaskCommand(taskID kernel.UUID, agentID kernel.UUID) (CompleteTaskCommand, error) {
	command := CompleteTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTaskID(taskID),
		command.setAgentID(agentID),
	); err != nil {
		return CompleteTaskCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteTaskCommand) Validate() error {
	return c.guard.Validate(ErrCompleteTaskCommandIsNotConstructed)
}

// TaskID returns the task being completed.
func (c CompleteTaskCommand) TaskID() kernel.UUID { return c.taskID }

// AgentID returns the agent reporting completion.
func (c CompleteTaskCommand) AgentID() kernel.UUID { return c.agentID }

func (c *CompleteTaskCommand) setTaskID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.taskID = id
	return nil
}

func (c *CompleteTaskCommand) setAgentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.agentID = id
	return nil
}
