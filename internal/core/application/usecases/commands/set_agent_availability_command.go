package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrSetAgentAvailabilityCommandIsNotConstructed = errors.New(
	"SetAgentAvailabilityCommand must be created via NewSetAgentAvailabilityCommand constructor",
)

// SetAgentAvailabilityCommand toggles whether an agent accepts new
// assignments. Taking an agent off rotation does not touch its active task;
// it only stops the assignment pass from handing it more work.
type SetAgentAvailabilityCommand struct { //nolint:recvcheck //using for validation
	agentID   kernel.UUID
	available bool

	guard guard.ConstructorGuard
}

// NewSetAgentAvailabilityCommand creates an availability toggle command.
func NewSetAgentAvailabilityCommand(
	agentID kernel.UUID,
	available bool,
) (SetAgentAvailabilityCommand, error) {
	command := SetAgentAvailabilityCommand{
		available: available,
		guard:     guard.NewConstructorGuard(),
	}

	if err := command.setAgentID(agentID); err != nil {
		return SetAgentAvailabilityCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SetAgentAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetAgentAvailabilityCommandIsNotConstructed)
}

// AgentID returns the agent whose availability changes.
func (c SetAgentAvailabilityCommand) AgentID() kernel.UUID { return c.agentID }

// Available returns the desired availability state.
func (c SetAgentAvailabilityCommand) Available() bool { return c.available }

func (c *SetAgentAvailabilityCommand) setAgentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.agentID = id
	return nil
}
