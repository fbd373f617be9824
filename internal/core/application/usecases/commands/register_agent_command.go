package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/agent"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var ErrRegisterAgentCommandIsNotConstructed = errors.New(
	"RegisterAgentCommand must be created via NewRegisterAgentCommand constructor",
)

// RegisterAgentCommand adds a new worker or robot to a warehouse's
// executor pool. Model is required for robots and must stay empty for
// human workers.
type RegisterAgentCommand struct { //nolint:recvcheck //using for validation
	agentType   agent.Type
	name        string
	model       string
	warehouseID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRegisterAgentCommand creates an agent registration command.
func NewRegisterAgentCommand(
	agentType agent.Type,
	name string,
	model string,
	warehouseID kernel.UUID,
) (RegisterAgentCommand, error) {
	command := RegisterAgentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAgentType(agentType),
		command.setName(name),
		command.setModel(agentType, model),
		command.setWarehouseID(warehouseID),
	); err != nil {
		return RegisterAgentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterAgentCommand) Validate() error {
	return c.guard.Validate(ErrRegisterAgentCommandIsNotConstructed)
}

// AgentType returns the kind of agent to register.
func (c RegisterAgentCommand) AgentType() agent.Type { return c.agentType }

// Name returns the agent's display name.
func (c RegisterAgentCommand) Name() string { return c.name }

// Model returns the robot hardware model. Empty for human workers.
func (c RegisterAgentCommand) Model() string { return c.model }

// WarehouseID returns the warehouse the agent belongs to.
func (c RegisterAgentCommand) WarehouseID() kernel.UUID { return c.warehouseID }

func (c *RegisterAgentCommand) setAgentType(agentType agent.Type) error {
	if err := agentType.Validate(); err != nil {
		return err
	}
	c.agentType = agentType
	return nil
}

func (c *RegisterAgentCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *RegisterAgentCommand) setModel(agentType agent.Type, model string) error {
	if agentType == agent.TypeRobot && model == "" {
		return errs.NewValueIsRequiredError("model")
	}
	if agentType == agent.TypeHuman && model != "" {
		return errs.NewValueIsInvalidError("model")
	}
	c.model = model
	return nil
}

func (c *RegisterAgentCommand) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.warehouseID = id
	return nil
}
