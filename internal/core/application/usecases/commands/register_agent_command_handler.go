package commands

import (
	"context"
	"fmt"

	"warehouse/internal/core/domain/model/agent"
	"warehouse/internal/core/domain/model/kernel"
)

// RegisterAgentCommandHandler adds a newly registered agent to the pool.
// The agent starts available, with no known position until its first
// telemetry report arrives.
type RegisterAgentCommandHandler struct {
	uowFactory AgentUoWFactory
}

// NewRegisterAgentCommandHandler creates a handler for agent registration.
func NewRegisterAgentCommandHandler(uowFactory AgentUoWFactory) RegisterAgentCommandHandler {
	return RegisterAgentCommandHandler{uowFactory: uowFactory}
}

// Handle registers the agent and returns its generated ID.
func (h RegisterAgentCommandHandler) Handle(
	ctx context.Context, command RegisterAgentCommand,
) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	newAgent, err := h.buildAgent(command)
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.AgentRepository().Add(ctx, newAgent); err != nil {
		return kernel.UUID{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return newAgent.ID(), nil
}

func (h RegisterAgentCommandHandler) buildAgent(command RegisterAgentCommand) (agent.Agent, error) {
	id := kernel.NewUUID()

	switch command.AgentType() {
	case agent.TypeHuman:
		return agent.NewHumanWorker(id, command.Name(), command.WarehouseID())
	case agent.TypeRobot:
		return agent.NewRobot(id, command.Name(), command.Model(), command.WarehouseID())
	default:
		return nil, fmt.Errorf("unsupported agent type: %s", command.AgentType())
	}
}
