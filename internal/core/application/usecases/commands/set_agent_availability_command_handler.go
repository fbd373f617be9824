package commands

import "context"

// SetAgentAvailabilityCommandHandler flips an agent's availability flag.
// Setting the same state twice is a no-op, not an error.
type SetAgentAvailabilityCommandHandler struct {
	uowFactory AgentUoWFactory
}

// NewSetAgentAvailabilityCommandHandler creates a handler for availability toggles.
func NewSetAgentAvailabilityCommandHandler(uowFactory AgentUoWFactory) SetAgentAvailabilityCommandHandler {
	return SetAgentAvailabilityCommandHandler{uowFactory: uowFactory}
}

// Handle loads the agent, applies the new availability state and persists it.
func (h SetAgentAvailabilityCommandHandler) Handle(
	ctx context.Context, command SetAgentAvailabilityCommand,
) error {
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

	foundAgent, err := uow.AgentRepository().Get(ctx, command.AgentID())
	if err != nil {
		return err
	}

	foundAgent.SetAvailable(command.Available())

	if err := uow.AgentRepository().Update(ctx, foundAgent); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
