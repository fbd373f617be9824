package commands_test

import (
	"testing"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/agent"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSetAgentAvailabilityCommandHandler_Handle_TakesAgentOffRotation(t *testing.T) {
	// Arrange
	ctx := t.Context()

	worker, err := agent.NewHumanWorker(kernel.NewUUID(), "Maria Gomez", kernel.NewUUID())
	require.NoError(t, err)
	require.True(t, worker.IsAvailable())

	cmd, err := commands.NewSetAgentAvailabilityCommand(worker.ID(), false)
	require.NoError(t, err)

	var updatedAgent agent.Agent
	mockRepo := new(MockAgentRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockAgentUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("AgentRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, worker.ID()).Return(worker, nil).Once(),
		mockUoW.On("AgentRepository").Return(mockRepo).Once(),
		mockRepo.On("Update", ctx, mock.MatchedBy(func(a agent.Agent) bool {
			updatedAgent = a
			return true
		})).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewSetAgentAvailabilityCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, updatedAgent)
	assert.True(t, updatedAgent.ID().IsEqual(worker.ID()))
	assert.False(t, updatedAgent.IsAvailable())

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestSetAgentAvailabilityCommandHandler_Handle_BringsAgentBack(t *testing.T) {
	// Arrange
	ctx := t.Context()

	robot, err := agent.NewRobot(kernel.NewUUID(), "AMR-7", "MiR250", kernel.NewUUID())
	require.NoError(t, err)
	robot.SetAvailable(false)

	cmd, err := commands.NewSetAgentAvailabilityCommand(robot.ID(), true)
	require.NoError(t, err)

	mockRepo := new(MockAgentRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockAgentUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("AgentRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, robot.ID()).Return(robot, nil).Once(),
		mockUoW.On("AgentRepository").Return(mockRepo).Once(),
		mockRepo.On("Update", ctx, mock.MatchedBy(func(a agent.Agent) bool {
			return a.IsAvailable()
		})).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewSetAgentAvailabilityCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.True(t, robot.IsAvailable())

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestSetAgentAvailabilityCommandHandler_Handle_UnknownAgent(t *testing.T) {
	// Arrange
	ctx := t.Context()
	agentID := kernel.NewUUID()
	notFound := errs.NewObjectNotFoundError("agentId", agentID.String())

	cmd, err := commands.NewSetAgentAvailabilityCommand(agentID, false)
	require.NoError(t, err)

	mockRepo := new(MockAgentRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockAgentUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("AgentRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, agentID).Return(nil, notFound).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewSetAgentAvailabilityCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	var notFoundErr *errs.ObjectNotFoundError
	require.ErrorAs(t, err, &notFoundErr)

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestNewSetAgentAvailabilityCommand_Validation(t *testing.T) {
	t.Run("empty_agent_id", func(t *testing.T) {
		_, err := commands.NewSetAgentAvailabilityCommand(kernel.UUID{}, true)
		require.Error(t, err)
	})

	t.Run("not_constructed", func(t *testing.T) {
		var cmd commands.SetAgentAvailabilityCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrSetAgentAvailabilityCommandIsNotConstructed)
	})
}

func TestSetAgentAvailabilityCommandHandler_Handle_InvalidCommand(t *testing.T) {
	handler := commands.NewSetAgentAvailabilityCommandHandler(new(MockAgentUoWFactory))

	err := handler.Handle(t.Context(), commands.SetAgentAvailabilityCommand{})

	require.ErrorIs(t, err, commands.ErrSetAgentAvailabilityCommandIsNotConstructed)
}
