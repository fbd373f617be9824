package commands_test

import (
	"testing"
	"time"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/worktask"
	"warehouse/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelTaskCommandHandler_Handle_CancelsPendingTask(t *testing.T) {
	// Arrange
	ctx := t.Context()
	task := newPendingTaskForBin(t, kernel.NewUUID(), kernel.NewUUID(), 5, time.Now().UTC())

	cmd, err := commands.NewCancelTaskCommand(task.ID())
	require.NoError(t, err)

	mockRepo := new(MockWorkTaskRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockWorkTaskUoWFactory)
	mockBroadcast := new(MockOperationsBroadcast)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("WorkTaskRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, task.ID()).Return(task, nil).Once(),
		mockRepo.On("Update", ctx, task).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockBroadcast.On("Notify", ctx, ports.EventTaskCancelled, task.CompanyID(),
			task.ID(), "work_task", mock.Anything).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewCancelTaskCommandHandler(mockFactory, mockBroadcast)

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.False(t, result.AlreadyFinal)
	assert.Equal(t, worktask.Cancelled, task.Status())

	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
	mockBroadcast.AssertExpectations(t)
}

func TestCancelTaskCommandHandler_Handle_CancelsInProgressTask(t *testing.T) {
	// Arrange
	ctx := t.Context()
	task := newInProgressTask(t, kernel.NewUUID())

	cmd, err := commands.NewCancelTaskCommand(task.ID())
	require.NoError(t, err)

	mockRepo := new(MockWorkTaskRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockWorkTaskUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("WorkTaskRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, task.ID()).Return(task, nil).Once(),
		mockRepo.On("Update", ctx, task).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewCancelTaskCommandHandler(mockFactory, nil)

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.False(t, result.AlreadyFinal)
	assert.Equal(t, worktask.Cancelled, task.Status())
}

func TestCancelTaskCommandHandler_Handle_TerminalTaskIsIdempotent(t *testing.T) {
	// Arrange
	ctx := t.Context()
	agentID := kernel.NewUUID()
	task := newInProgressTask(t, agentID)
	require.NoError(t, task.Complete(time.Now().UTC()))

	cmd, err := commands.NewCancelTaskCommand(task.ID())
	require.NoError(t, err)

	mockRepo := new(MockWorkTaskRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockWorkTaskUoWFactory)
	mockBroadcast := new(MockOperationsBroadcast)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("WorkTaskRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, task.ID()).Return(task, nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewCancelTaskCommandHandler(mockFactory, mockBroadcast)

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.True(t, result.AlreadyFinal)
	assert.Equal(t, worktask.Completed, task.Status(), "terminal status is preserved")

	// Nothing changed, so nothing is persisted or broadcast.
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockBroadcast.AssertNotCalled(t, "Notify",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelTaskCommandHandler_Handle_InvalidCommand(t *testing.T) {
	// Arrange
	ctx := t.Context()
	var invalidCmd commands.CancelTaskCommand

	mockFactory := new(MockWorkTaskUoWFactory)
	handler := commands.NewCancelTaskCommandHandler(mockFactory, nil)

	// Act
	_, err := handler.Handle(ctx, invalidCmd)

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCancelTaskCommandIsNotConstructed)
	mockFactory.AssertExpectations(t)
}
