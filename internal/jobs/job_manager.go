package jobs

import (
	"fmt"
	"log/slog"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	taskAssignmentJob *TaskAssignmentJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the handlers as dependencies to wire up the job execution.
func NewJobManager(
	backlogHandler queries.GetPendingWarehousesQueryHandler,
	assignHandler commands.AssignTasksCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		taskAssignmentJob: NewTaskAssignmentJob(backlogHandler, assignHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.taskAssignmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start task assignment job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.taskAssignmentJob.Stop()
}
