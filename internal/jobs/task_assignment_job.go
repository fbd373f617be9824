package jobs

import (
	"context"
	"log/slog"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// TaskAssignmentJob periodically sweeps every warehouse with pending work
// and runs an assignment pass over it. The sweep is the only automatic
// dispatch path; the HTTP endpoint triggers the same pass on demand.
type TaskAssignmentJob struct {
	backlogHandler queries.GetPendingWarehousesQueryHandler
	assignHandler  commands.AssignTasksCommandHandler
	cron           *cron.Cron
	logger         *slog.Logger
}

// NewTaskAssignmentJob creates a job that assigns pending tasks across all
// warehouses.
func NewTaskAssignmentJob(
	backlogHandler queries.GetPendingWarehousesQueryHandler,
	assignHandler commands.AssignTasksCommandHandler,
	logger *slog.Logger,
) *TaskAssignmentJob {
	return &TaskAssignmentJob{
		backlogHandler: backlogHandler,
		assignHandler:  assignHandler,
		cron:           cron.New(cron.WithSeconds()),
		logger:         logger.With("component", "task_assignment_job"),
	}
}

// Start begins the assignment sweep, running every five seconds.
func (j *TaskAssignmentJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Task assignment job started (running every 5 seconds)")
	return nil
}

// Stop stops the assignment sweep.
func (j *TaskAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Task assignment job stopped")
}

func (j *TaskAssignmentJob) run() {
	ctx := context.Background()

	backlog, err := j.backlogHandler.Handle(ctx, queries.NewGetPendingWarehousesQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to load warehouse backlog", "error", err)
		return
	}

	for _, warehouse := range backlog {
		cmd, cmdErr := commands.NewAssignTasksCommand(warehouse.WarehouseID, nil)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to build assignment command",
				"warehouseId", warehouse.WarehouseID.String(), "error", cmdErr)
			continue
		}

		result, assignErr := j.assignHandler.Handle(ctx, cmd)
		if assignErr != nil {
			j.logger.ErrorContext(ctx, "Assignment pass failed",
				"warehouseId", warehouse.WarehouseID.String(), "error", assignErr)
			continue
		}

		if len(result.Assigned) > 0 {
			j.logger.InfoContext(ctx, "Assignment pass completed",
				"warehouseId", warehouse.WarehouseID.String(),
				"assigned", len(result.Assigned),
				"unassigned", len(result.Unassigned))
		}
	}
}
