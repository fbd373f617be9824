package commands

import (
	"context"
	"errors"
	"sort"
	"time"

	"warehouse/internal/core/domain/model/agent"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/warehousemap"
	"warehouse/internal/core/domain/model/worktask"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/keylock"
)

// AssignedTask is one successful match of the assignment pass.
type AssignedTask struct {
	TaskID  kernel.UUID
	AgentID kernel.UUID
}

// UnassignedTask is one task the pass could not place, with the reason.
// Unassigned tasks remain Pending and are eligible for the next pass.
type UnassignedTask struct {
	TaskID kernel.UUID
	Reason string
}

// AssignResult reports the per-task outcome of one assignment pass.
type AssignResult struct {
	Assigned   []AssignedTask
	Unassigned []UnassignedTask
}

// AssignTasksCommandHandler runs the assignment pass: Pending tasks in
// priority order, each matched with the nearest available agent.
//
// Concurrency discipline:
//   - the whole batch is serialized per warehouse through a keyed lock, so
//     two concurrent passes cannot double-book an agent across batches
//   - within the batch a chosen agent leaves the pool, so no agent appears
//     twice in one result
//   - each task update carries its optimistic version; a task assigned
//     concurrently elsewhere loses the race and is reported unassigned,
//     never silently overwritten
type AssignTasksCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.TaskDispatcher
	locks      *keylock.KeyedMutex
	broadcast  ports.OperationsBroadcast
}

// NewAssignTasksCommandHandler creates a handler for assignment passes.
// The keyed mutex must be shared by every handler instance assigning in the
// same process.
func NewAssignTasksCommandHandler(
	uowFactory UoWFactory,
	locks *keylock.KeyedMutex,
	broadcast ports.OperationsBroadcast,
) AssignTasksCommandHandler {
	return AssignTasksCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewTaskDispatcher(),
		locks:      locks,
		broadcast:  broadcast,
	}
}

// Handle processes one assignment pass.
func (h AssignTasksCommandHandler) Handle(
	ctx context.Context,
	command AssignTasksCommand,
) (AssignResult, error) {
	if err := command.Validate(); err != nil {
		return AssignResult{}, err
	}

	unlock := h.locks.Lock(command.WarehouseID().String())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	taskRepo := uow.WorkTaskRepository()

	tasks, err := h.loadTasks(ctx, taskRepo, command)
	if err != nil {
		return AssignResult{}, err
	}
	if len(tasks) == 0 {
		return AssignResult{}, nil
	}

	pool, err := uow.AgentRepository().GetAllAvailable(ctx, command.WarehouseID())
	if err != nil {
		return AssignResult{}, err
	}

	activeMap, err := uow.WarehouseMapRepository().GetActiveByWarehouse(ctx, command.WarehouseID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return AssignResult{}, err
	}

	result := AssignResult{}
	now := time.Now().UTC()
	var assignedTasks []*worktask.Task

	for _, task := range tasks {
		selected, err := h.dispatcher.SelectAgent(taskLocation(activeMap, task), pool)
		if errors.Is(err, services.ErrNoAvailableAgent) {
			result.Unassigned = append(result.Unassigned, UnassignedTask{
				TaskID: task.ID(),
				Reason: "no available agent",
			})
			continue
		}
		if err != nil {
			return AssignResult{}, err
		}

		if err := task.Assign(selected.ID(), selected.Type(), now); err != nil {
			return AssignResult{}, err
		}

		if err := taskRepo.Update(ctx, task); err != nil {
			if errors.Is(err, ports.ErrConcurrencyConflict) {
				// Someone assigned this task concurrently; the agent stays
				// in the pool for the next one.
				result.Unassigned = append(result.Unassigned, UnassignedTask{
					TaskID: task.ID(),
					Reason: "lost a concurrent assignment race",
				})
				continue
			}
			return AssignResult{}, err
		}

		pool = removeAgent(pool, selected.ID())
		assignedTasks = append(assignedTasks, task)
		result.Assigned = append(result.Assigned, AssignedTask{
			TaskID:  task.ID(),
			AgentID: selected.ID(),
		})
	}

	if err := uow.Commit(ctx); err != nil {
		return AssignResult{}, err
	}

	for _, task := range assignedTasks {
		h.notify(ctx, ports.EventTaskAssigned, task)
	}

	return result, nil
}

// loadTasks fetches the pass's candidates: the explicit selection, or every
// Pending task of the warehouse. The result is filtered to Pending tasks of
// this warehouse and ordered by priority desc, age asc, id asc.
func (h AssignTasksCommandHandler) loadTasks(
	ctx context.Context,
	taskRepo ports.WorkTaskRepository,
	command AssignTasksCommand,
) ([]*worktask.Task, error) {
	var (
		tasks []*worktask.Task
		err   error
	)
	if ids := command.TaskIDs(); len(ids) > 0 {
		tasks, err = taskRepo.GetBatch(ctx, ids)
	} else {
		tasks, err = taskRepo.GetAllPending(ctx, command.WarehouseID())
	}
	if err != nil {
		return nil, err
	}

	eligible := tasks[:0]
	for _, task := range tasks {
		if task.Status() == worktask.Pending && task.WarehouseID().IsEqual(command.WarehouseID()) {
			eligible = append(eligible, task)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].Priority() != eligible[j].Priority() {
			return eligible[i].Priority() > eligible[j].Priority()
		}
		if !eligible[i].CreatedAt().Equal(eligible[j].CreatedAt()) {
			return eligible[i].CreatedAt().Before(eligible[j].CreatedAt())
		}
		return eligible[i].ID().Less(eligible[j].ID())
	})

	return eligible, nil
}

// taskLocation resolves a task's target to floor coordinates, nil when the
// target is a free-text code or the bin is not on the active map.
func taskLocation(activeMap *warehousemap.Map, task *worktask.Task) *kernel.Location {
	if activeMap == nil {
		return nil
	}
	binID := task.Target().BinID()
	if binID == nil {
		return nil
	}
	location, err := activeMap.BinLocation(*binID)
	if err != nil {
		return nil
	}
	return &location
}

func removeAgent(pool []agent.Agent, agentID kernel.UUID) []agent.Agent {
	for i, candidate := range pool {
		if candidate.ID().IsEqual(agentID) {
			return append(pool[:i], pool[i+1:]...)
		}
	}
	return pool
}

func (h AssignTasksCommandHandler) notify(ctx context.Context, eventName string, task *worktask.Task) {
	if h.broadcast == nil {
		return
	}
	_ = h.broadcast.Notify(ctx, eventName, task.CompanyID(), task.ID(), "work_task", taskEventPayload(task))
}
